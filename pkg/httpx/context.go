package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated user id once the request has been
// authenticated. Rate limiting keys off it.
const CtxKeyUserID ctxKey = "user_id"

// WithUserID records the authenticated user id on ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}
