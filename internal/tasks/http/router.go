package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/guard"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"

	_ "github.com/aussiebroadwan/tasks/api/tasks" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// APIPrefix is mounted in front of every API route.
const APIPrefix = "/api/v1"

// RouterConfig holds the HTTP-level settings.
type RouterConfig struct {
	BuildVersion string
	CORS         httpx.CORSConfig
	RateLimits   httpx.RateLimitProfiles
	Cookie       CookieConfig

	// StaticDir, when set, is served for any GET request no API route
	// matches.
	StaticDir string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg       RouterConfig
	resolver  *guard.Resolver
	startTime time.Time
	logger    *slog.Logger
	store     store.Store

	UserService         *service.UserService
	TaskService         *service.TaskService
	VerificationService *service.VerificationService
}

func NewRouter(cfg RouterConfig, resolver *guard.Resolver, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		resolver:  resolver,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cfg.CORS),
	}

	return r
}

// ApplyRoutes registers every route. The list is static; adding a route
// means adding it here.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerVerification()
	r.registerAdmin()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())

	if r.cfg.StaticDir != "" {
		r.Mux.Handle("GET /", http.FileServer(http.Dir(r.cfg.StaticDir)))
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tasks API
//	@version		0.1.0
//	@description	Task management service. Sessions are HS256 JWTs delivered in the "token" cookie.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/tasks
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8000
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						token
//	@description				Session token set by /api/v1/login.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}". Accepted by PATCH /api/v1/user only.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) protect() httpx.Middleware { return guard.Protect(r.resolver) }

func (r *Router) registerAuth() {
	h := &AuthHandler{UserService: r.UserService, Cookie: r.cfg.Cookie}
	limits := r.cfg.RateLimits

	// Credential endpoints - strict limits against brute force
	r.Mux.Handle("POST "+APIPrefix+"/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(limits.Strict),
		),
	)
	r.Mux.Handle("POST "+APIPrefix+"/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(limits.Strict, "email"),
		),
	)

	r.Mux.Handle("GET "+APIPrefix+"/logout", http.HandlerFunc(h.HandleLogout))
	r.Mux.Handle("GET "+APIPrefix+"/login-status",
		httpx.Chain(http.HandlerFunc(h.HandleLoginStatus),
			httpx.RateLimitByIP(limits.Lenient),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserHandler{UserService: r.UserService}
	limits := r.cfg.RateLimits

	r.Mux.Handle("GET "+APIPrefix+"/user",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.protect(),
		),
	)

	// Profile edits also accept a bearer header.
	r.Mux.Handle("PATCH "+APIPrefix+"/user",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateProfile),
			guard.Authenticate(r.resolver),
			httpx.RateLimitByUser(limits.Moderate),
		),
	)

	r.Mux.Handle("PATCH "+APIPrefix+"/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			r.protect(),
			httpx.RateLimitByUser(limits.Strict),
		),
	)
}

func (r *Router) registerVerification() {
	h := &VerificationHandler{VerificationService: r.VerificationService}
	limits := r.cfg.RateLimits

	r.Mux.Handle("POST "+APIPrefix+"/verify-email",
		httpx.Chain(http.HandlerFunc(h.HandleSendCode),
			r.protect(),
			httpx.RateLimitByUser(limits.Strict),
		),
	)

	// Code attempts share the strict budget.
	r.Mux.Handle("POST "+APIPrefix+"/verify-user",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			r.protect(),
			httpx.RateLimitByUser(limits.Strict),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{UserService: r.UserService}
	limits := r.cfg.RateLimits

	r.Mux.Handle("GET "+APIPrefix+"/admin/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.protect(),
			guard.RequireCreator,
		),
	)
	r.Mux.Handle("PATCH "+APIPrefix+"/admin/users/{id}/role",
		httpx.Chain(http.HandlerFunc(h.HandleSetRole),
			r.protect(),
			guard.RequireAdmin,
			httpx.RateLimitByUser(limits.Moderate),
		),
	)
	r.Mux.Handle("DELETE "+APIPrefix+"/admin/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.protect(),
			guard.RequireAdmin,
			httpx.RateLimitByUser(limits.Moderate),
		),
	)
}

func (r *Router) registerTasks() {
	h := &TaskHandler{TaskService: r.TaskService}
	limits := r.cfg.RateLimits

	r.Mux.Handle("POST "+APIPrefix+"/task/create",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.protect(),
			guard.RequireVerified,
			httpx.RateLimitByUser(limits.Moderate),
		),
	)
	r.Mux.Handle("GET "+APIPrefix+"/tasks",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.protect(),
		),
	)
	r.Mux.Handle("GET "+APIPrefix+"/task/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.protect(),
		),
	)
	r.Mux.Handle("PATCH "+APIPrefix+"/task/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.protect(),
			httpx.RateLimitByUser(limits.Moderate),
		),
	)
	r.Mux.Handle("DELETE "+APIPrefix+"/task/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.protect(),
			httpx.RateLimitByUser(limits.Moderate),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.cfg.BuildVersion),
			httpx.RateLimitByIP(r.cfg.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.cfg.BuildVersion, r.store),
			httpx.RateLimitByIP(r.cfg.RateLimits.Lenient),
		),
	)
}
