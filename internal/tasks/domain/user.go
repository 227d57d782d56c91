package domain

import "time"

// Identity is a user record without its secret fields. It is what the
// request context carries once a session token has been resolved.
type Identity struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Photo      string    `json:"photo"`
	Bio        string    `json:"bio"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// IsCreator reports whether the identity may create content: creators and
// admins.
func (i Identity) IsCreator() bool { return i.Role == RoleCreator || i.Role == RoleAdmin }

// User is the full stored record. Only the login and password paths load it.
type User struct {
	Identity

	PasswordHash string // argon2id, PHC encoded
}

// ProfileUpdate holds the user-editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name  *string
	Photo *string
	Bio   *string
}
