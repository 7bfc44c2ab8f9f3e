package domain

import "time"

// Role is the authorization level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the identity record managed by this service.
//
// PasswordHash never leaves the process: the json:"-" tag keeps it out of
// every response body, and it is only ever set through the password hasher.
// AccessToken mirrors the last token issued at login; it is informational
// only, authorization always re-verifies the token presented on the request.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	AccessToken  string    `json:"-" bson:"access_token,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Identity is the authenticated requester, resolved once per request from a
// verified token. It is passed explicitly down the call chain and is never
// derived from the request body or path.
type Identity struct {
	ID   int64
	Role Role
}
