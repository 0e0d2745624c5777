package models

import "time"

// User is a Discord-authenticated account.
// The TOTP secret is stored sealed and never leaves the server.
type User struct {
	// ID is the Discord user snowflake. It doubles as the primary key.
	ID string `json:"id" bson:"id"`

	// Username is the Discord username at the time of the last login.
	Username string `json:"username" bson:"username"`

	// Avatar is the Discord avatar hash. Refreshed on login when it changes.
	Avatar string `json:"avatar" bson:"avatar"`

	// CreatedAt is the timestamp of the first login.
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`

	// TwoFactorEnabled reports whether TOTP verification is active.
	TwoFactorEnabled bool `json:"twoFactorEnabled" bson:"two_factor_enabled"`

	// TwoFactorSecret is the sealed TOTP seed.
	// Legacy accounts may hold the seed in plaintext.
	TwoFactorSecret string `json:"-" bson:"two_factor_secret"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
