package models

import "time"

// User represents a wallet that has interacted with the service at least
// once. Users are created implicitly (upsert by address) on the first quote
// or swap submission and are never deleted.
type User struct {
	// Address is the base58 wallet address and the primary key.
	Address string `json:"address"`

	// CreatedAt is the timestamp of the first interaction.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped on every upsert.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
