package models

import "time"

// Session is a bearer-token session row. The token itself is a signed JWT;
// the row's presence is what makes it valid, so deleting the row revokes the
// token even before its exp claim fires.
type Session struct {
	// AuthToken is the session key: the jti claim of the issued JWT.
	AuthToken string `json:"-"`

	// UserAddress is the wallet the session was issued to.
	UserAddress string `json:"user_address"`

	// ValidUntil is the hard expiry; expired rows are swept periodically.
	ValidUntil time.Time `json:"valid_until"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
