package models

// TokenMetadata is static reference data for a token mint. Rows are written
// by admin/seed paths and read-heavy afterwards.
type TokenMetadata struct {
	Mint       string `json:"mint"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Decimals   int    `json:"decimals"`
	LogoURI    string `json:"logo_uri,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

// TableName returns the name of the database table
// associated with the TokenMetadata model.
func (t TokenMetadata) TableName() string {
	return "token_metadata"
}
