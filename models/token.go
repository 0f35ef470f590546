package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued by the development API.
//
// It embeds [jwt.RegisteredClaims] for standard claim access and adds the
// account role so the auth middleware can reject non-admin requests without
// a database round trip.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// Role is the account role at the moment of issue.
	Role Role `json:"role"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// GetUserID returns the user identifier stored in the "sub" claim.
func (t *Token) GetUserID() (string, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if userID == "" {
		return "", fmt.Errorf("error extracting UserID from token: empty subject")
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
