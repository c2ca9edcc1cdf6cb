package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const csrfIssuer = "autolot"

// GenerateCSRFToken creates a signed HMAC-SHA256 JWT bound to the given
// session ID.
//
// The token includes the following standard claims:
//   - Issuer    (iss): fixed application issuer
//   - Subject   (sub): the session ID the token is bound to
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//
// All parameters are required. Returns an error if any of them are empty or zero.
func GenerateCSRFToken(sessionID string, ttl time.Duration, signKey string) (string, error) {
	if sessionID == "" || ttl == 0 || signKey == "" {
		return "", errors.New("invalid params for generating CSRF token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    csrfIssuer,
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing CSRF token: %w", err)
	}

	return tokenString, nil
}

// ValidateCSRFToken verifies the signature, issuer and expiry of tokenString
// and checks that its subject matches sessionID. A token issued for another
// session never validates, which is what makes the scheme double-submit: the
// attacker would need both the session cookie and a token bound to it.
func ValidateCSRFToken(tokenString, sessionID, signKey string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(csrfIssuer))
	if err != nil {
		return fmt.Errorf("error occurred validating and parsing CSRF token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return fmt.Errorf("error occurred during getting subject from CSRF token: %w", err)
	}
	if subject == "" || subject != sessionID {
		return errors.New("CSRF token is not bound to this session")
	}

	return nil
}
