// Package auth issues and verifies the bearer tokens that gate photo
// ownership. Tokens are stateless: HS256-signed claim sets carrying the
// user id, reconstructable from the server secret alone.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/musefuse/internal/common"
)

// Claims is the claim set carried by access tokens: the registered claims
// plus the owning user's id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// GenerateToken mints an HS256 token for userID with iat = now and
// exp = now + validityDuration.
func GenerateToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and claims of tokenString and returns
// the user id it was issued for. The exp, iat and user_id claims are all
// required. Failures are classified into the common token sentinels
// (expired, malformed, bad signature) so callers can log the exact kind;
// user existence is not re-checked here.
func ParseToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, common.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, common.ErrInvalidSignature
		default:
			return 0, common.ErrInvalidToken
		}
	}

	if claims.IssuedAt == nil || claims.UserID == 0 {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
