package authsvc

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkrupp/authcase/internal/domain"
)

// Claims is the token payload: the account id plus the registered expiry
// claim. Serialized form is {"user_id": <id>, "exp": <unix>}.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed HS256 bearer token for the given user id,
// expiring validity from now.
func IssueToken(userID int64, secretKey []byte, validity time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken checks the token's signature and expiry and returns the embedded
// user id. The signature is verified before any claim is trusted. Expired
// tokens yield domain.ErrTokenExpired; any other parse or signature failure
// yields domain.ErrInvalidAuthToken.
func VerifyToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errors.Join(domain.ErrTokenExpired, err)
		}

		return 0, errors.Join(domain.ErrInvalidAuthToken, err)
	}

	if !token.Valid {
		return 0, domain.ErrInvalidAuthToken
	}

	return claims.UserID, nil
}
