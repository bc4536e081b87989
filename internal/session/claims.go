package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Username  string
	NomAgent  string
	Role      string
	ExpiresAt time.Time
}

// ParseClaims reads the backend token without verifying its signature: the
// console never holds the backend's signing key and every call is
// re-authorized server-side anyway. The claims are only used for display
// and for expiring the local session early.
func ParseClaims(token string) (Claims, error) {
	parser := jwt.NewParser()
	var mapClaims jwt.MapClaims
	if _, _, err := parser.ParseUnverified(token, &mapClaims); err != nil {
		return Claims{}, err
	}

	claims := Claims{
		Username: stringClaim(mapClaims, "sub"),
		NomAgent: stringClaim(mapClaims, "nomAgent"),
		Role:     stringClaim(mapClaims, "role"),
	}
	if claims.Username == "" {
		claims.Username = stringClaim(mapClaims, "username")
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
