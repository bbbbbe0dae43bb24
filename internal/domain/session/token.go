package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"keneviz-panel-go/internal/platform/errors"
)

// Codec signs and verifies the session cookie. The cookie carries only
// the session id; state itself lives server side in the session store.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Encode signs a cookie token for the given session id.
func (c *Codec) Encode(sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(errors.KindSession, "session.encode", "sign session token", err)
	}
	return signed, nil
}

// Decode verifies a cookie token and returns the session id inside.
func (c *Codec) Decode(tokenString string) (string, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(errors.KindSession, "session.decode", "unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return "", errors.Wrap(errors.KindSession, "session.decode", "invalid session token", err)
	}
	if !token.Valid || claims.SID == "" {
		return "", errors.New(errors.KindSession, "session.decode", "invalid session token")
	}
	return claims.SID, nil
}
