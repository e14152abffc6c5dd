package token

import (
	"errors"
	"time"

	customErrors "github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/errors"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload: the user identifier plus the
// registered iat/exp pair.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type Util struct {
	secret []byte
	ttl    time.Duration
}

func NewUtil(secret string, ttl time.Duration) (*Util, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	return &Util{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the validity window issued tokens carry.
func (u *Util) TTL() time.Duration {
	return u.ttl
}

func (u *Util) Issue(userID string) (string, error) {
	if userID == "" {
		return "", customErrors.WrapInternal(errors.New("empty user id"), "Issue")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", customErrors.WrapInternal(err, "sign session token")
	}
	return signed, nil
}

// Parse verifies signature and expiry. Expired and tampered tokens are not
// distinguished: both come back as ErrInvalidToken.
func (u *Util) Parse(raw string) (Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return u.secret, nil
	})

	if err != nil || !token.Valid {
		return Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, customErrors.WrapInternal(errors.New("claims not token.Claims"), "Parse")
	}
	if claims.UserID == "" {
		return Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
