package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/escartian/FitByte/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const sessionIssuer = "fitbyte"

var ErrTokenGeneration = errors.New("failed to generate session token")

// SessionUser is what a session carries about the logged-in user.
type SessionUser struct {
	ID           primitive.ObjectID `json:"id"`
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	EmailAddress string             `json:"emailAddress"`
}

// sessionClaims defines the structure of the session token payload.
type sessionClaims struct {
	UserID       string `json:"uid"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"email"`
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies the HS256 tokens stored in the session cookie.
type SessionCodec struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewSessionCodec(secret string, expiration time.Duration) *SessionCodec {
	if secret == "" {
		panic("session secret cannot be empty")
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &SessionCodec{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

func (c *SessionCodec) Expiration() time.Duration {
	return c.expiration
}

// Issue creates a signed token for the user.
func (c *SessionCodec) Issue(user domain.UserInfo) (string, error) {
	now := c.now()
	claims := &sessionClaims{
		UserID:       user.ID.Hex(),
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.Hex(),
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}
	return signed, nil
}

// Parse verifies a token. Any failure, including expiry, is reported as ErrUnauthenticated.
func (c *SessionCodec) Parse(tokenString string) (*SessionUser, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}
	if !claims.VerifyIssuer(sessionIssuer, true) {
		return nil, ErrUnauthenticated
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return &SessionUser{
		ID:           id,
		FirstName:    claims.FirstName,
		LastName:     claims.LastName,
		EmailAddress: claims.EmailAddress,
	}, nil
}
