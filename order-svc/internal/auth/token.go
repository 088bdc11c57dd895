// Package auth holds the single credential check for admins and the signed
// session tokens handed to admins and guests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"qrmenu/order-svc/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "qrmenu"

type sessionClaims struct {
	Role        domain.Role `json:"role"`
	UserID      int         `json:"uid,omitempty"`
	Username    string      `json:"username,omitempty"`
	TableID     *int        `json:"table_id,omitempty"`
	TableNumber *int        `json:"table_number,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs sessions with HS256. The session id travels as the jti.
type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewJWTIssuer(secret string) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTIssuer{secret: []byte(secret), now: time.Now}, nil
}

func (i *JWTIssuer) Issue(session domain.Session) (string, error) {
	if session.ID == "" {
		return "", errors.New("session id is empty")
	}
	claims := &sessionClaims{
		Role:        session.Role,
		UserID:      session.UserID,
		Username:    session.Username,
		TableID:     session.TableID,
		TableNumber: session.TableNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(i.now()),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Parse rejects anything not signed by us, expired, or carrying an unknown role.
func (i *JWTIssuer) Parse(token string) (*domain.Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.ID == "" || (claims.Role != domain.RoleAdmin && claims.Role != domain.RoleGuest) {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Session{
		ID:          claims.ID,
		Role:        claims.Role,
		UserID:      claims.UserID,
		Username:    claims.Username,
		TableID:     claims.TableID,
		TableNumber: claims.TableNumber,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
