package auth

import (
	"context"
	"errors"

	"qrmenu/order-svc/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type UserLookup interface {
	GetUserByLogin(ctx context.Context, login string) (*domain.AdminUser, error)
}

// BcryptVerifier checks a username or email against the stored bcrypt hash.
type BcryptVerifier struct {
	users UserLookup
}

func NewBcryptVerifier(users UserLookup) *BcryptVerifier {
	return &BcryptVerifier{users: users}
}

// Verify answers ErrUnauthorized for an unknown login and a wrong password
// alike.
func (v *BcryptVerifier) Verify(ctx context.Context, login, password string) (*domain.AdminUser, error) {
	user, err := v.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
