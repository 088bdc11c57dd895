package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"qrmenu/order-svc/internal/auth"
	"qrmenu/order-svc/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthConfig struct {
	AdminTTL   time.Duration
	GuestTTL   time.Duration
	BcryptCost int
}

type AuthService struct {
	verifier   CredentialVerifier
	users      UserRepository
	tokens     TokenIssuer
	revocation RevocationStore
	tables     TableServiceInterface
	cfg        AuthConfig
	logger     *zap.SugaredLogger
	now        func() time.Time
}

func NewAuthService(verifier CredentialVerifier, users UserRepository, tokens TokenIssuer, revocation RevocationStore, tables TableServiceInterface, cfg AuthConfig, logger *zap.SugaredLogger) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		verifier:   verifier,
		users:      users,
		tokens:     tokens,
		revocation: revocation,
		tables:     tables,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, login, password string) (string, *domain.AdminUser, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", nil, domain.InvalidInput("username and password are required")
	}
	user, err := s.verifier.Verify(ctx, login, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.logger.Infow("login rejected", "login", login)
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(domain.Session{
		ID:        uuid.NewString(),
		Role:      domain.RoleAdmin,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: s.now().Add(s.cfg.AdminTTL),
	})
	if err != nil {
		return "", nil, err
	}
	s.logger.Infow("admin logged in", "user_id", user.ID, "username", user.Username)
	return token, user, nil
}

// Logout revokes the session until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revocation.Revoke(ctx, session.ID, ttl)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	session, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revocation.IsRevoked(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

func (s *AuthService) Me(ctx context.Context, session domain.Session) (*domain.AdminUser, error) {
	if !session.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.users.GetUser(ctx, session.UserID)
}

func (s *AuthService) ChangePassword(ctx context.Context, session domain.Session, current, next string) error {
	if !session.IsAdmin() {
		return domain.ErrUnauthorized
	}
	if len(next) < minPasswordLength {
		return domain.InvalidInput("new password must be at least %d characters", minPasswordLength)
	}
	user, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		return err
	}
	if _, err := s.verifier.Verify(ctx, user.Username, current); err != nil {
		return err
	}

	hash, err := auth.HashPassword(next, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	s.logger.Infow("password changed", "user_id", user.ID)
	return nil
}

// GuestSession opens a customer session, bound to a table when a QR token is
// given.
func (s *AuthService) GuestSession(ctx context.Context, qrCode string) (string, *domain.Session, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		Role:      domain.RoleGuest,
		ExpiresAt: s.now().Add(s.cfg.GuestTTL),
	}
	if qrCode = strings.TrimSpace(qrCode); qrCode != "" {
		table, err := s.tables.ResolveByQR(ctx, qrCode)
		if err != nil {
			return "", nil, err
		}
		id, number := table.ID, table.TableNumber
		session.TableID = &id
		session.TableNumber = &number
	}

	token, err := s.tokens.Issue(*session)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}
