package tests

import (
	"context"
	"testing"
	"time"

	"qrmenu/order-svc/internal/auth"
	"qrmenu/order-svc/internal/domain"
	"qrmenu/order-svc/internal/mocks"
	"qrmenu/order-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authMocks struct {
	verifier   *mocks.CredentialVerifier
	users      *mocks.UserRepository
	tokens     *mocks.TokenIssuer
	revocation *mocks.RevocationStore
	tables     *mocks.TableRepository
}

func newAuthService(t *testing.T) (*service.AuthService, authMocks) {
	m := authMocks{
		verifier:   mocks.NewCredentialVerifier(t),
		users:      mocks.NewUserRepository(t),
		tokens:     mocks.NewTokenIssuer(t),
		revocation: mocks.NewRevocationStore(t),
		tables:     mocks.NewTableRepository(t),
	}
	svc := service.NewAuthService(m.verifier, m.users, m.tokens, m.revocation,
		service.NewTableService(m.tables, nopLogger),
		service.AuthConfig{AdminTTL: 8 * time.Hour, GuestTTL: 2 * time.Hour, BcryptCost: bcrypt.MinCost},
		nopLogger,
	)
	return svc, m
}

var admin = &domain.AdminUser{ID: 1, Username: "admin", Email: "admin@restoran.com"}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		login     string
		password  string
		setupMock func(authMocks)
		wantErr   error
	}{
		{
			name:     "valid credentials",
			login:    "admin",
			password: "secret1",
			setupMock: func(m authMocks) {
				m.verifier.On("Verify", mock.Anything, "admin", "secret1").Return(admin, nil).Once()
				m.tokens.On("Issue", mock.MatchedBy(func(s domain.Session) bool {
					return s.Role == domain.RoleAdmin && s.UserID == 1 && s.ID != "" && time.Until(s.ExpiresAt) > 7*time.Hour
				})).Return("signed.token", nil).Once()
			},
		},
		{
			name:     "wrong password",
			login:    "admin",
			password: "nope",
			setupMock: func(m authMocks) {
				m.verifier.On("Verify", mock.Anything, "admin", "nope").Return(nil, domain.ErrUnauthorized).Once()
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:      "missing password",
			login:     "admin",
			setupMock: func(authMocks) {},
			wantErr:   domain.ErrInvalidInput,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, m := newAuthService(t)
			testCase.setupMock(m)

			token, user, err := svc.Login(context.Background(), testCase.login, testCase.password)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "signed.token", token)
			assert.Equal(t, "admin", user.Username)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	session := &domain.Session{ID: "s-1", Role: domain.RoleAdmin, UserID: 1}

	t.Run("valid", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tokens.On("Parse", "tok").Return(session, nil).Once()
		m.revocation.On("IsRevoked", mock.Anything, "s-1").Return(false, nil).Once()

		got, err := svc.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, session, got)
	})

	t.Run("revoked", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tokens.On("Parse", "tok").Return(session, nil).Once()
		m.revocation.On("IsRevoked", mock.Anything, "s-1").Return(true, nil).Once()

		_, err := svc.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("empty token", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	svc, m := newAuthService(t)
	m.revocation.On("Revoke", mock.Anything, "s-1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil).Once()

	require.NoError(t, svc.Logout(context.Background(), domain.Session{ID: "s-1", ExpiresAt: time.Now().Add(time.Hour)}))

	// Already expired sessions need no revocation entry.
	require.NoError(t, svc.Logout(context.Background(), domain.Session{ID: "s-2", ExpiresAt: time.Now().Add(-time.Minute)}))
}

func TestAuthService_ChangePassword(t *testing.T) {
	adminSession := domain.Session{ID: "s-1", Role: domain.RoleAdmin, UserID: 1}

	tests := []struct {
		name      string
		session   domain.Session
		current   string
		next      string
		setupMock func(authMocks)
		wantErr   error
	}{
		{
			name:    "success",
			session: adminSession,
			current: "secret1",
			next:    "yeni-sifre",
			setupMock: func(m authMocks) {
				m.users.On("GetUser", mock.Anything, 1).Return(admin, nil).Once()
				m.verifier.On("Verify", mock.Anything, "admin", "secret1").Return(admin, nil).Once()
				m.users.On("UpdatePassword", mock.Anything, 1, mock.MatchedBy(func(hash string) bool {
					return bcrypt.CompareHashAndPassword([]byte(hash), []byte("yeni-sifre")) == nil
				})).Return(nil).Once()
			},
		},
		{
			name:    "wrong current password",
			session: adminSession,
			current: "guess",
			next:    "yeni-sifre",
			setupMock: func(m authMocks) {
				m.users.On("GetUser", mock.Anything, 1).Return(admin, nil).Once()
				m.verifier.On("Verify", mock.Anything, "admin", "guess").Return(nil, domain.ErrUnauthorized).Once()
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:      "new password too short",
			session:   adminSession,
			current:   "secret1",
			next:      "abc",
			setupMock: func(authMocks) {},
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "guest session",
			session:   domain.Session{ID: "g-1", Role: domain.RoleGuest},
			current:   "secret1",
			next:      "yeni-sifre",
			setupMock: func(authMocks) {},
			wantErr:   domain.ErrUnauthorized,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, m := newAuthService(t)
			testCase.setupMock(m)

			err := svc.ChangePassword(context.Background(), testCase.session, testCase.current, testCase.next)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthService_GuestSession(t *testing.T) {
	t.Run("bound to a table", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tables.On("GetTableByQRCode", mock.Anything, "QR_TABLE_003").Return(&domain.Table{ID: 3, TableNumber: 3, IsActive: true}, nil).Once()
		m.tokens.On("Issue", mock.AnythingOfType("domain.Session")).Return("guest.token", nil).Once()

		token, session, err := svc.GuestSession(context.Background(), "QR_TABLE_003")

		require.NoError(t, err)
		assert.Equal(t, "guest.token", token)
		assert.Equal(t, domain.RoleGuest, session.Role)
		require.NotNil(t, session.TableNumber)
		assert.Equal(t, 3, *session.TableNumber)
	})

	t.Run("takeaway without a table", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tokens.On("Issue", mock.AnythingOfType("domain.Session")).Return("guest.token", nil).Once()

		_, session, err := svc.GuestSession(context.Background(), "")

		require.NoError(t, err)
		assert.Nil(t, session.TableID)
	})

	t.Run("inactive table", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.tables.On("GetTableByQRCode", mock.Anything, "QR_TABLE_009").Return(&domain.Table{ID: 9, TableNumber: 9}, nil).Once()

		_, _, err := svc.GuestSession(context.Background(), "QR_TABLE_009")
		assert.ErrorIs(t, err, domain.ErrTableInactive)
	})
}

func TestAuthService_WithRealIssuer(t *testing.T) {
	issuer, err := auth.NewJWTIssuer("test-secret")
	require.NoError(t, err)

	revocation := mocks.NewRevocationStore(t)
	revocation.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()

	svc := service.NewAuthService(mocks.NewCredentialVerifier(t), mocks.NewUserRepository(t), issuer, revocation,
		service.NewTableService(mocks.NewTableRepository(t), nopLogger),
		service.AuthConfig{GuestTTL: time.Hour}, nopLogger)

	token, issued, err := svc.GuestSession(context.Background(), "")
	require.NoError(t, err)

	session, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, session.ID)
	assert.Equal(t, domain.RoleGuest, session.Role)
}
