package service_test

import (
	"context"
	"errors"
	"testing"

	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/mocks"
	"restaurant-backend/restaurant-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userMocks struct {
	users  *mocks.UserRepository
	hasher *mocks.PasswordHasher
	tokens *mocks.TokenIssuer
}

func newUserService(t *testing.T) (*service.UserService, userMocks) {
	m := userMocks{
		users:  mocks.NewUserRepository(t),
		hasher: mocks.NewPasswordHasher(t),
		tokens: mocks.NewTokenIssuer(t),
	}
	return service.NewUserService(m.users, m.hasher, m.tokens), m
}

var errUserNotFound = domain.NotFound(domain.MsgUserNotFound)

func TestUserService_Signup(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m userMocks)
		wantErr   string
	}{
		{
			name: "new customer",
			setupMock: func(m userMocks) {
				m.users.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(nil, errUserNotFound).Once()
				m.users.On("GetUserByUsername", mock.Anything, "ann").Return(nil, errUserNotFound).Once()
				m.hasher.On("Hash", "secret1").Return("hashed", nil).Once()
				m.users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.PasswordHash == "hashed" && u.Role == domain.RoleCustomer && u.AccountStatus == domain.AccountActive
				})).Return(nil).Once()
			},
		},
		{
			name: "email taken",
			setupMock: func(m userMocks) {
				m.users.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(&domain.User{ID: "u9"}, nil).Once()
			},
			wantErr: "Email already exists",
		},
		{
			name: "username taken",
			setupMock: func(m userMocks) {
				m.users.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(nil, errUserNotFound).Once()
				m.users.On("GetUserByUsername", mock.Anything, "ann").Return(&domain.User{ID: "u9"}, nil).Once()
			},
			wantErr: "Username already exists",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, m := newUserService(t)
			testCase.setupMock(m)
			user := &domain.User{Name: "Ann", Username: "ann", Email: "ann@example.com"}

			err := svc.Signup(context.Background(), user, "secret1")

			if testCase.wantErr != "" {
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.EqualError(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	active := &domain.User{ID: "u1", Email: "ann@example.com", PasswordHash: "hashed", Role: domain.RoleCustomer, AccountStatus: domain.AccountActive}
	inactive := &domain.User{ID: "u2", Email: "bob@example.com", PasswordHash: "hashed", AccountStatus: domain.AccountInactive}

	tests := []struct {
		name      string
		email     string
		setupMock func(m userMocks)
		wantToken string
		wantErr   error
	}{
		{
			name:  "valid credentials",
			email: "ann@example.com",
			setupMock: func(m userMocks) {
				m.users.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(active, nil).Once()
				m.hasher.On("Compare", "hashed", "pw").Return(nil).Once()
				m.tokens.On("Issue", active).Return("jwt", nil).Once()
			},
			wantToken: "jwt",
		},
		{
			name:  "wrong password",
			email: "ann@example.com",
			setupMock: func(m userMocks) {
				m.users.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(active, nil).Once()
				m.hasher.On("Compare", "hashed", "pw").Return(errors.New("mismatch")).Once()
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "unknown email still compares a hash",
			email: "nobody@example.com",
			setupMock: func(m userMocks) {
				m.users.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, errUserNotFound).Once()
				m.hasher.On("Hash", mock.Anything).Return("dummy", nil).Once()
				m.hasher.On("Compare", "dummy", "pw").Return(errors.New("mismatch")).Once()
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "inactive account",
			email: "bob@example.com",
			setupMock: func(m userMocks) {
				m.users.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(inactive, nil).Once()
				m.hasher.On("Compare", "hashed", "pw").Return(nil).Once()
			},
			wantErr: domain.ErrForbidden,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, m := newUserService(t)
			testCase.setupMock(m)

			user, token, err := svc.Login(context.Background(), testCase.email, "pw")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				if testCase.wantErr == domain.ErrValidation {
					assert.EqualError(t, err, "Invalid email or password")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantToken, token)
			assert.Equal(t, "u1", user.ID)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	svc, m := newUserService(t)
	stored := &domain.User{ID: "u1", Name: "Ann", Username: "ann", Email: "ann@example.com", PasswordHash: "old", Role: domain.RoleCustomer}

	m.users.On("GetUser", mock.Anything, "u1").Return(stored, nil).Once()
	m.users.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, errUserNotFound).Once()
	m.hasher.On("Hash", "newpass").Return("new", nil).Once()
	m.users.On("UpdateUser", mock.Anything, stored).Return(nil).Once()

	updated, err := svc.Update(context.Background(), "u1", service.UserUpdate{
		Email:    "new@example.com",
		Username: "ann",
		Password: "newpass",
		Role:     domain.RoleStaff,
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, "new", updated.PasswordHash)
	assert.Equal(t, domain.RoleStaff, updated.Role)
}

func TestUserService_Update_EmailInUse(t *testing.T) {
	svc, m := newUserService(t)
	m.users.On("GetUser", mock.Anything, "u1").Return(&domain.User{ID: "u1", Email: "ann@example.com"}, nil).Once()
	m.users.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(&domain.User{ID: "u2"}, nil).Once()

	_, err := svc.Update(context.Background(), "u1", service.UserUpdate{Email: "bob@example.com"})

	assert.EqualError(t, err, "Email already in use")
}

func TestUserService_EnsureAdmin(t *testing.T) {
	t.Run("creates the admin", func(t *testing.T) {
		svc, m := newUserService(t)
		m.users.On("GetUserByEmail", mock.Anything, "admin@example.com").Return(nil, errUserNotFound).Twice()
		m.users.On("GetUserByUsername", mock.Anything, "admin").Return(nil, errUserNotFound).Once()
		m.hasher.On("Hash", "adminpw").Return("hashed", nil).Once()
		m.users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin && u.Email == "admin@example.com"
		})).Return(nil).Once()

		assert.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "adminpw"))
	})

	t.Run("keeps an existing account", func(t *testing.T) {
		svc, m := newUserService(t)
		m.users.On("GetUserByEmail", mock.Anything, "admin@example.com").Return(&domain.User{ID: "u1"}, nil).Once()

		assert.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "adminpw"))
	})

	t.Run("nothing configured", func(t *testing.T) {
		svc, _ := newUserService(t)
		assert.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
	})
}
