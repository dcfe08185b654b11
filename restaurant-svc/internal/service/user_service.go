package service

import (
	"context"
	"errors"
	"sync"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const msgInvalidCredentials = "Invalid email or password"

// UserUpdate is a partial edit. Empty fields are kept.
type UserUpdate struct {
	Name          string
	Surname       string
	Username      string
	Email         string
	Password      string
	Role          domain.Role
	AccountStatus domain.AccountStatus
}

type UserService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer

	// dummyHash is compared against when the email is unknown.
	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

func (s *UserService) Signup(ctx context.Context, u *domain.User, password string) error {
	if err := s.ensureUnique(ctx, "", u.Email, u.Username, "Email already exists", "Username already exists"); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	u.ID = uuid.NewString()
	u.PasswordHash = hash
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}
	if u.AccountStatus == "" {
		u.AccountStatus = domain.AccountActive
	}
	return s.users.CreateUser(ctx, u)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		s.dummyOnce.Do(func() {
			s.dummyHash, _ = s.hasher.Hash(uuid.NewString())
		})
		_ = s.hasher.Compare(s.dummyHash, password)
		return nil, "", domain.Validation(msgInvalidCredentials)
	}
	if err != nil {
		return nil, "", err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domain.Validation(msgInvalidCredentials)
	}
	if user.AccountStatus == domain.AccountInactive {
		return nil, "", domain.Forbidden("Account is inactive")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetUser(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	email, username := update.Email, update.Username
	if email == user.Email {
		email = ""
	}
	if username == user.Username {
		username = ""
	}
	if err := s.ensureUnique(ctx, user.ID, email, username, "Email already in use", "Username already taken"); err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Surname != "" {
		user.Surname = update.Surname
	}
	if update.Username != "" {
		user.Username = update.Username
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Role != "" {
		user.Role = update.Role
	}
	if update.AccountStatus != "" {
		user.AccountStatus = update.AccountStatus
	}
	if update.Password != "" {
		hash, err := s.hasher.Hash(update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	rows, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound(domain.MsgUserNotFound)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is taken.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	admin := &domain.User{
		Name:     "Admin",
		Surname:  "Admin",
		Username: "admin",
		Email:    email,
		Role:     domain.RoleAdmin,
	}
	if err := s.Signup(ctx, admin, password); err != nil {
		return err
	}
	log.WithField("email", email).Info("created bootstrap admin")
	return nil
}

// ensureUnique fails when email or username belongs to a user other than selfID.
// Empty values are not checked.
func (s *UserService) ensureUnique(ctx context.Context, selfID, email, username, emailMsg, usernameMsg string) error {
	if email != "" {
		if err := checkFree(selfID, emailMsg, func() (*domain.User, error) {
			return s.users.GetUserByEmail(ctx, email)
		}); err != nil {
			return err
		}
	}
	if username != "" {
		if err := checkFree(selfID, usernameMsg, func() (*domain.User, error) {
			return s.users.GetUserByUsername(ctx, username)
		}); err != nil {
			return err
		}
	}
	return nil
}

func checkFree(selfID, msg string, lookup func() (*domain.User, error)) error {
	existing, err := lookup()
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return domain.Validation(msg)
	}
	return nil
}

var _ UserServiceInterface = (*UserService)(nil)
