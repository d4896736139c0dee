package app

import (
	"errors"
	"strings"
	"time"

	"taskkeeper/internal/model"
	"taskkeeper/internal/pkg/jwtutil"
	"taskkeeper/internal/pkg/passhash"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
)

// UserStore is the persistence surface AuthService needs. The gorm-backed
// repository satisfies it in production; tests swap in an in-memory one.
type UserStore interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	UpdatePasswordHash(id uint, hash string) error
}

type AuthService struct {
	userStore     UserStore
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Password    string
	Role        string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userStore UserStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userStore:     userStore,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if username == "" || email == "" || password == "" || len(password) < 6 {
		return nil, ErrInvalidInput
	}

	existingByName, err := s.userStore.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, ErrUsernameExists
	}

	existingByEmail, err := s.userStore.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil {
		return nil, ErrEmailExists
	}

	hash, err := passhash.Hash(password)
	if err != nil {
		return nil, err
	}

	role := model.RoleUser
	if input.Role == model.RoleAdmin {
		role = model.RoleAdmin
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.userStore.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login exchanges credentials for a bearer token. A missing user, an
// inactive account and a wrong password all collapse into the same
// ErrInvalidCredential so callers cannot probe which usernames exist.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userStore.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredential
	}

	if !passhash.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// ChangePassword replaces the stored hash after verifying the current
// password. On a mismatch the stored hash is left untouched.
func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	next = strings.TrimSpace(next)
	if userID == 0 || next == "" || len(next) < 6 {
		return ErrInvalidInput
	}

	user, err := s.userStore.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || !passhash.Verify(current, user.PasswordHash) {
		return ErrInvalidCredential
	}

	hash, err := passhash.Hash(next)
	if err != nil {
		return err
	}
	return s.userStore.UpdatePasswordHash(userID, hash)
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.userStore.GetByID(id)
}
