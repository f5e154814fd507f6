package auth

import (
	"context"
	"errors"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/user"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("has already been taken")
)

type Service struct {
	users  user.Repository
	tokens *TokenManager
}

func NewService(users user.Repository, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// Signup creates a new active account with a hashed password
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*user.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Active:   true,
	}

	return s.users.Create(ctx, newUser)
}

// Login verifies credentials and issues a bearer token
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(u.ID, u.Email)
}
