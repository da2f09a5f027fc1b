package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/sitecraft/sitecraft-go/internal/crypto"
	"github.com/sitecraft/sitecraft-go/internal/model"
	"github.com/sitecraft/sitecraft-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("user already exists")
)

var credentialFields = map[string]error{
	"email":    ErrEmailRequired,
	"password": ErrPasswordRequired,
}

// AuthService handles signup and login.
type AuthService struct {
	repo     *repository.UserRepository
	hasher   *crypto.PasswordHasher
	tokens   *crypto.TokenManager
	validate *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, hasher *crypto.PasswordHasher, tokens *crypto.TokenManager) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		validate: newValidator(),
	}
}

// Signup registers a new user. The password is stored only as an Argon2id hash.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.MessageResponse, error) {
	if err := checkRequest(s.validate, req, credentialFields); err != nil {
		return model.MessageResponse{}, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return model.MessageResponse{}, err
	}
	if exists {
		return model.MessageResponse{}, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.MessageResponse{}, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
	}

	// The unique index still guards against two concurrent signups.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.MessageResponse{}, ErrEmailTaken
		}
		return model.MessageResponse{}, err
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID)

	return model.MessageResponse{Message: "User created successfully"}, nil
}

// Login verifies credentials and issues an access token for the user's email.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	if err := checkRequest(s.validate, req, credentialFields); err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{AccessToken: token}, nil
}
