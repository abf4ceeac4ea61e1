package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/repository"
	"github.com/meetgrid/server/internal/token"
)

// bcryptCost is the cost factor for password hashing.
const bcryptCost = 12

// AuthService handles account signup, login, and identity lookup.
type AuthService struct {
	users    UserStore
	tokens   *token.Service
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, tokens *token.Service, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

// Signup creates an account and issues its first credential. The
// password is bcrypt-hashed and new accounts always get the user role.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	credential, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("account created")
	return &model.AuthResponse{Token: credential, User: user}, nil
}

// Login verifies an email/password pair and issues a credential.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	credential, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}
	return &model.AuthResponse{Token: credential, User: user}, nil
}

// CurrentUser resolves the account behind a verified credential.
func (s *AuthService) CurrentUser(ctx context.Context, claims *token.Claims) (*model.User, error) {
	return s.users.GetByID(ctx, claims.UserID)
}

// validationMessage flattens a validator error into one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}
