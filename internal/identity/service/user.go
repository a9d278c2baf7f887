package service

import (
	"context"
	"errors"
	"time"

	identityerrors "wardrobe/internal/identity/errors"
	"wardrobe/internal/identity/repository"
	"wardrobe/internal/identity/validator"
	"wardrobe/pkg/auth"
	"wardrobe/pkg/config"
	apperrors "wardrobe/pkg/errors"
	"wardrobe/pkg/model"
	"wardrobe/pkg/validation"
)

const (
	userStore = "User store"

	msgInvalidCredentials = "Invalid email or password"
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidToken       = "Invalid or expired token"
	msgUserNotFound       = "User not found"
)

type TokenIssuer interface {
	Issue(subject, role string) (string, time.Time, error)
	Parse(token string) (*auth.Claims, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
	Waste(password string)
}

type LoginRecorder interface {
	Login(success bool)
}

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResult, error)
	Authenticate(ctx context.Context, req *model.LoginRequest) (*model.AuthResult, error)
	CurrentUser(ctx context.Context, credential string) (*model.User, error)
	ResolveActor(ctx context.Context, credential string) (*model.Actor, error)
	Provision(ctx context.Context, email, password, name string, role model.Role) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	tokens    TokenIssuer
	hasher    PasswordHasher
	recorder  LoginRecorder
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	tokens TokenIssuer,
	hasher PasswordHasher,
	recorder LoginRecorder,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		hasher:    hasher,
		recorder:  recorder,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResult, error) {
	s.validator.NormalizeRegister(req)
	if err := s.validator.ValidateRegister(req); err != nil {
		return nil, validation.ToAppError(err)
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, apperrors.Conflict("Email already registered")
	case !errors.Is(err, identityerrors.ErrNotFound):
		s.cfg.Log.Error("Failed to check existing user", "email", req.Email, "error", err)
		return nil, apperrors.Unavailable(userStore, err)
	}

	user, err := s.createUser(ctx, req.Email, req.Password, req.Name, model.RoleUser)
	if err != nil {
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("User registered successfully", "email", user.Email)
	return result, nil
}

func (s *userService) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.AuthResult, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, validation.ToAppError(err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, identityerrors.ErrNotFound) {
			s.hasher.Waste(req.Password)
			s.recorder.Login(false)
			s.cfg.Log.Warn("Login failed", "reason", "unknown email")
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		s.cfg.Log.Error("Failed to load user for login", "error", err)
		return nil, apperrors.Unavailable(userStore, err)
	}

	if err := s.hasher.Verify(user.PasswordHash, req.Password); err != nil {
		s.recorder.Login(false)
		s.cfg.Log.Warn("Login failed", "email", user.Email, "reason", "password mismatch")
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.recorder.Login(true)
	s.cfg.Log.Info("User logged in", "email", user.Email)
	return result, nil
}

// CurrentUser reloads the account named by credential so a deleted account
// stops authenticating even while its token is still valid.
func (s *userService) CurrentUser(ctx context.Context, credential string) (*model.User, error) {
	if credential == "" {
		return nil, apperrors.Unauthorized(msgNotAuthenticated)
	}

	claims, err := s.tokens.Parse(credential)
	if err != nil {
		s.cfg.Log.Debug("Rejected credential", "error", err)
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	user, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, identityerrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgUserNotFound)
		}
		return nil, apperrors.Unavailable(userStore, err)
	}
	return user, nil
}

func (s *userService) ResolveActor(ctx context.Context, credential string) (*model.Actor, error) {
	user, err := s.CurrentUser(ctx, credential)
	if err != nil {
		return nil, err
	}
	return user.Actor(), nil
}

func (s *userService) Provision(ctx context.Context, email, password, name string, role model.Role) (*model.User, error) {
	req := &model.RegisterRequest{Email: email, Password: password, Name: name}
	s.validator.NormalizeRegister(req)
	if err := s.validator.ValidateRegister(req); err != nil {
		return nil, validation.ToAppError(err)
	}
	if err := s.validator.ValidateRole(role); err != nil {
		return nil, validation.ToAppError(err)
	}

	user, err := s.createUser(ctx, req.Email, req.Password, req.Name, role)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("User provisioned", "email", user.Email, "role", user.Role)
	return user, nil
}

func (s *userService) createUser(ctx context.Context, email, password, name string, role model.Role) (*model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Internal("Failed to secure password", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, identityerrors.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered")
		}
		s.cfg.Log.Error("Failed to create user", "email", email, "error", err)
		return nil, apperrors.Unavailable(userStore, err)
	}
	return user, nil
}

func (s *userService) issue(user *model.User) (*model.AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.Email, user.Role.String())
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "email", user.Email, "error", err)
		return nil, apperrors.Internal("Failed to issue access token", err)
	}
	return &model.AuthResult{
		AccessToken: token,
		TokenType:   auth.TokenType,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
