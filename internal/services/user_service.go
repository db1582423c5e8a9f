package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/apperrors"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/logging"
	"github.com/justsurfingit/job-board/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgEmailTaken         = "Email already registered!"
	MsgInvalidCredentials = "Invalid Email Or Password."
	MsgRoleMismatch       = "User with provided email and role not found!"
	MsgInvalidRole        = "Role must be either Employer or Job Seeker."
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserService struct {
	Users UserRepository
	Log   *logging.Logger
	Cost  int // bcrypt cost
}

func NewUserService(users UserRepository, log *logging.Logger) *UserService {
	return &UserService{
		Users: users,
		Log:   log,
		Cost:  bcrypt.DefaultCost,
	}
}

// Register creates an account with a hashed password.
func (s *UserService) Register(ctx context.Context, req *dtos.RegisterRequest) (*models.User, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.BadRequest(MsgInvalidRole, err)
	}

	email := normalizeEmail(req.Email)
	_, err = s.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.BadRequest(MsgEmailTaken, nil)
	case !errors.Is(err, database.ErrNotFound):
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.Cost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Password: string(hash),
		Role:     role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperrors.BadRequest(MsgEmailTaken, err)
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.Log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks the credentials and that the account has the requested role.
func (s *UserService) Login(ctx context.Context, req *dtos.LoginRequest) (*models.User, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.BadRequest(MsgInvalidCredentials, err)
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.BadRequest(MsgInvalidCredentials, err)
	}

	if string(user.Role) != req.Role {
		return nil, apperrors.NotFound(MsgRoleMismatch, nil)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
