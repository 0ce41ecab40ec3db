package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hotelhub/auth-service/internal/hash"
	"github.com/hotelhub/auth-service/internal/logging"
	"github.com/hotelhub/auth-service/internal/models"
	"github.com/hotelhub/auth-service/internal/repo"
	"github.com/hotelhub/auth-service/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type AuthService struct {
	Repo    *repo.GormRepo
	Codec   *token.Codec
	Refresh *RefreshTokenService
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
}

type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	RoleID          string
	Profile         *ProfileInput
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	Role         string
}

// Authenticate resolves the account for an email/password pair. A missing
// account and a wrong password both come back as ErrInvalidCredentials so the
// response does not reveal which of the two it was.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	taken, err := s.Repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		l.Warn("register rejected", "reason", "email_taken")
		return nil, ErrEmailTaken
	}

	if in.Password != in.PasswordConfirm {
		l.Warn("register rejected", "reason", "password_mismatch")
		return nil, ErrPasswordMismatch
	}

	var role *models.Role
	if in.RoleID != "" {
		role, err = s.Repo.FindRoleByID(ctx, in.RoleID)
		if err != nil {
			return nil, err
		}
	} else {
		role, err = s.Repo.FindRoleByName(ctx, models.RoleUser)
		if err != nil {
			if errors.Is(err, repo.ErrRoleNotFound) {
				// Startup invariant broken: EnsureSeedRoles did not run.
				return nil, fmt.Errorf("default role %q is not seeded: %w", models.RoleUser, err)
			}
			return nil, err
		}
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: pwHash,
		RoleID:       role.ID,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if in.Profile != nil {
		person := &models.Person{
			UserID:    user.ID,
			FirstName: in.Profile.FirstName,
			LastName:  in.Profile.LastName,
			Phone:     in.Profile.Phone,
		}
		if err := s.Repo.SavePerson(ctx, person); err != nil {
			return nil, err
		}
	}

	// The password was verified against its confirmation above, so tokens are
	// issued straight from the new account without a second credential check.
	l.Info("account registered", "user_id", user.ID, "role", role.Name)
	return s.issue(ctx, user, role.Name)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Warn("login rejected", "reason", "invalid_credentials")
		}
		return nil, err
	}

	role, err := s.Repo.FindRoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	l.Info("login successful", "user_id", user.ID)
	return s.issue(ctx, user, role.Name)
}

func (s *AuthService) issue(ctx context.Context, user *models.User, roleName string) (*AuthResult, error) {
	accessToken, err := s.Codec.Issue(user, roleName)
	if err != nil {
		return nil, err
	}

	refresh, err := s.Refresh.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         roleName,
	}, nil
}

// RefreshAccessToken exchanges a live refresh token for a new access token.
// The refresh token itself is returned unchanged: only login rotates it.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	tok, err := s.Refresh.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	tok, err = s.Refresh.VerifyExpiration(ctx, tok)
	if err != nil {
		l.Warn("refresh rejected", "reason", "expired")
		return nil, err
	}

	user, err := s.Repo.FindUserByID(ctx, tok.UserID)
	if err != nil {
		return nil, err
	}
	role, err := s.Repo.FindRoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.Codec.Issue(user, role.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: tok.Token,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         role.Name,
	}, nil
}

// Logout drops the account's refresh token. Calling it for an account with no
// live token is a successful no-op.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.Refresh.DeleteByUser(ctx, userID)
}

func (s *AuthService) ValidateToken(tokenStr string) bool {
	_, err := s.Codec.Verify(tokenStr)
	return err == nil
}
