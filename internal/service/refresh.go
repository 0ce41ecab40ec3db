package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hotelhub/auth-service/internal/models"
	"github.com/hotelhub/auth-service/internal/repo"
)

var ErrRefreshTokenExpired = errors.New("refresh token expired, please sign in again")

// RefreshTokenService owns the one-live-token-per-account rule: creating a
// token for an account always replaces whatever it held before.
type RefreshTokenService struct {
	Repo *repo.GormRepo
	TTL  time.Duration
}

func (s *RefreshTokenService) Create(ctx context.Context, userID string) (*models.RefreshToken, error) {
	if _, err := s.Repo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	tok := &models.RefreshToken{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.TTL),
	}
	if err := s.Repo.ReplaceRefresh(ctx, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (s *RefreshTokenService) FindByToken(ctx context.Context, tokenStr string) (*models.RefreshToken, error) {
	return s.Repo.FindRefreshByToken(ctx, tokenStr)
}

// VerifyExpiration deletes the record and fails once the expiry instant is
// reached; the boundary is inclusive. It never extends the expiry.
func (s *RefreshTokenService) VerifyExpiration(ctx context.Context, tok *models.RefreshToken) (*models.RefreshToken, error) {
	if !time.Now().Before(tok.ExpiresAt) {
		if err := s.Repo.DeleteRefreshByID(ctx, tok.ID); err != nil {
			return nil, err
		}
		return nil, ErrRefreshTokenExpired
	}
	return tok, nil
}

func (s *RefreshTokenService) DeleteByUser(ctx context.Context, userID string) error {
	return s.Repo.DeleteRefreshByUser(ctx, userID)
}
