package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hotelhub/auth-service/internal/models"
)

func (r *GormRepo) FindRefreshByToken(ctx context.Context, tokenStr string) (*models.RefreshToken, error) {
	var tok models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", tokenStr).First(&tok).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshNotFound
		}
		return nil, err
	}
	return &tok, nil
}

// ReplaceRefresh removes any refresh token the user still owns and inserts the
// new one in the same transaction, so a racing login never leaves the account
// with zero or two live tokens.
func (r *GormRepo) ReplaceRefresh(ctx context.Context, tok *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", tok.UserID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(tok).Error
	})
}

func (r *GormRepo) DeleteRefreshByID(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.RefreshToken{}).Error
}

func (r *GormRepo) DeleteRefreshByUser(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (r *GormRepo) CountRefreshByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
