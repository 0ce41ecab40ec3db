package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelhub/auth-service/internal/models"
)

func (r *GormRepo) FindPersonByUser(ctx context.Context, userID string) (*models.Person, error) {
	var person models.Person
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *GormRepo) SavePerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.NewString()
		return r.DB.WithContext(ctx).Create(person).Error
	}
	return r.DB.WithContext(ctx).Save(person).Error
}

func (r *GormRepo) ListPeople(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	if err := r.DB.WithContext(ctx).Order("created_at").Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}
