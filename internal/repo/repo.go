package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrPersonNotFound  = errors.New("person not found")
	ErrRefreshNotFound = errors.New("refresh token not found")
)

type GormRepo struct {
	DB *gorm.DB
}
