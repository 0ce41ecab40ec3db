package models

import "time"

const (
	RoleAdmin        = "ADMIN"
	RoleUser         = "USER"
	RoleHotelManager = "HOTEL_MANAGER"
)

type User struct {
	ID           string    `gorm:"primaryKey"           json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	RoleID       string    `gorm:"index;not null"       json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Role struct {
	ID   string `gorm:"primaryKey"           json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type RefreshToken struct {
	ID        string    `gorm:"primaryKey"           json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	UserID    string    `gorm:"index;not null"       json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"             json:"expires_at"`
}

type Person struct {
	ID        string    `gorm:"primaryKey"           json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName string    `gorm:"not null"             json:"first_name"`
	LastName  string    `gorm:"not null"             json:"last_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
