package models

import "time"

// User описывает пользователя, который ставит реакции.
type User struct {
	ID          int64     `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Роли в access токене.
const (
	RoleUser    = "user"
	RoleService = "service"
)
