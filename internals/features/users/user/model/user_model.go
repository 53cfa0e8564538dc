package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserFirstName string  `gorm:"not null;column:user_first_name" json:"user_first_name"`
	UserLastName  string  `gorm:"not null;column:user_last_name"  json:"user_last_name"`
	UserDocNumero string  `gorm:"uniqueIndex;column:user_doc_numero" json:"user_doc_numero"`
	UserEmail     string  `gorm:"uniqueIndex;column:user_email"      json:"user_email"`
	UserCelular   *string `gorm:"column:user_celular" json:"user_celular,omitempty"`

	// hash bcrypt; nunca se serializa
	UserPassword string `gorm:"not null;column:user_password" json:"-"`

	UserIsActive bool `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time     `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index"          json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) FullName() string {
	return u.UserFirstName + " " + u.UserLastName
}
