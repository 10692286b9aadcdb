package models

import (
	"time"
)

type UserRole string

const (
	RoleAdministrator UserRole = "administrador"
	RoleRegular       UserRole = "usuario"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleAdministrator || r == RoleRegular
}

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"column:nombre_usuario;type:varchar(255);uniqueIndex;not null" json:"nombre_usuario"`
	Email        string     `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Role         UserRole   `gorm:"column:tipo_usuario;type:varchar(20);not null;default:'usuario'" json:"tipo_usuario"`
	PasswordHash string     `gorm:"column:password;type:varchar(128);not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	IsStaff      bool       `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool       `gorm:"not null;default:false" json:"is_superuser"`
	LastLogin    *time.Time `json:"last_login"`
	DateJoined   time.Time  `gorm:"autoCreateTime" json:"date_joined"`

	// Relations
	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Answers []Answer `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "usuarios"
}

// String is the display form used when a user is rendered inside another resource.
func (u User) String() string {
	return u.Email
}
