package models

// Profile holds the personal data of exactly one User.
type Profile struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	UserID    uint64 `gorm:"column:usuario_id;uniqueIndex;not null" json:"usuario_id"`
	FirstName string `gorm:"column:nombre;type:varchar(255);not null" json:"nombre"`
	LastName  string `gorm:"column:apellido;type:varchar(255);not null" json:"apellido"`
}

func (Profile) TableName() string {
	return "personas"
}
