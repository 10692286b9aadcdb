package models

type Tag struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"column:nombre;type:varchar(100);uniqueIndex;not null" json:"nombre"`

	// Relations
	AnswerTags []AnswerTag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// TagWithCount is a tag together with the number of answers currently linked to it.
type TagWithCount struct {
	Tag
	AnswerCount int64 `gorm:"column:respuestas_count" json:"respuestas_count"`
}
