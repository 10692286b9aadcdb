package models

import (
	"time"
)

type Answer struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"column:contenido;type:text;not null" json:"contenido"`
	CreatedAt time.Time `gorm:"column:fecha_creacion;autoCreateTime;<-:create" json:"fecha_creacion"`
	UserID    uint64    `gorm:"column:usuario_id;not null;index" json:"usuario_id"`

	// Relations
	User       User        `gorm:"foreignKey:UserID" json:"-"`
	AnswerTags []AnswerTag `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Answer) TableName() string {
	return "respuestas"
}

// Tags returns the tags reachable through the preloaded join rows.
func (a Answer) Tags() []Tag {
	tags := make([]Tag, 0, len(a.AnswerTags))
	for _, at := range a.AnswerTags {
		if at.Tag.ID != 0 {
			tags = append(tags, at.Tag)
		}
	}
	return tags
}
