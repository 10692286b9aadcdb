package models

// AnswerTag links one Answer to one Tag. The pair is unique.
type AnswerTag struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	AnswerID uint64 `gorm:"column:respuesta_id;not null;uniqueIndex:idx_respuesta_tag" json:"respuesta_id"`
	TagID    uint64 `gorm:"column:tag_id;not null;uniqueIndex:idx_respuesta_tag;index" json:"tag_id"`

	// Relations
	Answer Answer `gorm:"foreignKey:AnswerID" json:"-"`
	Tag    Tag    `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (AnswerTag) TableName() string {
	return "respuesta_tags"
}
