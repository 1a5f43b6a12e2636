package entities

import "time"

// AnnotationRecord is the relational row behind one Store key.
type AnnotationRecord struct {
	Key       string    `gorm:"column:record_key;type:text;primaryKey"`
	Payload   []byte    `gorm:"column:payload;type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (AnnotationRecord) TableName() string {
	return "annotation_records"
}
