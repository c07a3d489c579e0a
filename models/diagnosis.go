package models

import (
	"time"

	"gorm.io/gorm"
)

// Prediction is the stored image-classification result. Confidence always
// carries two entries: [positive_probability, negative_probability].
type Prediction struct {
	Classification string    `json:"classification"`
	Confidence     []float64 `json:"confidence" gorm:"serializer:json"`
}

type DiagnosisHistory struct {
	gorm.Model
	UserID     uint       `json:"user_id"`
	User       User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ImageURL   string     `json:"image_url"`
	Prediction Prediction `json:"prediction" gorm:"embedded;embeddedPrefix:prediction_"`
	Location   string     `json:"location,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

func (d *DiagnosisHistory) BeforeCreate(tx *gorm.DB) error {
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}
	return nil
}
