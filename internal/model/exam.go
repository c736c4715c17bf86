package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Exam struct {
	ID          string     `gorm:"primarykey;type:varchar(36)" json:"id"`
	Title       string     `json:"title" gorm:"not null"`
	CourseID    string     `json:"course_id" gorm:"index"`
	Duration    int        `json:"duration" gorm:"not null"` // minutes
	TotalPoints int        `json:"total_points" gorm:"default:0"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
