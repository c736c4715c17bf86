package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerMap stores the submitted answers keyed by question ID as a JSON column.
type AnswerMap map[string]string

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		m = AnswerMap{}
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = AnswerMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported type %T for AnswerMap", value)
}

type ExamAttempt struct {
	ID          string     `gorm:"primarykey;type:varchar(36)" json:"id"`
	StudentID   string     `json:"student_id" gorm:"not null;index"`
	ExamID      string     `json:"exam_id" gorm:"not null;index"`
	Exam        Exam       `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Answers     AnswerMap  `json:"answers" gorm:"type:jsonb"`
	Score       int        `json:"score" gorm:"default:0"`
	TotalPoints int        `json:"total_points" gorm:"default:0"`
	StartedAt   time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt *time.Time `json:"completed_at,omitempty"` // set exactly once; the attempt is immutable afterwards
}

func (a *ExamAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Answers == nil {
		a.Answers = AnswerMap{}
	}
	return nil
}

func (a *ExamAttempt) Completed() bool {
	return a.CompletedAt != nil
}
