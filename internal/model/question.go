package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray stores the answer options as a JSON column.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return fmt.Errorf("unsupported type %T for StringArray", value)
}

type Question struct {
	ID            string      `gorm:"primarykey;type:varchar(36)" json:"id"`
	ExamID        string      `json:"exam_id" gorm:"not null;index"`
	Question      string      `json:"question" gorm:"type:text;not null"`
	Options       StringArray `json:"options" gorm:"type:jsonb"`
	CorrectAnswer string      `json:"correct_answer"`
	Points        int         `json:"points" gorm:"default:1"`
	Order         int         `json:"order" gorm:"column:question_order"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// Weight is the score value of the question, defaulting to a single point
// when no explicit value was stored.
func (q *Question) Weight() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}
