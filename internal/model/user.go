package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent     Role = "student"
	RoleTeacher     Role = "teacher"
	RoleInstitution Role = "institution"
	RoleParent      Role = "parent"
	RoleAdmin       Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleInstitution, RoleParent, RoleAdmin:
		return true
	}
	return false
}

// CanAuthorExams reports whether the role may create exams and questions.
func (r Role) CanAuthorExams() bool {
	return r == RoleTeacher || r == RoleAdmin
}

type User struct {
	ID            string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	Email         string    `json:"email" gorm:"uniqueIndex"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          Role      `json:"role" gorm:"type:varchar(20);default:'student'"`
	PointsBalance int       `json:"points_balance" gorm:"not null;default:0"` // maintained by the points ledger only
	ReferralCode  string    `json:"referral_code" gorm:"uniqueIndex"`
	ReferredBy    *string   `json:"referred_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if u.ReferralCode == "" {
		u.ReferralCode = fmt.Sprintf("REF_%s", strings.ToUpper(uuid.NewString()[:8]))
	}
	return nil
}
