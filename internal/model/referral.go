package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Referral struct {
	ID           string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	ReferrerID   string    `json:"referrer_id" gorm:"not null;index"`
	ReferredID   string    `json:"referred_id" gorm:"not null;index"`
	PointsEarned int       `json:"points_earned" gorm:"default:50"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
