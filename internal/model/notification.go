package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType is the closed set of notification categories.
type NotificationType string

const (
	NotificationGrade    NotificationType = "grade"
	NotificationActivity NotificationType = "activity"
	NotificationPoints   NotificationType = "points"
	NotificationInvite   NotificationType = "invite"
	NotificationGeneral  NotificationType = "general"
)

type Notification struct {
	ID        string           `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID    string           `json:"user_id" gorm:"not null;index"`
	Title     string           `json:"title" gorm:"not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	IsRead    bool             `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
