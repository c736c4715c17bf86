package repository

import (
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindAllByUser(userID string) ([]model.Notification, error)
	MarkRead(id string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindAllByUser(userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(id string) (int64, error) {
	res := r.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true)
	return res.RowsAffected, res.Error
}
