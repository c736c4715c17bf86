package service

import (
	"fmt"

	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/Hazemprogammar/SudanEdu/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type NotificationService interface {
	// Notify queues a user-addressed message. It is fire-and-forget: delivery
	// failures are logged and never propagated to the triggering operation.
	Notify(userID, title, message string, notifType model.NotificationType)
	List(userID string) ([]dto.NotificationResponse, error)
	MarkRead(id string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Notify(userID, title, message string, notifType model.NotificationType) {
	notification := model.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	if err := s.notificationRepo.Create(&notification); err != nil {
		log.Warn().Err(err).Str("userID", userID).Str("title", title).Msg("Failed to queue notification")
	}
}

func (s *notificationService) List(userID string) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to list notifications")
		return nil, fmt.Errorf("error fetching notifications: %w", err)
	}

	dtos := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		var resp dto.NotificationResponse
		if err := copier.Copy(&resp, &n); err != nil {
			return nil, fmt.Errorf("error preparing notification response: %w", err)
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}

func (s *notificationService) MarkRead(id string) error {
	affected, err := s.notificationRepo.MarkRead(id)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}
