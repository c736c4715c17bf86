package service

import (
	"fmt"

	"github.com/Hazemprogammar/SudanEdu/config"
	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/Hazemprogammar/SudanEdu/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// ReferralService credits referrers when users they invited register.
type ReferralService interface {
	Register(referralCode, newUserID string) (*dto.ReferralResponse, error)
	Stats(userID string) (*dto.ReferralStatsResponse, error)
}

type referralService struct {
	userRepo        repository.UserRepository
	referralRepo    repository.ReferralRepository
	walletSvc       WalletService
	notificationSvc NotificationService
	cfg             *config.Config
}

func NewReferralService(
	userRepo repository.UserRepository,
	referralRepo repository.ReferralRepository,
	walletSvc WalletService,
	notificationSvc NotificationService,
	cfg *config.Config,
) ReferralService {
	return &referralService{
		userRepo:        userRepo,
		referralRepo:    referralRepo,
		walletSvc:       walletSvc,
		notificationSvc: notificationSvc,
		cfg:             cfg,
	}
}

func (s *referralService) Register(referralCode, newUserID string) (*dto.ReferralResponse, error) {
	referrer, err := s.userRepo.FindByReferralCode(referralCode)
	if err != nil {
		return nil, notFoundOr(err, "referral code")
	}
	if _, err := s.userRepo.FindByID(newUserID); err != nil {
		return nil, notFoundOr(err, "referred user")
	}

	bonus := s.cfg.Points.ReferralBonus
	referral := model.Referral{
		ReferrerID:   referrer.ID,
		ReferredID:   newUserID,
		PointsEarned: bonus,
	}
	if err := s.referralRepo.Create(&referral); err != nil {
		log.Error().Err(err).Str("referrerID", referrer.ID).Msg("Failed to create referral record")
		return nil, fmt.Errorf("failed to record referral: %w", err)
	}

	referralID := referral.ID
	if _, err := s.walletSvc.Earn(referrer.ID, bonus, "Referral bonus", &referralID); err != nil {
		return nil, fmt.Errorf("failed to credit referral bonus: %w", err)
	}

	s.notificationSvc.Notify(referrer.ID, "Referral bonus",
		fmt.Sprintf("You earned %d points for inviting a friend", bonus),
		model.NotificationInvite)

	var resp dto.ReferralResponse
	if err := copier.Copy(&resp, &referral); err != nil {
		return nil, fmt.Errorf("error preparing referral response: %w", err)
	}
	return &resp, nil
}

func (s *referralService) Stats(userID string) (*dto.ReferralStatsResponse, error) {
	stats, err := s.referralRepo.StatsByReferrer(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to load referral stats")
		return nil, fmt.Errorf("error fetching referral stats: %w", err)
	}
	return &dto.ReferralStatsResponse{
		TotalInvites:      stats.TotalInvites,
		SuccessfulInvites: stats.TotalInvites,
		PointsEarned:      stats.PointsEarned,
	}, nil
}
