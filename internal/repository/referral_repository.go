package repository

import (
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"gorm.io/gorm"
)

type ReferralStats struct {
	TotalInvites int64
	PointsEarned int64
}

type ReferralRepository interface {
	Create(referral *model.Referral) error
	StatsByReferrer(referrerID string) (*ReferralStats, error)
}

type referralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(referral *model.Referral) error {
	return r.db.Create(referral).Error
}

func (r *referralRepository) StatsByReferrer(referrerID string) (*ReferralStats, error) {
	var stats ReferralStats
	err := r.db.Model(&model.Referral{}).
		Where("referrer_id = ?", referrerID).
		Select("COUNT(*) AS total_invites, COALESCE(SUM(points_earned), 0) AS points_earned").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
