package service

import (
	"testing"

	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferralRegisterCreditsReferrer(t *testing.T) {
	s := newTestServices(t)
	referrer := createStudent(t, s.db, 0)
	require.NotEmpty(t, referrer.ReferralCode)
	newcomer := createStudent(t, s.db, 0)

	referral, err := s.referral.Register(referrer.ReferralCode, newcomer.ID)
	require.NoError(t, err)
	assert.Equal(t, referrer.ID, referral.ReferrerID)
	assert.Equal(t, newcomer.ID, referral.ReferredID)
	assert.Equal(t, 50, referral.PointsEarned)

	assert.Equal(t, 50, userBalance(t, s.db, referrer.ID))

	entries := ledgerEntries(t, s.db, referrer.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, model.TransactionEarned, entries[0].Type)
	require.NotNil(t, entries[0].ReferenceID)
	assert.Equal(t, referral.ID, *entries[0].ReferenceID)

	notifications := userNotifications(t, s.db, referrer.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationInvite, notifications[0].Type)
}

func TestReferralBonusFollowsConfig(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Points.ReferralBonus = 75
	s := newTestServicesWithConfig(t, cfg)
	referrer := createStudent(t, s.db, 0)
	newcomer := createStudent(t, s.db, 0)

	referral, err := s.referral.Register(referrer.ReferralCode, newcomer.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, referral.PointsEarned)
	assert.Equal(t, 75, userBalance(t, s.db, referrer.ID))
}

func TestReferralUnknownCode(t *testing.T) {
	s := newTestServices(t)
	newcomer := createStudent(t, s.db, 0)

	_, err := s.referral.Register("REF_NOPE", newcomer.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReferralUnknownReferredUser(t *testing.T) {
	s := newTestServices(t)
	referrer := createStudent(t, s.db, 0)

	_, err := s.referral.Register(referrer.ReferralCode, "no-such-user")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, userBalance(t, s.db, referrer.ID))
}

func TestReferralStats(t *testing.T) {
	s := newTestServices(t)
	referrer := createStudent(t, s.db, 0)

	stats, err := s.referral.Stats(referrer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalInvites)
	assert.EqualValues(t, 0, stats.PointsEarned)

	for i := 0; i < 2; i++ {
		newcomer := createStudent(t, s.db, 0)
		_, err := s.referral.Register(referrer.ReferralCode, newcomer.ID)
		require.NoError(t, err)
	}

	stats, err = s.referral.Stats(referrer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalInvites)
	assert.EqualValues(t, 2, stats.SuccessfulInvites)
	assert.EqualValues(t, 100, stats.PointsEarned)
}
