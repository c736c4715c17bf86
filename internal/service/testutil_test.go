package service

import (
	"fmt"
	"testing"

	"github.com/Hazemprogammar/SudanEdu/config"
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/Hazemprogammar/SudanEdu/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database per test. The shared-cache
// DSN keeps every pooled connection on the same database instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Exam{},
		&model.Question{},
		&model.ExamAttempt{},
		&model.PointsTransaction{},
		&model.Notification{},
		&model.Referral{},
	))
	return db
}

func defaultTestConfig() *config.Config {
	return &config.Config{
		Points: config.Points{ReferralBonus: 50},
		Exams:  config.Exams{AllowConcurrentAttempts: true},
	}
}

type testServices struct {
	db           *gorm.DB
	cfg          *config.Config
	notification NotificationService
	wallet       WalletService
	exam         ExamService
	attempt      AttemptService
	referral     ReferralService
	admin        AdminService
}

func newTestServices(t *testing.T) *testServices {
	return newTestServicesWithConfig(t, defaultTestConfig())
}

func newTestServicesWithConfig(t *testing.T, cfg *config.Config) *testServices {
	t.Helper()
	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	examRepo := repository.NewExamRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewExamAttemptRepository(db)
	transactionRepo := repository.NewPointsTransactionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	referralRepo := repository.NewReferralRepository(db)

	notificationSvc := NewNotificationService(notificationRepo)
	walletSvc := NewWalletService(userRepo, transactionRepo, notificationSvc, db)

	return &testServices{
		db:           db,
		cfg:          cfg,
		notification: notificationSvc,
		wallet:       walletSvc,
		exam:         NewExamService(examRepo, questionRepo),
		attempt:      NewAttemptService(examRepo, attemptRepo, walletSvc, notificationSvc, cfg, db),
		referral:     NewReferralService(userRepo, referralRepo, walletSvc, notificationSvc, cfg),
		admin:        NewAdminService(userRepo, examRepo, questionRepo, transactionRepo, db),
	}
}

func createUser(t *testing.T, db *gorm.DB, role model.Role, balance int) *model.User {
	t.Helper()
	user := &model.User{
		Email:         fmt.Sprintf("%s@test.local", uuid.NewString()[:8]),
		FirstName:     "Test",
		LastName:      "User",
		Role:          role,
		PointsBalance: balance,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createStudent(t *testing.T, db *gorm.DB, balance int) *model.User {
	return createUser(t, db, model.RoleStudent, balance)
}

// createMathExam seeds a 30-minute exam with two questions: q1 worth 1 point
// with correct answer "A" and q2 worth 2 points with correct answer "B".
func createMathExam(t *testing.T, db *gorm.DB) *model.Exam {
	t.Helper()
	exam := &model.Exam{
		Title:       "Algebra basics",
		CourseID:    "course-math-1",
		Duration:    30,
		TotalPoints: 3,
		Questions: []model.Question{
			{Question: "2 + 2 = ?", Options: model.StringArray{"A", "B", "C"}, CorrectAnswer: "A", Points: 1, Order: 1},
			{Question: "3 * 3 = ?", Options: model.StringArray{"A", "B", "C"}, CorrectAnswer: "B", Points: 2, Order: 2},
		},
	}
	require.NoError(t, db.Create(exam).Error)
	return exam
}

func userBalance(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()
	var user model.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.PointsBalance
}

func ledgerEntries(t *testing.T, db *gorm.DB, userID string) []model.PointsTransaction {
	t.Helper()
	var entries []model.PointsTransaction
	require.NoError(t, db.Where("user_id = ?", userID).Find(&entries).Error)
	return entries
}

func countLedgerEntries(t *testing.T, db *gorm.DB, userID string, txType model.TransactionType) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.PointsTransaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Count(&count).Error)
	return count
}

func userNotifications(t *testing.T, db *gorm.DB, userID string) []model.Notification {
	t.Helper()
	var notifications []model.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Find(&notifications).Error)
	return notifications
}
