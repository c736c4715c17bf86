package service

import (
	"fmt"

	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/Hazemprogammar/SudanEdu/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// WalletService is the points ledger. Every mutation appends exactly one
// PointsTransaction row per affected user and adjusts the materialized balance
// in the same database transaction.
type WalletService interface {
	Balance(userID string) (int, error)
	Transactions(userID string) ([]dto.PointsTransactionResponse, error)
	Earn(userID string, amount int, description string, referenceID *string) (*dto.PointsTransactionResponse, error)
	Purchase(userID string, amount int, description string) (*dto.PointsTransactionResponse, error)
	Spend(userID string, amount int, description string, referenceID *string) (*dto.PointsTransactionResponse, error)
	Transfer(fromUserID, toUserID string, amount int, description string) error
}

type walletService struct {
	userRepo        repository.UserRepository
	transactionRepo repository.PointsTransactionRepository
	notificationSvc NotificationService
	db              *gorm.DB
}

func NewWalletService(
	userRepo repository.UserRepository,
	transactionRepo repository.PointsTransactionRepository,
	notificationSvc NotificationService,
	db *gorm.DB,
) WalletService {
	return &walletService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		notificationSvc: notificationSvc,
		db:              db,
	}
}

// creditBalance adds amount to the user's materialized balance as a single
// atomic UPDATE. Zero rows affected means the user does not exist.
func creditBalance(tx *gorm.DB, userID string, amount int) error {
	res := tx.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("points_balance", gorm.Expr("points_balance + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to credit balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// debitBalance subtracts amount with the non-negative check folded into the
// UPDATE's guard, so check and decrement cannot race.
func debitBalance(tx *gorm.DB, userID string, amount int) error {
	res := tx.Model(&model.User{}).
		Where("id = ? AND points_balance >= ?", userID, amount).
		UpdateColumn("points_balance", gorm.Expr("points_balance - ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to debit balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to debit balance: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("user %s: %w", userID, ErrInsufficientBalance)
	}
	return nil
}

// append writes one ledger entry and its balance effect atomically.
func (s *walletService) append(userID string, amount int, txType model.TransactionType, description string, referenceID *string) (*dto.PointsTransactionResponse, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount %d: %w", amount, ErrInvalidAmount)
	}

	entry := model.PointsTransaction{
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		ReferenceID: referenceID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		apply := creditBalance
		if txType == model.TransactionSpent || txType == model.TransactionTransferredOut {
			apply = debitBalance
		}
		if err := apply(tx, userID, amount); err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resp dto.PointsTransactionResponse
	if err := copier.Copy(&resp, &entry); err != nil {
		log.Error().Err(err).Str("transactionID", entry.ID).Msg("Failed to copy ledger entry to DTO")
		return nil, fmt.Errorf("error preparing transaction response: %w", err)
	}
	return &resp, nil
}

func (s *walletService) Balance(userID string) (int, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return 0, notFoundOr(err, "user")
	}
	return user.PointsBalance, nil
}

func (s *walletService) Transactions(userID string) ([]dto.PointsTransactionResponse, error) {
	transactions, err := s.transactionRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to list points transactions")
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}

	dtos := make([]dto.PointsTransactionResponse, 0, len(transactions))
	for _, entry := range transactions {
		var resp dto.PointsTransactionResponse
		if err := copier.Copy(&resp, &entry); err != nil {
			return nil, fmt.Errorf("error preparing transaction response: %w", err)
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}

func (s *walletService) Earn(userID string, amount int, description string, referenceID *string) (*dto.PointsTransactionResponse, error) {
	return s.append(userID, amount, model.TransactionEarned, description, referenceID)
}

func (s *walletService) Purchase(userID string, amount int, description string) (*dto.PointsTransactionResponse, error) {
	if description == "" {
		description = "Points purchase"
	}
	resp, err := s.append(userID, amount, model.TransactionPurchased, description, nil)
	if err != nil {
		return nil, err
	}
	s.notificationSvc.Notify(userID, "Points purchased",
		fmt.Sprintf("%d points were added to your wallet", amount),
		model.NotificationPoints)
	return resp, nil
}

func (s *walletService) Spend(userID string, amount int, description string, referenceID *string) (*dto.PointsTransactionResponse, error) {
	return s.append(userID, amount, model.TransactionSpent, description, referenceID)
}

// Transfer moves points between two users. The debit, the credit and both
// ledger rows commit in one transaction so points are never destroyed or
// duplicated by a partial write.
func (s *walletService) Transfer(fromUserID, toUserID string, amount int, description string) error {
	if amount <= 0 {
		return fmt.Errorf("amount %d: %w", amount, ErrInvalidAmount)
	}
	if fromUserID == toUserID {
		return fmt.Errorf("user %s: %w", fromUserID, ErrInvalidTransfer)
	}

	outDesc := description
	inDesc := description
	if description == "" {
		outDesc = fmt.Sprintf("Transfer to user %s", toUserID)
		inDesc = fmt.Sprintf("Transfer from user %s", fromUserID)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := debitBalance(tx, fromUserID, amount); err != nil {
			return err
		}
		if err := creditBalance(tx, toUserID, amount); err != nil {
			return err
		}
		out := model.PointsTransaction{
			UserID:      fromUserID,
			Amount:      amount,
			Type:        model.TransactionTransferredOut,
			Description: outDesc,
		}
		if err := tx.Create(&out).Error; err != nil {
			return fmt.Errorf("failed to append sender ledger entry: %w", err)
		}
		in := model.PointsTransaction{
			UserID:      toUserID,
			Amount:      amount,
			Type:        model.TransactionTransferredIn,
			Description: inDesc,
		}
		if err := tx.Create(&in).Error; err != nil {
			return fmt.Errorf("failed to append receiver ledger entry: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("from", fromUserID).Str("to", toUserID).Int("amount", amount).Msg("Points transfer failed")
		return err
	}

	s.notificationSvc.Notify(fromUserID, "Points transferred",
		fmt.Sprintf("%d points were transferred successfully", amount),
		model.NotificationPoints)
	s.notificationSvc.Notify(toUserID, "Points received",
		fmt.Sprintf("You received %d points from another user", amount),
		model.NotificationPoints)
	return nil
}
