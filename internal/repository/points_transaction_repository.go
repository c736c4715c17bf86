package repository

import (
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"gorm.io/gorm"
)

// PointsTransactionRepository reads the append-only ledger. Writes happen
// inside the wallet service's transactions together with the balance update.
type PointsTransactionRepository interface {
	FindAllByUser(userID string) ([]model.PointsTransaction, error)
	SumAmountByType(txType model.TransactionType) (int64, error)
}

type pointsTransactionRepository struct {
	db *gorm.DB
}

func NewPointsTransactionRepository(db *gorm.DB) PointsTransactionRepository {
	return &pointsTransactionRepository{db: db}
}

func (r *pointsTransactionRepository) FindAllByUser(userID string) ([]model.PointsTransaction, error) {
	var transactions []model.PointsTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *pointsTransactionRepository) SumAmountByType(txType model.TransactionType) (int64, error) {
	var total int64
	err := r.db.Model(&model.PointsTransaction{}).
		Where("type = ?", txType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
