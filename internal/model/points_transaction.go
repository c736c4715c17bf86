package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType is the closed set of ledger entry types.
type TransactionType string

const (
	TransactionEarned         TransactionType = "earned"
	TransactionSpent          TransactionType = "spent"
	TransactionPurchased      TransactionType = "purchased"
	TransactionTransferredIn  TransactionType = "transferred_in"
	TransactionTransferredOut TransactionType = "transferred_out"
)

// PointsTransaction is an append-only ledger entry. Amount is always stored
// positive; the sign of its effect on the balance follows from Type.
type PointsTransaction struct {
	ID          string          `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID      string          `json:"user_id" gorm:"not null;index"`
	Amount      int             `json:"amount" gorm:"not null"`
	Type        TransactionType `json:"type" gorm:"type:varchar(20);not null"`
	Description string          `json:"description" gorm:"type:text"`
	ReferenceID *string         `json:"reference_id,omitempty"` // originating exam, course or referral
	CreatedAt   time.Time       `json:"created_at"`
}

func (t *PointsTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// SignedEffect returns the amount with the sign this entry applies to the
// holder's balance.
func (t *PointsTransaction) SignedEffect() int {
	switch t.Type {
	case TransactionSpent, TransactionTransferredOut:
		return -t.Amount
	default:
		return t.Amount
	}
}
