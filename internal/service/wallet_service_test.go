package service

import (
	"testing"
	"time"

	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletPurchaseAndSpend(t *testing.T) {
	s := newTestServices(t)
	user := createStudent(t, s.db, 100)

	entry, err := s.wallet.Purchase(user.ID, 500, "")
	require.NoError(t, err)
	assert.Equal(t, 500, entry.Amount)
	assert.Equal(t, string(model.TransactionPurchased), entry.Type)
	assert.Equal(t, "Points purchase", entry.Description)
	assert.Equal(t, 600, userBalance(t, s.db, user.ID))

	notifications := userNotifications(t, s.db, user.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationPoints, notifications[0].Type)

	_, err = s.wallet.Spend(user.ID, 700, "Course enrollment", nil)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 600, userBalance(t, s.db, user.ID))

	_, err = s.wallet.Spend(user.ID, 600, "Course enrollment", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, userBalance(t, s.db, user.ID))
}

func TestWalletSpendRejectedOverdraftLeavesNoEntry(t *testing.T) {
	s := newTestServices(t)
	user := createStudent(t, s.db, 10)

	_, err := s.wallet.Spend(user.ID, 11, "Too expensive", nil)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, 10, userBalance(t, s.db, user.ID))
	assert.Empty(t, ledgerEntries(t, s.db, user.ID))
}

func TestWalletTransfer(t *testing.T) {
	s := newTestServices(t)
	sender := createStudent(t, s.db, 200)
	receiver := createStudent(t, s.db, 50)

	require.NoError(t, s.wallet.Transfer(sender.ID, receiver.ID, 80, ""))

	assert.Equal(t, 120, userBalance(t, s.db, sender.ID))
	assert.Equal(t, 130, userBalance(t, s.db, receiver.ID))

	out := ledgerEntries(t, s.db, sender.ID)
	require.Len(t, out, 1)
	assert.Equal(t, model.TransactionTransferredOut, out[0].Type)
	assert.Equal(t, 80, out[0].Amount)
	assert.Equal(t, -80, out[0].SignedEffect())

	in := ledgerEntries(t, s.db, receiver.ID)
	require.Len(t, in, 1)
	assert.Equal(t, model.TransactionTransferredIn, in[0].Type)
	assert.Equal(t, 80, in[0].Amount)

	assert.Len(t, userNotifications(t, s.db, sender.ID), 1)
	assert.Len(t, userNotifications(t, s.db, receiver.ID), 1)
}

func TestWalletTransferToSelfRejected(t *testing.T) {
	s := newTestServices(t)
	user := createStudent(t, s.db, 100)

	err := s.wallet.Transfer(user.ID, user.ID, 10, "")
	require.ErrorIs(t, err, ErrInvalidTransfer)
	assert.Equal(t, 100, userBalance(t, s.db, user.ID))
	assert.Empty(t, ledgerEntries(t, s.db, user.ID))
}

func TestWalletTransferInsufficientBalanceRollsBack(t *testing.T) {
	s := newTestServices(t)
	sender := createStudent(t, s.db, 30)
	receiver := createStudent(t, s.db, 0)

	err := s.wallet.Transfer(sender.ID, receiver.ID, 31, "")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, 30, userBalance(t, s.db, sender.ID))
	assert.Equal(t, 0, userBalance(t, s.db, receiver.ID))
	assert.Empty(t, ledgerEntries(t, s.db, sender.ID))
	assert.Empty(t, ledgerEntries(t, s.db, receiver.ID))
}

func TestWalletTransferToUnknownReceiverRollsBack(t *testing.T) {
	s := newTestServices(t)
	sender := createStudent(t, s.db, 100)

	err := s.wallet.Transfer(sender.ID, "no-such-user", 10, "")
	require.ErrorIs(t, err, ErrNotFound)

	// The debit must not survive the failed credit.
	assert.Equal(t, 100, userBalance(t, s.db, sender.ID))
	assert.Empty(t, ledgerEntries(t, s.db, sender.ID))
}

func TestWalletRejectsNonPositiveAmounts(t *testing.T) {
	s := newTestServices(t)
	user := createStudent(t, s.db, 100)
	other := createStudent(t, s.db, 0)

	_, err := s.wallet.Earn(user.ID, 0, "Nothing", nil)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = s.wallet.Purchase(user.ID, -50, "")
	require.ErrorIs(t, err, ErrInvalidAmount)

	err = s.wallet.Transfer(user.ID, other.ID, -5, "")
	require.ErrorIs(t, err, ErrInvalidAmount)

	assert.Equal(t, 100, userBalance(t, s.db, user.ID))
	assert.Empty(t, ledgerEntries(t, s.db, user.ID))
}

func TestWalletUnknownUser(t *testing.T) {
	s := newTestServices(t)

	_, err := s.wallet.Balance("no-such-user")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.wallet.Earn("no-such-user", 10, "Bonus", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWalletBalanceMatchesLedgerReplay(t *testing.T) {
	s := newTestServices(t)
	user := createStudent(t, s.db, 0)
	peer := createStudent(t, s.db, 0)

	_, err := s.wallet.Purchase(user.ID, 1000, "")
	require.NoError(t, err)
	_, err = s.wallet.Earn(user.ID, 25, "Exam completion bonus", nil)
	require.NoError(t, err)
	_, err = s.wallet.Spend(user.ID, 300, "Course enrollment", nil)
	require.NoError(t, err)
	require.NoError(t, s.wallet.Transfer(user.ID, peer.ID, 125, ""))

	replayed := 0
	for _, entry := range ledgerEntries(t, s.db, user.ID) {
		replayed += entry.SignedEffect()
	}

	balance, err := s.wallet.Balance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, replayed, balance)
	assert.Equal(t, 600, balance)
	assert.Equal(t, 125, userBalance(t, s.db, peer.ID))
}

func TestWalletTransactionsNewestFirst(t *testing.T) {
	s := newTestServices(t)
	user := createStudent(t, s.db, 0)

	base := time.Now().Add(-time.Hour)
	for i, txType := range []model.TransactionType{model.TransactionPurchased, model.TransactionEarned, model.TransactionSpent} {
		entry := model.PointsTransaction{
			UserID:    user.ID,
			Amount:    10,
			Type:      txType,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.db.Create(&entry).Error)
	}

	transactions, err := s.wallet.Transactions(user.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, string(model.TransactionSpent), transactions[0].Type)
	assert.Equal(t, string(model.TransactionEarned), transactions[1].Type)
	assert.Equal(t, string(model.TransactionPurchased), transactions[2].Type)
}
