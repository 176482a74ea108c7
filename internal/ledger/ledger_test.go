package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositCreatesAccount(t *testing.T) {
	l := New()

	tx, err := l.Deposit("a-key", 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), tx.Amount)
	assert.Equal(t, "a-key", tx.Account)

	balance, err := l.BalanceOf("a-key")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)
}

func TestDepositZeroStillCreatesAccount(t *testing.T) {
	l := New()

	_, err := l.Deposit("a-key", 0)
	require.NoError(t, err)

	balance, err := l.BalanceOf("a-key")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestDepositOverfunded(t *testing.T) {
	l := New()
	_, err := l.Deposit("a-key", 1)
	require.NoError(t, err)

	_, err = l.Deposit("a-key", math.MaxUint64)
	require.Error(t, err)
	var ledgerErr *Error
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, AccountOverFunded, ledgerErr.Kind)
}

func TestWithdrawUnknownAccountFails(t *testing.T) {
	l := New()

	_, err := l.Withdraw("ghost", 10)
	require.Error(t, err)
	var ledgerErr *Error
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, AccountNotFound, ledgerErr.Kind)
}

func TestWithdrawUnderfunded(t *testing.T) {
	l := New()
	_, err := l.Deposit("a-key", 0)
	require.NoError(t, err)

	_, err = l.Withdraw("a-key", 100)
	require.Error(t, err)
	var ledgerErr *Error
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, AccountUnderFunded, ledgerErr.Kind)
}

func TestWithdrawWorks(t *testing.T) {
	l := New()
	_, err := l.Deposit("a-key", 100)
	require.NoError(t, err)

	tx, err := l.Withdraw("a-key", 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), tx.Amount)

	balance, err := l.BalanceOf("a-key")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestSendWorks(t *testing.T) {
	l := New()
	_, err := l.Deposit("a-key", 100)
	require.NoError(t, err)
	_, err = l.Deposit("b-key", 0)
	require.NoError(t, err)

	withdrawTx, depositTx, err := l.Send("a-key", "b-key", 100)
	require.NoError(t, err)
	assert.Equal(t, "a-key", withdrawTx.Account)
	assert.Equal(t, "b-key", depositTx.Account)

	aBalance, _ := l.BalanceOf("a-key")
	bBalance, _ := l.BalanceOf("b-key")
	assert.Equal(t, uint64(0), aBalance)
	assert.Equal(t, uint64(100), bBalance)
}

// TestSendUnderfundedRollsBack mirrors the original Rust test
// (test_accounts_send_underfunded_fails_and_rolls_back): a failed send
// must leave every account's balance untouched, not just the two
// involved.
func TestSendUnderfundedRollsBack(t *testing.T) {
	l := New()
	_, err := l.Deposit("a-key", 100)
	require.NoError(t, err)
	_, err = l.Deposit("b-key", 0)
	require.NoError(t, err)

	before := l.Accounts()

	_, _, err = l.Send("a-key", "b-key", 101)
	require.Error(t, err)

	assert.Equal(t, before, l.Accounts())
}

// TestSendOverfundedRollsBack mirrors
// test_accounts_send_overfunded_fails_and_rolls_back: the sender's
// balance must be restored exactly when the recipient side would
// overflow.
func TestSendOverfundedRollsBack(t *testing.T) {
	l := New()
	_, err := l.Deposit("a-key", 100)
	require.NoError(t, err)
	_, err = l.Deposit("b-key", math.MaxUint64)
	require.NoError(t, err)

	before := l.Accounts()

	_, _, err = l.Send("a-key", "b-key", 1)
	require.Error(t, err)
	var ledgerErr *Error
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, AccountOverFunded, ledgerErr.Kind)

	assert.Equal(t, before, l.Accounts())
}

func TestSendUnknownSenderOrRecipientFails(t *testing.T) {
	l := New()
	_, err := l.Deposit("a-key", 100)
	require.NoError(t, err)

	_, _, err = l.Send("ghost", "a-key", 1)
	require.Error(t, err)
	var ledgerErr *Error
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, AccountNotFound, ledgerErr.Kind)

	_, _, err = l.Send("a-key", "ghost", 1)
	require.Error(t, err)
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, AccountNotFound, ledgerErr.Kind)
}

func TestZeroAmountSendSucceeds(t *testing.T) {
	l := New()
	_, err := l.Deposit("a-key", 0)
	require.NoError(t, err)
	_, err = l.Deposit("b-key", 0)
	require.NoError(t, err)

	withdrawTx, depositTx, err := l.Send("a-key", "b-key", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), withdrawTx.Amount)
	assert.Equal(t, uint64(0), depositTx.Amount)
}

func TestBalanceOfUnknownAccountFails(t *testing.T) {
	l := New()
	_, err := l.BalanceOf("ghost")
	require.Error(t, err)
	var ledgerErr *Error
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, AccountNotFound, ledgerErr.Kind)
}
