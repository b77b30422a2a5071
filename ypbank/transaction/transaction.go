package transaction

import (
	"fmt"
	"time"

	constant "github.com/LerianStudio/lib-ypbank/ypbank/constants"
	"github.com/shopspring/decimal"
)

// Type identifies what kind of money movement a transaction records.
type Type string

const (
	// TypeDeposit moves money into an account, usually from an external source.
	TypeDeposit Type = constant.DEPOSIT
	// TypeTransfer moves money between two accounts of the bank.
	TypeTransfer Type = constant.TRANSFER
	// TypeWithdrawal moves money out of an account.
	TypeWithdrawal Type = constant.WITHDRAWAL
)

// String returns the uppercase label of the type.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known types.
func (t Type) IsValid() bool {
	switch t {
	case TypeDeposit, TypeTransfer, TypeWithdrawal:
		return true
	default:
		return false
	}
}

// Status represents the processing outcome of a transaction.
//
// Semantics:
//   - SUCCESS: the transaction was applied.
//   - FAILURE: the transaction was rejected; terminal state.
//   - PENDING: the transaction is still being processed.
type Status string

const (
	// StatusSuccess marks an applied transaction.
	StatusSuccess Status = constant.SUCCESS
	// StatusFailure marks a rejected transaction.
	StatusFailure Status = constant.FAILURE
	// StatusPending marks a transaction still in flight.
	StatusPending Status = constant.PENDING
)

// String returns the uppercase label of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusPending:
		return true
	default:
		return false
	}
}

// Transaction is a single YPBank transaction record.
type Transaction struct {
	ID          uint64 `json:"txId"`
	Type        Type   `json:"txType"`
	FromUserID  uint64 `json:"fromUserId"`
	ToUserID    uint64 `json:"toUserId"`
	Amount      int64  `json:"amount"`
	Timestamp   uint64 `json:"timestamp"`
	Status      Status `json:"status"`
	Description string `json:"description"`
}

// minorUnitsExponent scales Amount (cents) to major currency units.
const minorUnitsExponent = -2

// IsExternalDeposit reports whether the money comes from outside the bank.
func (t Transaction) IsExternalDeposit() bool {
	return t.FromUserID == constant.ExternalUserID
}

// Time returns the timestamp as a UTC time.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(int64(t.Timestamp)).UTC()
}

// MajorAmount returns Amount expressed in major currency units.
func (t Transaction) MajorAmount() decimal.Decimal {
	return decimal.New(t.Amount, minorUnitsExponent)
}

// String renders the transaction for human-readable reports.
func (t Transaction) String() string {
	return fmt.Sprintf(
		"{TX_ID: %d, TX_TYPE: %s, FROM_USER_ID: %d, TO_USER_ID: %d, AMOUNT: %d (%s), TIMESTAMP: %d, STATUS: %s, DESCRIPTION: %q}",
		t.ID, t.Type, t.FromUserID, t.ToUserID, t.Amount, t.MajorAmount().StringFixed(2), t.Timestamp, t.Status, t.Description,
	)
}

// Diff returns the keys of the fields that differ between t and other, in
// record order. An empty result means the transactions are identical.
func (t Transaction) Diff(other Transaction) []string {
	equal := map[string]bool{
		constant.KeyID:          t.ID == other.ID,
		constant.KeyType:        t.Type == other.Type,
		constant.KeyFromUserID:  t.FromUserID == other.FromUserID,
		constant.KeyToUserID:    t.ToUserID == other.ToUserID,
		constant.KeyAmount:      t.Amount == other.Amount,
		constant.KeyTimestamp:   t.Timestamp == other.Timestamp,
		constant.KeyStatus:      t.Status == other.Status,
		constant.KeyDescription: t.Description == other.Description,
	}

	var fields []string

	for _, key := range constant.RecordKeys {
		if !equal[key] {
			fields = append(fields, key)
		}
	}

	return fields
}
