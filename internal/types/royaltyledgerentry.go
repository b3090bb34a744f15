package types

import (
	"time"

	"github.com/google/uuid"
)

// RoyaltyLedgerEntry is append-only bookkeeping. Rows are written once and
// never mutated; there is deliberately no UpdatedAt.
type RoyaltyLedgerEntry struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID     uuid.UUID     `gorm:"type:uuid;not null;index;column:package_id" json:"packageId"`
	BeneficiaryID uuid.UUID     `gorm:"type:uuid;not null;index;column:beneficiary_id" json:"beneficiaryId"`
	Source        RoyaltySource `gorm:"not null;column:source" json:"source"`
	Amount        USD           `gorm:"not null;default:0;column:amount" json:"amount"`
	Currency      string        `gorm:"not null;default:'USD';column:currency" json:"currency"`
	CreatedAt     time.Time     `gorm:"not null" json:"createdAt"`
}

func (RoyaltyLedgerEntry) TableName() string {
	return "royalty_ledger_entry"
}
