package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterTransactionRequest body para POST /api/inventory/transactions.
type RegisterTransactionRequest struct {
	ItemID          string           `json:"item_id" validate:"required,uuid"`
	ItemType        string           `json:"item_type" validate:"required,oneof=Part Material"`
	TransactionType string           `json:"transaction_type" validate:"required,oneof=Receipt Issue Adjustment"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceID     string           `json:"reference_id,omitempty" validate:"max=64"`
	ReferenceType   string           `json:"reference_type,omitempty" validate:"max=32"`
	Notes           string           `json:"notes,omitempty" validate:"max=500"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
}

// InventoryTransactionResponse una línea del kardex.
type InventoryTransactionResponse struct {
	ID              string           `json:"id"`
	ItemID          string           `json:"item_id"`
	ItemType        string           `json:"item_type"`
	TransactionType string           `json:"transaction_type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceID     string           `json:"reference_id,omitempty"`
	ReferenceType   string           `json:"reference_type,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	TransactionDate time.Time        `json:"transaction_date"`
	CreatedBy       string           `json:"created_by,omitempty"`
	OnHandAfter     *decimal.Decimal `json:"on_hand_after,omitempty"`
}

// OnHandResponse existencia de un ítem calculada desde el kardex.
type OnHandResponse struct {
	ItemID   string          `json:"item_id"`
	ItemType string          `json:"item_type"`
	ItemCode string          `json:"item_code"`
	ItemName string          `json:"item_name"`
	OnHand   decimal.Decimal `json:"on_hand"`
	AsOf     time.Time       `json:"as_of"`
}

// TransactionListResponse kardex paginado.
type TransactionListResponse struct {
	Items []InventoryTransactionResponse `json:"items"`
	Page  PageResponse                   `json:"page"`
}
