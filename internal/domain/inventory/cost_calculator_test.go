package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMovingAverageCost(t *testing.T) {
	// 10 u a 100 + 30 u a 200 = 7000 / 40 = 175
	got := inventory.MovingAverageCost(d("10"), d("100"), d("30"), d("200"))
	assert.True(t, got.Equal(d("175")), got.String())
}

func TestMovingAverageCost_SinExistenciaPrevia(t *testing.T) {
	got := inventory.MovingAverageCost(d("-5"), d("100"), d("4"), d("250"))
	assert.True(t, got.Equal(d("250")), "existencia negativa se trata como cero: %s", got)
}

func TestMovingAverageCost_CantidadCero(t *testing.T) {
	got := inventory.MovingAverageCost(decimal.Zero, d("100"), decimal.Zero, d("250"))
	assert.True(t, got.IsZero())
}

func TestSignedQuantity(t *testing.T) {
	assert.True(t, inventory.SignedQuantity(entity.TransactionTypeReceipt, d("5")).Equal(d("5")))
	assert.True(t, inventory.SignedQuantity(entity.TransactionTypeIssue, d("5")).Equal(d("-5")))
	assert.True(t, inventory.SignedQuantity(entity.TransactionTypeAdjustment, d("-2")).Equal(d("-2")))
	assert.True(t, inventory.SignedQuantity("Transfer", d("5")).IsZero())
}
