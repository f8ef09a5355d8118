package http_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

// ── Repositorios en memoria para armar los casos de uso reales ──────────────

var today = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return today.Add(8 * time.Hour) }

type memDemand struct {
	orders []entity.SalesOrderDemand
	err    error
	block  bool
}

func (m *memDemand) ListOpenSalesOrderLines(ctx context.Context, from, to time.Time, _ []string) ([]entity.SalesOrderDemand, error) {
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	var out []entity.SalesOrderDemand
	for _, o := range m.orders {
		if !o.DeliveryDate.Before(from) && !o.DeliveryDate.After(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memDemand) ListForecasts(context.Context, time.Time, time.Time) ([]entity.Forecast, error) {
	return nil, nil
}

type memBOM struct{ lines []entity.BOMLine }

func (m *memBOM) ListMaterialLines(_ context.Context, parents []string) ([]entity.BOMLine, error) {
	return m.lines, nil
}

// memLedger kardex mínimo: suma con signo por ítem.
type memLedger struct {
	stock map[string]decimal.Decimal
	txns  []*entity.InventoryTransaction
}

func newLedger() *memLedger { return &memLedger{stock: map[string]decimal.Decimal{}} }

func (m *memLedger) OnHandQuantity(_ context.Context, t entity.ItemType, id string) (decimal.Decimal, error) {
	return m.stock[string(t)+":"+id], nil
}

func (m *memLedger) LockItem(context.Context, entity.ItemType, string) error { return nil }

func (m *memLedger) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	key := string(tx.ItemType) + ":" + tx.ItemID
	switch tx.TransactionType {
	case entity.TransactionTypeIssue:
		m.stock[key] = m.stock[key].Sub(tx.Quantity)
	default:
		m.stock[key] = m.stock[key].Add(tx.Quantity)
	}
	m.txns = append(m.txns, tx)
	return nil
}

func (m *memLedger) ListByItem(_ context.Context, t entity.ItemType, id string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range m.txns {
		if tx.ItemType == t && tx.ItemID == id {
			out = append(out, tx)
		}
	}
	return out, nil
}

type memItems struct{ items map[string]*entity.ItemRef }

func (m *memItems) GetItem(_ context.Context, t entity.ItemType, id string) (*entity.ItemRef, error) {
	it, ok := m.items[id]
	if !ok || it.Type != t {
		return nil, nil
	}
	return it, nil
}

func (m *memItems) GetMaterial(_ context.Context, id string) (*entity.Material, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &entity.Material{ID: id, MaterialCode: it.Code}, nil
}

func (m *memItems) UpdateMaterialAverageCost(context.Context, string, decimal.Decimal) error {
	return nil
}

type memTxRunner struct {
	ledger *memLedger
	items  *memItems
}

func (r memTxRunner) Run(_ context.Context, fn func(repository.InventoryTransactionRepository, repository.ItemRepository) error) error {
	return fn(r.ledger, r.items)
}

type memRuns struct{ runs []*entity.MRPRun }

func (m *memRuns) Create(_ context.Context, r *entity.MRPRun) error {
	m.runs = append(m.runs, r)
	return nil
}

func (m *memRuns) GetByID(_ context.Context, id string) (*entity.MRPRun, error) {
	for _, r := range m.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRuns) List(_ context.Context, limit, offset int) ([]*entity.MRPRun, int, error) {
	return m.runs, len(m.runs), nil
}
