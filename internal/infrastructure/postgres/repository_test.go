package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func sqlLike(fragment string) string { return regexp.QuoteMeta(fragment) }

var (
	day0 = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	day1 = day0.AddDate(0, 0, 90)
)

// ──────────────────────────────────────────────────────────────────────────────
// Demanda
// ──────────────────────────────────────────────────────────────────────────────

func TestDemandRepo_ListOpenSalesOrderLines(t *testing.T) {
	mock := newMock(t)
	statuses := entity.OpenSalesOrderStatuses
	rows := pgxmock.NewRows([]string{"id", "so_number", "name", "status", "delivery_date", "part_id", "part_number", "part_name", "quantity"}).
		AddRow("l1", "SO-001", "Acme", "Open", day0.AddDate(0, 0, 20), "p1", "PN-1", "Bracket", "100").
		AddRow("l2", "SO-002", "", "In Production", day0.AddDate(0, 0, 30), "p2", "PN-2", "Frame", "2.5")
	mock.ExpectQuery(sqlLike("FROM sales_order_lines sol")).
		WithArgs(day0, day1, statuses).
		WillReturnRows(rows)

	list, err := NewDemandRepository(mock).ListOpenSalesOrderLines(context.Background(), day0, day1, statuses)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "SO-001", list[0].SONumber)
	assert.Equal(t, "Acme", list[0].CustomerName)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, list[1].Quantity.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "In Production", list[1].Status)
}

func TestDemandRepo_ListForecasts(t *testing.T) {
	mock := newMock(t)
	rows := pgxmock.NewRows([]string{"id", "part_id", "part_number", "part_name", "period", "quantity"}).
		AddRow("f1", "p1", "PN-1", "Bracket", day0.AddDate(0, 0, 7), "20")
	mock.ExpectQuery(sqlLike("FROM forecasts f")).WithArgs(day0, day1).WillReturnRows(rows)

	list, err := NewDemandRepository(mock).ListForecasts(context.Background(), day0, day1)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p1", list[0].PartID)
	assert.True(t, list[0].Period.Equal(day0.AddDate(0, 0, 7)))
}

func TestDemandRepo_ErrorDeConsultaSePropaga(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(sqlLike("FROM forecasts f")).WithArgs(day0, day1).WillReturnError(errors.New("conexión perdida"))

	_, err := NewDemandRepository(mock).ListForecasts(context.Background(), day0, day1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list forecasts")
}

// ──────────────────────────────────────────────────────────────────────────────
// BOM
// ──────────────────────────────────────────────────────────────────────────────

func TestBOMRepo_ListMaterialLines(t *testing.T) {
	mock := newMock(t)
	parents := []string{"p1"}
	rows := pgxmock.NewRows([]string{"id", "parent_part_id", "material_id", "quantity_per_parent", "material_code",
		"description", "unit_price", "average_cost", "lead_time_days", "safety_stock_pct"}).
		AddRow("b1", "p1", "m1", "2", "MAT-1", "Lámina", "1500", "0", int64(14), "0.3").
		AddRow("b2", "p1", "m2", "0.0016", "MAT-2", "Pintura", nil, "800", nil, nil)
	mock.ExpectQuery(sqlLike("FROM bill_of_materials b")).WithArgs(parents).WillReturnRows(rows)

	lines, err := NewBOMRepository(mock).ListMaterialLines(context.Background(), parents)

	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.NotNil(t, lines[0].UnitPrice)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(1500)))
	require.NotNil(t, lines[0].LeadTimeDays)
	assert.Equal(t, 14, *lines[0].LeadTimeDays)
	require.NotNil(t, lines[0].SafetyStockPct)
	assert.Equal(t, "0.3", lines[0].SafetyStockPct.String())

	assert.Nil(t, lines[1].UnitPrice)
	assert.Nil(t, lines[1].LeadTimeDays)
	assert.Nil(t, lines[1].SafetyStockPct)
	assert.True(t, lines[1].AverageCost.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, "0.0016", lines[1].QuantityPerParent.String())
}

func TestBOMRepo_SinPadresNoConsulta(t *testing.T) {
	mock := newMock(t)

	lines, err := NewBOMRepository(mock).ListMaterialLines(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, lines)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryRepo_OnHandQuantity(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(sqlLike("FROM inventory_transactions")).
		WithArgs("Part", "p1").
		WillReturnRows(pgxmock.NewRows([]string{"on_hand"}).AddRow("30"))

	onHand, err := NewInventoryRepository(mock).OnHandQuantity(context.Background(), entity.ItemTypePart, "p1")

	require.NoError(t, err)
	assert.True(t, onHand.Equal(decimal.NewFromInt(30)))
}

func TestInventoryRepo_OnHandQuantity_Error(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(sqlLike("FROM inventory_transactions")).
		WithArgs("Material", "m1").
		WillReturnError(errors.New("timeout"))

	_, err := NewInventoryRepository(mock).OnHandQuantity(context.Background(), entity.ItemTypeMaterial, "m1")

	assert.Error(t, err)
}

func TestInventoryRepo_CreateAsignaIDyFechas(t *testing.T) {
	mock := newMock(t)
	args := make([]interface{}, 12)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectExec(sqlLike("INSERT INTO inventory_transactions")).
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	cost := decimal.NewFromInt(1200)
	tx := &entity.InventoryTransaction{
		ItemID:          "m1",
		ItemType:        entity.ItemTypeMaterial,
		TransactionType: entity.TransactionTypeReceipt,
		Quantity:        decimal.NewFromInt(50),
		UnitCost:        &cost,
	}
	err := NewInventoryRepository(mock).Create(context.Background(), tx)

	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.False(t, tx.CreatedAt.IsZero())
	assert.Equal(t, tx.CreatedAt, tx.TransactionDate)
}

func TestInventoryRepo_LockItem(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(sqlLike("pg_advisory_xact_lock")).
		WithArgs("Material:m1").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))

	require.NoError(t, NewInventoryRepository(mock).LockItem(context.Background(), entity.ItemTypeMaterial, "m1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Maestro de ítems
// ──────────────────────────────────────────────────────────────────────────────

func TestItemRepo_GetItem(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(sqlLike("FROM parts WHERE id = $1")).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "part_number", "part_name"}).AddRow("p1", "PN-1", "Bracket"))

	ref, err := NewItemRepository(mock).GetItem(context.Background(), entity.ItemTypePart, "p1")

	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "PN-1", ref.Code)
	assert.Equal(t, entity.ItemTypePart, ref.Type)
}

func TestItemRepo_GetItem_NoExiste(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(sqlLike("FROM materials WHERE id = $1")).
		WithArgs("m9").
		WillReturnError(pgx.ErrNoRows)

	ref, err := NewItemRepository(mock).GetItem(context.Background(), entity.ItemTypeMaterial, "m9")

	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestItemRepo_UpdateMaterialAverageCost_SinFilas(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(sqlLike("UPDATE materials SET average_cost")).
		WithArgs("m9", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewItemRepository(mock).UpdateMaterialAverageCost(context.Background(), "m9", decimal.NewFromInt(10))

	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial MRP
// ──────────────────────────────────────────────────────────────────────────────

func TestMRPRunRepo_Create(t *testing.T) {
	mock := newMock(t)
	args := make([]interface{}, 13)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectExec(sqlLike("INSERT INTO mrp_runs")).
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run := &entity.MRPRun{RunCode: "MRP-20260504-ABC123", PlanningHorizon: 90, Status: entity.MRPRunStatusCompleted,
		StartedAt: day0, FinishedAt: day0.Add(time.Second)}
	require.NoError(t, NewMRPRunRepository(mock).Create(context.Background(), run))
	assert.NotEmpty(t, run.ID)
}

func TestMRPRunRepo_List(t *testing.T) {
	mock := newMock(t)
	rows := pgxmock.NewRows([]string{"id", "run_code", "planning_horizon", "status", "total_parts", "total_materials",
		"materials_with_shortage", "total_po_value", "error_message", "started_at", "finished_at", "created_by", "total"}).
		AddRow("r1", "MRP-20260504-ABC123", 90, "COMPLETED", 3, 2, 1, "129600", "", day0, day0, "u1", 7)
	mock.ExpectQuery(sqlLike("FROM mrp_runs")).WithArgs(20, 0).WillReturnRows(rows)

	list, total, err := NewMRPRunRepository(mock).List(context.Background(), 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, list, 1)
	assert.Equal(t, 90, list[0].PlanningHorizon)
	assert.True(t, list[0].TotalPOValue.Equal(decimal.NewFromInt(129600)))
}
