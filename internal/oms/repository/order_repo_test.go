package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobOrderRepositoryLifecycle(t *testing.T) {
	store := newSheetStore(t)
	ctx := context.Background()
	repo := NewJobOrderRepository(store, DefaultTables())
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	number, err := repo.GenerateNumber(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "JO26-001", number)

	jo := &entity.JobOrder{
		ID:           "jo-" + number,
		JONumber:     number,
		IssueDate:    "2026-03-14",
		ClientPOList: []string{"PO-001", "PO-002"},
		ClientCode:   "C001",
		ClientName:   "Acme",
		Status:       entity.StatusPreparing,
		Items: []entity.JobOrderItem{{
			ID:       "jo-" + number + "-item-1",
			JONumber: number,
			ItemCode: "IT-1",
			Qty:      entity.NewQuantity(decimal.NewFromInt(5)),
		}},
	}
	require.NoError(t, repo.Create(ctx, jo))

	next, err := repo.GenerateNumber(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "JO26-002", next)

	got, err := repo.FindByNumber(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, []string{"PO-001", "PO-002"}, got.ClientPOList)
	assert.Empty(t, got.DOToSupplierList)

	items, err := repo.FindItems(ctx, number)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "5", items[0].Qty.Cell())
	assert.False(t, items[0].Width.Valid)

	got.Status = entity.StatusDelivering
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.FindByNumber(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivering, again.Status)

	_, err = repo.FindByNumber(ctx, "JO26-404")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entity.JobOrder{JONumber: "JO26-404"}), ErrNotFound)
}

func TestDeliveryOrderMirrorStatus(t *testing.T) {
	store := newSheetStore(t)
	ctx := context.Background()
	tables := DefaultTables()
	repo := NewDeliveryOrderRepository(store, tables)

	n, err := repo.MirrorStatus(ctx, "JO26-001", entity.StatusCanceled, "2026-03-15", "2026-03-15T08:00:00")
	require.NoError(t, err)
	assert.Zero(t, n)
	rows, err := store.Read(ctx, tables.DeliveryOrders, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, repo.Create(ctx, &entity.DeliveryOrder{
		ID: "do-DO26-001", DOClientNumber: "DO26-001", JONumber: "JO26-001", Status: entity.StatusDelivering,
	}))
	require.NoError(t, repo.Create(ctx, &entity.DeliveryOrder{
		ID: "do-DO26-002", DOClientNumber: "DO26-002", JONumber: "JO26-002", Status: entity.StatusDelivering,
	}))

	n, err = repo.MirrorStatus(ctx, "JO26-001", entity.StatusCompleted, "2026-03-15", "2026-03-15T08:00:00")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	do, err := repo.FindByJONumber(ctx, "JO26-001")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, do.Status)
	assert.Equal(t, "2026-03-15", do.CompleteDate)

	other, err := repo.FindByNumber(ctx, "DO26-002")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivering, other.Status)
}

func TestRepositoryWithTxStagesWrites(t *testing.T) {
	store := newSheetStore(t)
	ctx := context.Background()
	tables := DefaultTables()
	repo := NewJobOrderRepository(store, tables)

	err := store.Transaction(ctx, func(tx *sheet.Tx) error {
		r := repo.WithTx(tx)
		for i := 0; i < 3; i++ {
			number, err := r.GenerateNumber(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
			if err != nil {
				return err
			}
			if err := r.Create(ctx, &entity.JobOrder{ID: "jo-" + number, JONumber: number}); err != nil {
				return err
			}
		}
		return nil
	}, tables.JobOrders, tables.JobOrderItems)
	require.NoError(t, err)

	orders, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "JO26-003", orders[2].JONumber)
}
