package service

import (
	"context"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrdersDefaultsToCurrentMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.now = time.Date(2026, 2, 27, 9, 0, 0, 0, time.Local)
	_, err := f.svc.Order.CreateDraft(ctx, "clerk", draftRequest())
	require.NoError(t, err)

	f.now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	_, err = f.svc.Order.CreateDraft(ctx, "clerk", draftRequest())
	require.NoError(t, err)
	req := draftRequest()
	req.ClientCode = "C002"
	req.DOToSupplierList = nil
	_, err = f.svc.Order.CreateDraft(ctx, "clerk", req)
	require.NoError(t, err)
	_, err = f.svc.Order.Confirm(ctx, "clerk", "JO26-003")
	require.NoError(t, err)

	rows, err := f.svc.Dashboard.ListOrders(ctx, ListOrdersQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "JO26-002", rows[0].JONumber)
	assert.Equal(t, "PO-001, PO-002", rows[0].ClientPOList)
	assert.Equal(t, "DOS-001", rows[0].DOToSupplierFirst)
	assert.Equal(t, "JO26-003", rows[1].JONumber)
	assert.Equal(t, "", rows[1].DOToSupplierFirst)
	assert.Equal(t, "DO26-001", rows[1].DOClientNumber)
	assert.Equal(t, "Beta Trading", rows[1].ClientName)

	// 只给年份时月份取当前月
	rows, err = f.svc.Dashboard.ListOrders(ctx, ListOrdersQuery{Year: "2026"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = f.svc.Dashboard.ListOrders(ctx, ListOrdersQuery{Month: "2", Year: "2026"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "JO26-001", rows[0].JONumber)

	rows, err = f.svc.Dashboard.ListOrders(ctx, ListOrdersQuery{Month: "03", Year: "2026", Status: entity.StatusDelivering})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "JO26-003", rows[0].JONumber)
}

func TestListOrdersEdgeCases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows, err := f.svc.Dashboard.ListOrders(ctx, ListOrdersQuery{})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	_, err = f.svc.Order.CreateDraft(ctx, "clerk", draftRequest())
	require.NoError(t, err)

	rows, err = f.svc.Dashboard.ListOrders(ctx, ListOrdersQuery{Month: "March", Year: "2026"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = f.svc.Dashboard.ListOrders(ctx, ListOrdersQuery{Month: "3", Year: "2026", Status: "Unknown"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// 手工编辑过的表格里列表单元格可能不是 JSON 数组
func TestListOrdersToleratesMalformedListCells(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Append(ctx, f.repos.Tables.JobOrders, []sheet.Row{
		{"id": "jo-JO26-050", "jo_number": "JO26-050", "issue_date": "2026-03-10", "client_code": "C001",
			"client_po_list": "PO-77", "do_to_supplier_list": "[broken", "status": entity.StatusPreparing},
		{"id": "jo-JO26-051", "jo_number": "JO26-051", "issue_date": "2026-03-11", "client_code": "C002",
			"client_po_list": "12345", "do_to_supplier_list": `[1, "DOS-9"]`, "status": entity.StatusPreparing},
		{"id": "jo-JO26-052", "jo_number": "JO26-052", "issue_date": "2026-03-12", "client_code": "C002",
			"client_po_list": "", "do_to_supplier_list": "", "status": entity.StatusPreparing},
	}, repository.JobOrderColumns))

	rows, err := f.svc.Dashboard.ListOrders(ctx, ListOrdersQuery{Month: "3", Year: "2026"})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "PO-77", rows[0].ClientPOList)
	assert.Equal(t, "[broken", rows[0].DOToSupplierFirst)
	assert.Equal(t, "12345", rows[1].ClientPOList)
	assert.Equal(t, "1", rows[1].DOToSupplierFirst)
	assert.Equal(t, "", rows[2].ClientPOList)
	assert.Equal(t, "", rows[2].DOToSupplierFirst)

	jo, err := f.svc.Order.GetOrder(ctx, "JO26-050")
	require.NoError(t, err)
	assert.Equal(t, []string{"PO-77"}, jo.ClientPOList)
	assert.Equal(t, []string{"[broken"}, jo.DOToSupplierList)
}

func TestIssueYearMonth(t *testing.T) {
	y, m, ok := issueYearMonth("2026-03-14")
	assert.True(t, ok)
	assert.Equal(t, 2026, y)
	assert.Equal(t, 3, m)

	_, _, ok = issueYearMonth("14/03/2026")
	assert.False(t, ok)
	_, _, ok = issueYearMonth("")
	assert.False(t, ok)
	_, _, ok = issueYearMonth("2026-xx-01")
	assert.False(t, ok)
}
