package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	store *sheet.Store
	repos *repository.Repositories
	svc   *Services
	now   time.Time
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := sheet.NewStore(sheet.NewDirStore(t.TempDir()), nil, nil)
	tables := repository.DefaultTables()

	seedMasters(t, store, tables)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repos := repository.NewRepositories(store, tables, db)
	require.NoError(t, repos.TransitionLog.AutoMigrate(ctx))

	f := &fixture{
		store: store,
		repos: repos,
		svc:   NewServices(repos, nil),
		now:   time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local),
	}
	f.svc.SetClock(func() time.Time { return f.now })
	return f
}

// seedMasters 写入两个客户和两个物料
func seedMasters(t *testing.T, store *sheet.Store, tables repository.Tables) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Overwrite(ctx, tables.ClientMaster, []sheet.Row{
		{"Client_Code": "C001", "Client_Name": "Acme Pte Ltd", "Delivery_Address": "1 Jurong Rd", "Client_PIC": "Tan", "Client_Contact": "6123 4567"},
		{"Client_Code": "C002", "Client_Name": "Beta Trading", "Delivery_Address": "8 Changi South", "Client_PIC": "Lim", "Client_Contact": "6999 0000"},
	}, []string{"Client_Code", "Client_Name", "Delivery_Address", "Client_PIC", "Client_Contact"}))
	require.NoError(t, store.Overwrite(ctx, tables.ItemMaster, []sheet.Row{
		{"item_code": "IT-1", "item_description": "Steel plate 3mm"},
		{"item_code": "IT-2", "item_description": "Aluminium bar"},
	}, []string{"item_code", "item_description"}))
}

func qty(v int64) entity.Quantity {
	return entity.NewQuantity(decimal.NewFromInt(v))
}

func draftRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		ClientCode:       "C001",
		ClientPOList:     entity.StringList{"PO-001", "PO-002"},
		DOToSupplierList: entity.StringList{"DOS-001"},
		RequiredDate:     "2026-03-30",
		LocalExport:      "Local",
		Remark:           "handle with care",
		Items: []CreateOrderItem{
			{ItemCode: "IT-1", Width: entity.NewQuantity(decimal.RequireFromString("1.5")), Length: qty(2), Qty: qty(10)},
			{ItemCode: "IT-2", ItemDescription: "Custom bar", Qty: qty(3)},
		},
	}
}
