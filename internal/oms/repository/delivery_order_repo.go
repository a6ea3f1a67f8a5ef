package repository

import (
	"context"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
)

// DeliveryOrderRepository 送货单仓库
type DeliveryOrderRepository struct {
	db     sheet.DB
	tables Tables
}

func NewDeliveryOrderRepository(db sheet.DB, tables Tables) *DeliveryOrderRepository {
	return &DeliveryOrderRepository{db: db, tables: tables}
}

// WithTx 返回绑定到事务的仓库
func (r *DeliveryOrderRepository) WithTx(tx sheet.DB) *DeliveryOrderRepository {
	return &DeliveryOrderRepository{db: tx, tables: r.tables}
}

// FindByNumber 根据DO号查找送货单（不含行项）
func (r *DeliveryOrderRepository) FindByNumber(ctx context.Context, doNumber string) (*entity.DeliveryOrder, error) {
	return r.findFirst(ctx, "do_client_number", doNumber)
}

// FindByJONumber 查找工单对应的送货单
func (r *DeliveryOrderRepository) FindByJONumber(ctx context.Context, joNumber string) (*entity.DeliveryOrder, error) {
	return r.findFirst(ctx, "jo_number", joNumber)
}

func (r *DeliveryOrderRepository) findFirst(ctx context.Context, column, value string) (*entity.DeliveryOrder, error) {
	rows, err := r.db.Read(ctx, r.tables.DeliveryOrders, DeliveryOrderColumns)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row[column] == value {
			do := rowToDeliveryOrder(row)
			return &do, nil
		}
	}
	return nil, ErrNotFound
}

// FindItems 查询送货单行项
func (r *DeliveryOrderRepository) FindItems(ctx context.Context, doNumber string) ([]entity.DeliveryOrderItem, error) {
	rows, err := r.db.Read(ctx, r.tables.DeliveryOrderItems, DeliveryOrderItemColumns)
	if err != nil {
		return nil, err
	}
	items := make([]entity.DeliveryOrderItem, 0)
	for _, row := range rows {
		if row["do_client_number"] == doNumber {
			items = append(items, rowToDeliveryOrderItem(row))
		}
	}
	return items, nil
}

// GenerateNumber 生成DO号 DO{yy}-{3位}
func (r *DeliveryOrderRepository) GenerateNumber(ctx context.Context, now time.Time) (string, error) {
	rows, err := r.db.Read(ctx, r.tables.DeliveryOrders, []string{"do_client_number"})
	if err != nil {
		return "", err
	}
	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row["do_client_number"]
	}
	return NextNumber(values, PrefixDeliveryOrder, YearTwo(now)), nil
}

// Create 创建送货单及行项
func (r *DeliveryOrderRepository) Create(ctx context.Context, do *entity.DeliveryOrder) error {
	if err := r.db.Append(ctx, r.tables.DeliveryOrders, []sheet.Row{deliveryOrderToRow(do)}, DeliveryOrderColumns); err != nil {
		return err
	}
	rows := make([]sheet.Row, len(do.Items))
	for i := range do.Items {
		rows[i] = deliveryOrderItemToRow(&do.Items[i])
	}
	return r.db.Append(ctx, r.tables.DeliveryOrderItems, rows, DeliveryOrderItemColumns)
}

// MirrorStatus 把工单状态同步到其送货单，返回更新的行数；没有送货单时不写表
func (r *DeliveryOrderRepository) MirrorStatus(ctx context.Context, joNumber, status, completeDate, updatedAt string) (int, error) {
	rows, err := r.db.Read(ctx, r.tables.DeliveryOrders, DeliveryOrderColumns)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, row := range rows {
		if row["jo_number"] != joNumber {
			continue
		}
		row["status"] = status
		row["complete_date"] = completeDate
		row["updated_at"] = updatedAt
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return n, r.db.Overwrite(ctx, r.tables.DeliveryOrders, rows, DeliveryOrderColumns)
}
