package repository

import (
	"context"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
)

// JobOrderRepository 工单仓库
type JobOrderRepository struct {
	db     sheet.DB
	tables Tables
}

func NewJobOrderRepository(db sheet.DB, tables Tables) *JobOrderRepository {
	return &JobOrderRepository{db: db, tables: tables}
}

// WithTx 返回绑定到事务的仓库
func (r *JobOrderRepository) WithTx(tx sheet.DB) *JobOrderRepository {
	return &JobOrderRepository{db: tx, tables: r.tables}
}

// FindAll 查询全部工单（不含行项），保持表内顺序
func (r *JobOrderRepository) FindAll(ctx context.Context) ([]entity.JobOrder, error) {
	rows, err := r.db.Read(ctx, r.tables.JobOrders, JobOrderColumns)
	if err != nil {
		return nil, err
	}
	orders := make([]entity.JobOrder, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, rowToJobOrder(row))
	}
	return orders, nil
}

// FindByNumber 根据JO号查找工单（不含行项）
func (r *JobOrderRepository) FindByNumber(ctx context.Context, joNumber string) (*entity.JobOrder, error) {
	rows, err := r.db.Read(ctx, r.tables.JobOrders, JobOrderColumns)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["jo_number"] == joNumber {
			jo := rowToJobOrder(row)
			return &jo, nil
		}
	}
	return nil, ErrNotFound
}

// FindItems 查询工单行项
func (r *JobOrderRepository) FindItems(ctx context.Context, joNumber string) ([]entity.JobOrderItem, error) {
	rows, err := r.db.Read(ctx, r.tables.JobOrderItems, JobOrderItemColumns)
	if err != nil {
		return nil, err
	}
	items := make([]entity.JobOrderItem, 0)
	for _, row := range rows {
		if row["jo_number"] == joNumber {
			items = append(items, rowToJobOrderItem(row))
		}
	}
	return items, nil
}

// GenerateNumber 生成JO号 JO{yy}-{3位}
func (r *JobOrderRepository) GenerateNumber(ctx context.Context, now time.Time) (string, error) {
	rows, err := r.db.Read(ctx, r.tables.JobOrders, []string{"jo_number"})
	if err != nil {
		return "", err
	}
	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row["jo_number"]
	}
	return NextNumber(values, PrefixJobOrder, YearTwo(now)), nil
}

// Create 创建工单及行项
func (r *JobOrderRepository) Create(ctx context.Context, jo *entity.JobOrder) error {
	if err := r.db.Append(ctx, r.tables.JobOrders, []sheet.Row{jobOrderToRow(jo)}, JobOrderColumns); err != nil {
		return err
	}
	rows := make([]sheet.Row, len(jo.Items))
	for i := range jo.Items {
		rows[i] = jobOrderItemToRow(&jo.Items[i])
	}
	return r.db.Append(ctx, r.tables.JobOrderItems, rows, JobOrderItemColumns)
}

// Update 更新工单表头
func (r *JobOrderRepository) Update(ctx context.Context, jo *entity.JobOrder) error {
	rows, err := r.db.Read(ctx, r.tables.JobOrders, JobOrderColumns)
	if err != nil {
		return err
	}
	found := false
	for i, row := range rows {
		if row["jo_number"] == jo.JONumber {
			rows[i] = jobOrderToRow(jo)
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	return r.db.Overwrite(ctx, r.tables.JobOrders, rows, JobOrderColumns)
}
