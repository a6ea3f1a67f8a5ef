package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
)

// 主数据类型
const (
	MasterClient = "client"
	MasterItem   = "item"
)

// MasterRepository 客户/物料主数据仓库（只读，导入时整表覆盖）
type MasterRepository struct {
	db     sheet.DB
	tables Tables
}

func NewMasterRepository(db sheet.DB, tables Tables) *MasterRepository {
	return &MasterRepository{db: db, tables: tables}
}

// FindClient 按客户编码查找，编码精确匹配
func (r *MasterRepository) FindClient(ctx context.Context, code string) (*entity.ClientSnapshot, error) {
	record, err := r.lookup(ctx, r.tables.ClientMaster, code, "client_code")
	if err != nil {
		return nil, err
	}
	return &entity.ClientSnapshot{
		ClientCode:      code,
		ClientName:      record["client_name"],
		DeliveryAddress: record["delivery_address"],
		ClientPIC:       record["client_pic"],
		ClientContact:   record["client_contact"],
	}, nil
}

// FindItem 按物料编码查找
func (r *MasterRepository) FindItem(ctx context.Context, code string) (*entity.ItemSnapshot, error) {
	record, err := r.lookup(ctx, r.tables.ItemMaster, code, "item_code")
	if err != nil {
		return nil, err
	}
	desc, ok := record["item_description"]
	if !ok {
		desc = record["description"]
	}
	return &entity.ItemSnapshot{ItemCode: code, ItemDescription: desc}, nil
}

// Replace 整表覆盖主数据
func (r *MasterRepository) Replace(ctx context.Context, kind string, columns []string, rows []sheet.Row) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}
	return r.db.Overwrite(ctx, table, rows, columns)
}

func (r *MasterRepository) table(kind string) (string, error) {
	switch kind {
	case MasterClient:
		return r.tables.ClientMaster, nil
	case MasterItem:
		return r.tables.ItemMaster, nil
	}
	return "", fmt.Errorf("unknown master kind %q", kind)
}

// lookup 读取主数据表并返回编码匹配的第一行（列名已规范化）。
// 编码列优先 codeColumn，其次 code。
func (r *MasterRepository) lookup(ctx context.Context, table, code, codeColumn string) (map[string]string, error) {
	rows, err := r.db.Read(ctx, table, nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty or missing", ErrNotFound, table)
	}

	col := codeColumn
	first := NormalizeRow(rows[0])
	if _, ok := first[col]; !ok {
		col = "code"
	}
	if _, ok := first[col]; !ok {
		return nil, fmt.Errorf("%w: %s missing %s column", ErrNotFound, table, codeColumn)
	}

	for _, row := range rows {
		record := NormalizeRow(row)
		if record[col] == code {
			return record, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
}

// NormalizeColumn 列名去空白并转小写
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeRow 规范化一行的列名；规范化后重名时保留非空值
func NormalizeRow(row sheet.Row) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		key := NormalizeColumn(k)
		if prev, ok := out[key]; ok && prev != "" {
			continue
		}
		out[key] = v
	}
	return out
}
