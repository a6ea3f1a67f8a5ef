package sheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/shared/metrics"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Tx 表事务，只能在 Store.Transaction 的回调中使用
type Tx struct {
	store    *Store
	declared map[string]bool
	tables   map[string]*table
}

func (tx *Tx) get(ctx context.Context, name string) (*table, error) {
	if !tx.declared[name] {
		return nil, fmt.Errorf("%w: %s", ErrTableNotLocked, name)
	}
	if t, ok := tx.tables[name]; ok {
		return t, nil
	}
	t, err := tx.store.load(ctx, name)
	if err != nil {
		return nil, err
	}
	tx.tables[name] = t
	return t, nil
}

// Read 读取事务快照（包含本事务已暂存的修改）
func (tx *Tx) Read(ctx context.Context, name string, columns []string) ([]Row, error) {
	t, err := tx.get(ctx, name)
	if err != nil {
		return nil, err
	}
	return t.project(columns), nil
}

// Append 追加行。columns 非空时表按 columns 重新投影
func (tx *Tx) Append(ctx context.Context, name string, rows []Row, columns []string) error {
	t, err := tx.get(ctx, name)
	if err != nil {
		return err
	}
	if columns != nil {
		t.rows = t.project(columns)
		t.columns = append([]string(nil), columns...)
	} else if len(t.columns) == 0 {
		t.columns = columnsOf(rows)
	}
	t.rows = append(t.rows, copyRows(rows)...)
	t.dirty = true
	return nil
}

// Overwrite 用 rows 替换整张表
func (tx *Tx) Overwrite(ctx context.Context, name string, rows []Row, columns []string) error {
	t, err := tx.get(ctx, name)
	if err != nil {
		return err
	}
	if columns != nil {
		t.columns = append([]string(nil), columns...)
	} else if len(t.columns) == 0 {
		t.columns = columnsOf(rows)
	}
	t.rows = copyRows(rows)
	t.dirty = true
	return nil
}

func (tx *Tx) commit(ctx context.Context) error {
	var dirty []*table
	for _, t := range tx.tables {
		if t.dirty {
			dirty = append(dirty, t)
		}
	}
	sort.Slice(dirty, func(i, j int) bool { return dirty[i].name < dirty[j].name })

	encoded := make([][]byte, len(dirty))
	for i, t := range dirty {
		data, err := encodeWorkbook(t.columns, t.rows)
		if err != nil {
			return fmt.Errorf("encode table %s: %w", t.name, err)
		}
		encoded[i] = data
	}

	for i, t := range dirty {
		start := time.Now()
		if err := tx.store.blobs.Put(ctx, t.name, encoded[i]); err != nil {
			var result *multierror.Error
			result = multierror.Append(result, fmt.Errorf("write table %s: %w", t.name, err))
			for j := i - 1; j >= 0; j-- {
				if rerr := tx.store.restore(ctx, dirty[j]); rerr != nil {
					result = multierror.Append(result, fmt.Errorf("rollback table %s: %w", dirty[j].name, rerr))
				}
				metrics.RecordTableRollback(dirty[j].name)
			}
			tx.store.logger.Error("table transaction failed",
				zap.String("table", t.name),
				zap.Int("rolled_back", i),
				zap.Error(result),
			)
			return result.ErrorOrNil()
		}
		metrics.RecordTableCommit(t.name, time.Since(start))
	}
	return nil
}

// restore 将表恢复为事务开始前的内容
func (s *Store) restore(ctx context.Context, t *table) error {
	ctx = context.WithoutCancel(ctx)
	if !t.exists {
		return s.blobs.Delete(ctx, t.name)
	}
	return s.blobs.Put(ctx, t.name, t.original)
}

func columnsOf(rows []Row) []string {
	set := make(map[string]bool)
	var cols []string
	for _, row := range rows {
		for k := range row {
			if !set[k] {
				set[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}
