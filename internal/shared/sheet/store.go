// Package sheet 提供以 xlsx 工作簿为载体的表存储。
//
// 每张表是 BlobStore 中的一个工作簿，第一行为列名。所有写操作都在
// Transaction 内完成：先锁住涉及的表，读取快照，在内存中暂存修改，
// 提交时整表重写；中途写失败会把已写入的表恢复为快照。
package sheet

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// ErrTableNotLocked 事务内访问了未声明的表
var ErrTableNotLocked = errors.New("table not declared in transaction")

// Row 一行数据，列名 -> 单元格文本
type Row map[string]string

// DB 表的读写接口，Store 与 Tx 都实现它
type DB interface {
	Read(ctx context.Context, table string, columns []string) ([]Row, error)
	Append(ctx context.Context, table string, rows []Row, columns []string) error
	Overwrite(ctx context.Context, table string, rows []Row, columns []string) error
}

// Store 表存储
type Store struct {
	blobs  BlobStore
	locker Locker
	logger *zap.Logger
}

func NewStore(blobs BlobStore, locker Locker, logger *zap.Logger) *Store {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{blobs: blobs, locker: locker, logger: logger}
}

var (
	_ DB = (*Store)(nil)
	_ DB = (*Tx)(nil)
)

// Read 读取整张表。表不存在返回空；columns 非空时按其投影，缺失列补空字符串；
// columns 为 nil 时返回表头中的全部列。
func (s *Store) Read(ctx context.Context, table string, columns []string) ([]Row, error) {
	t, err := s.load(ctx, table)
	if err != nil {
		return nil, err
	}
	return t.project(columns), nil
}

// Append 追加行
func (s *Store) Append(ctx context.Context, table string, rows []Row, columns []string) error {
	return s.Transaction(ctx, func(tx *Tx) error {
		return tx.Append(ctx, table, rows, columns)
	}, table)
}

// Overwrite 整表重写
func (s *Store) Overwrite(ctx context.Context, table string, rows []Row, columns []string) error {
	return s.Transaction(ctx, func(tx *Tx) error {
		return tx.Overwrite(ctx, table, rows, columns)
	}, table)
}

// Transaction 锁住 tables（按名称排序加锁，避免死锁）后执行 fn。
// fn 返回错误时不写任何表；否则提交所有被修改的表。
func (s *Store) Transaction(ctx context.Context, fn func(tx *Tx) error, tables ...string) error {
	keys := uniqueSorted(tables)
	for _, key := range keys {
		unlock, err := s.locker.Lock(ctx, key)
		if err != nil {
			return fmt.Errorf("lock table %s: %w", key, err)
		}
		defer unlock()
	}

	tx := &Tx{
		store:    s,
		declared: make(map[string]bool, len(keys)),
		tables:   make(map[string]*table, len(keys)),
	}
	for _, key := range keys {
		tx.declared[key] = true
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit(ctx)
}

func (s *Store) load(ctx context.Context, name string) (*table, error) {
	data, err := s.blobs.Get(ctx, name)
	if errors.Is(err, ErrBlobNotFound) {
		return &table{name: name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load table %s: %w", name, err)
	}

	header, rows, err := decodeWorkbook(data)
	if err != nil {
		return nil, fmt.Errorf("decode table %s: %w", name, err)
	}
	return &table{
		name:     name,
		exists:   true,
		original: data,
		columns:  header,
		rows:     rows,
	}, nil
}

// table 事务中的一张表：原始字节用于回滚，rows 为暂存的当前内容
type table struct {
	name     string
	exists   bool
	original []byte
	columns  []string
	rows     []Row
	dirty    bool
}

func (t *table) project(columns []string) []Row {
	if columns == nil {
		columns = t.columns
	}
	out := make([]Row, len(t.rows))
	for i, row := range t.rows {
		projected := make(Row, len(columns))
		for _, col := range columns {
			projected[col] = row[col]
		}
		out[i] = projected
	}
	return out
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func copyRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		r := make(Row, len(row))
		for k, v := range row {
			r[k] = v
		}
		out[i] = r
	}
	return out
}
