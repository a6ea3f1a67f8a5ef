package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MasterImportService 主数据 CSV 导入
type MasterImportService struct {
	repo   *repository.MasterRepository
	logger *zap.Logger
}

func NewMasterImportService(repo *repository.MasterRepository, logger *zap.Logger) *MasterImportService {
	return &MasterImportService{repo: repo, logger: logger}
}

// ImportResult 导入结果
type ImportResult struct {
	Kind    string   `json:"kind"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

// csvDecoder 按编码名返回解码器
func csvDecoder(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "gbk", "gb2312":
		return simplifiedchinese.GBK, nil
	case "gb18030":
		return simplifiedchinese.GB18030, nil
	case "windows-1252", "cp1252", "latin1":
		return charmap.Windows1252, nil
	}
	return nil, &ValidationError{Field: "encoding", Message: fmt.Sprintf("Unsupported encoding: %s", name)}
}

// ImportMasterCSV 用 CSV 整表覆盖客户或物料主数据。首行为表头（规范化为小写）。
func (s *MasterImportService) ImportMasterCSV(ctx context.Context, kind string, r io.Reader, encodingName string) (*ImportResult, error) {
	codeColumn := ""
	switch kind {
	case repository.MasterClient:
		codeColumn = "client_code"
	case repository.MasterItem:
		codeColumn = "item_code"
	default:
		return nil, &ValidationError{Field: "kind", Message: fmt.Sprintf("Unknown master kind: %s", kind)}
	}

	enc, err := csvDecoder(encodingName)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ValidationError{Field: "file", Message: "CSV file is empty"}
	}
	if err != nil {
		return nil, &ValidationError{Field: "file", Message: "Invalid CSV: " + err.Error()}
	}

	columns := make([]string, len(header))
	hasCode := false
	for i, h := range header {
		columns[i] = repository.NormalizeColumn(h)
		if columns[i] == codeColumn || columns[i] == "code" {
			hasCode = true
		}
	}
	if !hasCode {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("CSV missing %s column", codeColumn)}
	}

	var rows []sheet.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ValidationError{Field: "file", Message: "Invalid CSV: " + err.Error()}
		}
		row := make(sheet.Row, len(columns))
		empty := true
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
				if row[col] != "" {
					empty = false
				}
			} else {
				row[col] = ""
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	if err := s.repo.Replace(ctx, kind, columns, rows); err != nil {
		return nil, fmt.Errorf("写入主数据失败: %w", err)
	}
	s.logger.Info("master data imported", zap.String("kind", kind), zap.Int("rows", len(rows)))
	return &ImportResult{Kind: kind, Columns: columns, Rows: len(rows)}, nil
}
