package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity 可为空的数值（宽、长、数量）。
// JSON 接受数字、数字字符串、"" 和 null；""/null 视为未填写。
type Quantity struct {
	decimal.NullDecimal
}

// NewQuantity 由 decimal 构造已填写的数值
func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{decimal.NullDecimal{Decimal: d, Valid: true}}
}

// ParseQuantity 解析单元格文本，空或非法文本得到未填写
func ParseQuantity(s string) Quantity {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}
	}
	return NewQuantity(d)
}

// Cell 写回单元格的文本
func (q Quantity) Cell() string {
	if !q.Valid {
		return ""
	}
	return q.Decimal.String()
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid {
		return []byte("null"), nil
	}
	return []byte(q.Decimal.String()), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = Quantity{}
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*q = Quantity{}
			return nil
		}
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return fmt.Errorf("invalid number %q", text)
	}
	*q = NewQuantity(d)
	return nil
}
