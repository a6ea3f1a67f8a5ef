package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeList 将有序字符串列表编码为单元格中的 JSON 数组
func EncodeList(values []string) string {
	if values == nil {
		return "[]"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "[]"
	}
	return strings.TrimRight(buf.String(), "\n")
}

// DecodeList 解析单元格中的列表。
// 空值返回空列表；非数组或格式错误的值按原文包装为单元素列表。
func DecodeList(value string) []string {
	if value == "" {
		return []string{}
	}

	dec := json.NewDecoder(strings.NewReader(value))
	dec.UseNumber()
	var data interface{}
	if err := dec.Decode(&data); err != nil || dec.More() {
		return []string{value}
	}

	items, ok := data.([]interface{})
	if !ok {
		return []string{value}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case nil:
			out = append(out, "")
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
