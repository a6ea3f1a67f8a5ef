package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		want  string
	}{
		{"number", `12.5`, true, "12.5"},
		{"numeric string", `"3"`, true, "3"},
		{"padded string", `" 7 "`, true, "7"},
		{"zero", `0`, true, "0"},
		{"empty string", `""`, false, ""},
		{"null", `null`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			require.NoError(t, json.Unmarshal([]byte(tt.input), &q))
			assert.Equal(t, tt.valid, q.Valid)
			assert.Equal(t, tt.want, q.Cell())
		})
	}
}

func TestQuantityRejectsText(t *testing.T) {
	var q Quantity
	assert.Error(t, json.Unmarshal([]byte(`"ten"`), &q))
	assert.Error(t, json.Unmarshal([]byte(`true`), &q))
}

func TestQuantityMarshalJSON(t *testing.T) {
	item := JobOrderItem{Qty: NewQuantity(decimal.RequireFromString("2.50"))}
	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"qty":2.5`)
	assert.Contains(t, string(data), `"width":null`)
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, "100", ParseQuantity(" 100 ").Cell())
	assert.False(t, ParseQuantity("").Valid)
	assert.False(t, ParseQuantity("n/a").Valid)
}

func TestStringListUnmarshalJSON(t *testing.T) {
	var req struct {
		List StringList `json:"list"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"list":["PO-1","PO-2"]}`), &req))
	assert.Equal(t, StringList{"PO-1", "PO-2"}, req.List)

	require.NoError(t, json.Unmarshal([]byte(`{"list":"PO-9"}`), &req))
	assert.Equal(t, StringList{"PO-9"}, req.List)

	require.NoError(t, json.Unmarshal([]byte(`{"list":""}`), &req))
	assert.Empty(t, req.List)
}
