package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		prefix string
		year   string
		want   string
	}{
		{"empty table", nil, "JO", "26", "JO26-001"},
		{"continues max", []string{"JO26-001", "JO26-007", "JO26-003"}, "JO", "26", "JO26-008"},
		{"other year ignored", []string{"JO25-041"}, "JO", "26", "JO26-001"},
		{"other prefix ignored", []string{"DO26-005"}, "JO", "26", "JO26-001"},
		{"whitespace trimmed", []string{"  DO26-002 "}, "DO", "26", "DO26-003"},
		{"garbage ignored", []string{"", "JO26-1", "JO26-abc", "xJO26-009"}, "JO", "26", "JO26-001"},
		{"past 999", []string{"JO26-999"}, "JO", "26", "JO26-1000"},
		{"four digits", []string{"JO26-1000", "JO26-998"}, "JO", "26", "JO26-1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextNumber(tt.values, tt.prefix, tt.year))
		})
	}
}

func TestYearTwo(t *testing.T) {
	assert.Equal(t, "26", YearTwo(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "05", YearTwo(time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)))
}
