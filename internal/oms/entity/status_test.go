package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current string
		event   string
		want    string
		ok      bool
	}{
		{StatusPreparing, EventConfirm, StatusDelivering, true},
		{StatusPreparing, EventCancel, StatusCanceled, true},
		{StatusPreparing, EventComplete, "", false},
		{StatusDelivering, EventComplete, StatusCompleted, true},
		{StatusDelivering, EventCancel, StatusCanceled, true},
		{StatusDelivering, EventConfirm, "", false},
		{StatusCompleted, EventCancel, "", false},
		{StatusCompleted, EventComplete, "", false},
		{StatusCanceled, EventCancel, "", false},
		{StatusCanceled, EventConfirm, "", false},
		{"", EventConfirm, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.current+"/"+tt.event, func(t *testing.T) {
			got, ok := NextStatus(tt.current, tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
