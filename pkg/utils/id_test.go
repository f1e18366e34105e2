package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.NotEmpty(t, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerateReceiptNo(t *testing.T) {
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "#20240301-001", GenerateReceiptNo(nil, day))

	existing := []string{"#20240301-001", "#20240301-002", "#20240229-007"}
	assert.Equal(t, "#20240301-003", GenerateReceiptNo(existing, day))

	// next day starts back at 001
	assert.Equal(t, "#20240302-001", GenerateReceiptNo(existing, day.AddDate(0, 0, 1)))
}
