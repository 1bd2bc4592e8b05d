package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "impresión", sanitizeUTF8("impresión"))
	assert.Equal(t, "ab", sanitizeUTF8("a\xffb"))
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		limit, offset     int
		wantLim, wantOffs int
	}{
		{0, 0, defaultPageSize, 0},
		{-5, -1, defaultPageSize, 0},
		{50, 10, 50, 10},
		{1000, 0, maxPageSize, 0},
	}
	for _, tt := range tests {
		limit, offset := pageBounds(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLim, limit)
		assert.Equal(t, tt.wantOffs, offset)
	}
}
