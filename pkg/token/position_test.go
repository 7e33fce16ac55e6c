package token

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPositionAt(t *testing.T) {
	text := "SELECT a\nFROM é\nWHERE"

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Column: 1, Offset: 0}},
		{7, Position{Line: 1, Column: 8, Offset: 7}},
		{9, Position{Line: 2, Column: 1, Offset: 9}},
		{16, Position{Line: 2, Column: 7, Offset: 16}},
		{-4, Position{Line: 1, Column: 1, Offset: 0}},
		{100, Position{Line: 3, Column: 6, Offset: len(text)}},
	}

	for _, tt := range tests {
		got := PositionAt(text, tt.offset)
		assert.Equal(t, tt.want, got, "offset %d", tt.offset)
		assert.True(t, got.IsValid())
	}
}

func TestOffsetAt(t *testing.T) {
	text := "SELECT a\nFROM é\nWHERE"

	tests := []struct {
		line, column int
		want         int
	}{
		{1, 1, 0},
		{1, 8, 7},
		{2, 1, 9},
		{2, 6, 14},
		{2, 7, 16},
		{2, 99, 16},
		{3, 3, 19},
		{9, 1, len(text)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OffsetAt(text, tt.line, tt.column), "line %d col %d", tt.line, tt.column)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	text := "a\nbé c\n\nd"
	for off := 0; off <= len(text); off++ {
		if off < len(text) && !utf8.RuneStart(text[off]) {
			continue
		}
		p := PositionAt(text, off)
		assert.Equal(t, off, OffsetAt(text, p.Line, p.Column), "offset %d", off)
	}
	assert.False(t, Position{}.IsValid())
}
