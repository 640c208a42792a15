package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	day := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2025, 10, 26, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		in     any
		want   time.Time
		wantOK bool
	}{
		{name: "date string", in: "2025-10-26", want: day, wantOK: true},
		{name: "rfc3339 string", in: "2025-10-26T10:30:00Z", want: stamp, wantOK: true},
		{name: "padded string", in: " 2025-10-26 ", want: day, wantOK: true},
		{name: "time value", in: day, want: day, wantOK: true},
		{name: "time pointer", in: &day, want: day, wantOK: true},
		{name: "nil time pointer", in: (*time.Time)(nil), wantOK: false},
		{name: "garbage", in: "yesterday", wantOK: false},
		{name: "impossible date", in: "2025-02-30", wantOK: false},
		{name: "number", in: 20251026, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int64
		wantOK bool
	}{
		{name: "int", in: 3, want: 3, wantOK: true},
		{name: "int64", in: int64(4), want: 4, wantOK: true},
		{name: "json float", in: float64(5), want: 5, wantOK: true},
		{name: "json number", in: json.Number("6"), want: 6, wantOK: true},
		{name: "string", in: "7", want: 7, wantOK: true},
		{name: "fraction", in: 1.5, wantOK: false},
		{name: "zero", in: 0, wantOK: false},
		{name: "negative", in: "-1", wantOK: false},
		{name: "text", in: "abc", wantOK: false},
		{name: "bool", in: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseID(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
