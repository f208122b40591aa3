package dbx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{"time", want},
		{"sqlite text", "2025-03-14 09:26:53"},
		{"rfc3339", "2025-03-14T09:26:53Z"},
		{"bytes", []byte("2025-03-14 09:26:53")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, ts.Scan(tt.src))
			assert.True(t, want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestamp_ScanNilAndGarbage(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.Time.IsZero())

	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(42))
}
