package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"валидное время", "10:00", false},
		{"полночь", "00:00", false},
		{"конец суток", "23:59", false},
		{"без ведущего нуля", "9:00", true},
		{"часы вне диапазона", "24:00", true},
		{"минуты вне диапазона", "10:60", true},
		{"мусор", "abc", true},
		{"пустая строка", "", true},
		{"с секундами", "10:00:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input, got.String())
			}
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 15, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, TimeString("14:05"), NewTimeString(moment))
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 630, TimeString("10:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:30"))
	assert.False(t, TimeString("10:30").IsAfter("10:30"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)

	// Выход за пределы суток
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
