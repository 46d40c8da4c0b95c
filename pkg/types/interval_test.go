package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRange(t *testing.T) {
	r, err := NewTimeRange("09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, r.DurationMinutes())
	assert.Equal(t, 1.5, r.DurationHours())

	// Нулевая длительность недопустима
	_, err = NewTimeRange("10:00", "10:00")
	assert.ErrorIs(t, err, ErrNonPositiveDuration)

	// Конец раньше начала
	_, err = NewTimeRange("11:00", "10:00")
	assert.ErrorIs(t, err, ErrNonPositiveDuration)

	// Невалидный формат
	_, err = NewTimeRange("9:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{
			name: "частичное пересечение",
			a:    TimeRange{Start: "09:00", End: "10:30"},
			b:    TimeRange{Start: "10:00", End: "11:00"},
			want: true,
		},
		{
			name: "граничащие интервалы не пересекаются",
			a:    TimeRange{Start: "09:00", End: "10:00"},
			b:    TimeRange{Start: "10:00", End: "11:00"},
			want: false,
		},
		{
			name: "граничащие интервалы в обратном порядке",
			a:    TimeRange{Start: "10:00", End: "11:00"},
			b:    TimeRange{Start: "09:00", End: "10:00"},
			want: false,
		},
		{
			name: "один интервал внутри другого",
			a:    TimeRange{Start: "09:00", End: "12:00"},
			b:    TimeRange{Start: "10:00", End: "11:00"},
			want: true,
		},
		{
			name: "идентичные интервалы",
			a:    TimeRange{Start: "09:00", End: "10:00"},
			b:    TimeRange{Start: "09:00", End: "10:00"},
			want: true,
		},
		{
			name: "непересекающиеся интервалы",
			a:    TimeRange{Start: "09:00", End: "10:00"},
			b:    TimeRange{Start: "14:00", End: "15:00"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	window := TimeRange{Start: "08:00", End: "22:00"}

	assert.True(t, window.Contains(TimeRange{Start: "10:00", End: "12:00"}))
	// Совпадение с границами окна допустимо
	assert.True(t, window.Contains(TimeRange{Start: "08:00", End: "22:00"}))
	assert.False(t, window.Contains(TimeRange{Start: "07:00", End: "09:00"}))
	assert.False(t, window.Contains(TimeRange{Start: "21:00", End: "23:00"}))
}
