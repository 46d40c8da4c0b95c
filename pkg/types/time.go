package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat возвращается при некорректном формате времени
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// TimeString время в формате "HH:MM"
// Хранится строкой для прозрачной работы с БД и JSON,
// сравнивается через порядковые минуты от начала суток
type TimeString string

// NewTimeString создает TimeString из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	_, err := t.minutes()
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает порядковые минуты от начала суток (hours*60 + minutes)
// Для невалидного значения возвращает 0 - валидация должна выполняться заранее
func (t TimeString) Minutes() int {
	m, err := t.minutes()
	if err != nil {
		return 0
	}
	return m
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.minutes()
	if err != nil {
		return "", err
	}
	m += minutes
	if m < 0 || m >= 24*60 {
		return "", fmt.Errorf("%w: result out of day range", ErrInvalidTimeFormat)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, ErrInvalidTimeFormat
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}

	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, ErrInvalidTimeFormat
	}

	return hours*60 + mins, nil
}
