// Package slottime переводит время слотов между отображаемым видом
// ("h:mm AM/PM") и минутами от полуночи.
//
// Все вычисления ведутся в локальном времени сервера, другие часовые пояса не поддерживаются.
package slottime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DateFormat формат календарной даты бронирования
	DateFormat = "2006-01-02"

	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60
)

var (
	// ErrInvalidFormat строка диапазона не соответствует "h:mm AM - h:mm PM"
	ErrInvalidFormat = errors.New("invalid time format")

	// ErrInvalidTime значения часов или минут вне допустимых границ
	ErrInvalidTime = errors.New("invalid range values")

	// ErrEndBeforeStart конец диапазона не позже его начала
	ErrEndBeforeStart = errors.New("end before start")

	// ErrInvalidDate строка не является датой YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date")
)

var (
	rangePattern   = regexp.MustCompile(`^\d{1,2}:\d{2} (AM|PM) - \d{1,2}:\d{2} (AM|PM)$`)
	displayPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}) (AM|PM)$`)
	clockPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseDisplayTime переводит "h:mm AM" в минуты от полуночи
// 12 AM соответствует 0, 12 PM соответствует 720
func ParseDisplayTime(s string) (int, error) {
	m := displayPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour %= 12
	if m[3] == "PM" {
		hour += 12
	}
	return hour*60 + minute, nil
}

// ParseDisplayRange разбирает "h:mm AM - h:mm PM" в пару минут [start, end)
func ParseDisplayRange(s string) (start, end int, err error) {
	if !rangePattern.MatchString(s) {
		return 0, 0, ErrInvalidFormat
	}

	parts := strings.SplitN(s, " - ", 2)
	start, err = ParseDisplayTime(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseDisplayTime(parts[1])
	if err != nil {
		return 0, 0, err
	}

	if end <= start {
		return 0, 0, ErrEndBeforeStart
	}
	return start, end, nil
}

// ParseClock разбирает время работы в виде "HH:MM" (24 часа) или "h:mm AM"
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if displayPattern.MatchString(s) {
		return ParseDisplayTime(s)
	}

	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	total := hour*60 + minute
	// 24:00 допустимо как конец рабочего дня
	if minute > 59 || total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return total, nil
}

// FormatMinutes переводит минуты от полуночи в "h:mm AM"
func FormatMinutes(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	hour := minutes / 60
	minute := minutes % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

// FormatRange собирает строку диапазона "h:mm AM - h:mm PM"
func FormatRange(start, end int) string {
	return FormatMinutes(start) + " - " + FormatMinutes(end)
}

// MinutesOf возвращает минуты от полуночи для момента t
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// CurrentMinutes минуты от полуночи на момент вызова
// Значение нельзя кэшировать: оно меняется в течение дня
func CurrentMinutes() int {
	return MinutesOf(time.Now())
}

// ParseDate разбирает дату YYYY-MM-DD в локальном часовом поясе
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DateOf возвращает календарную дату момента t
func DateOf(t time.Time) string {
	return t.Format(DateFormat)
}

// Today возвращает сегодняшнюю дату
func Today() string {
	return DateOf(time.Now())
}

// WeekdayName возвращает название дня недели для даты ("Monday".."Sunday")
func WeekdayName(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// IsBeforeDate сравнивает только календарные даты: a раньше b
// Обе даты в формате YYYY-MM-DD, поэтому достаточно лексикографического сравнения
func IsBeforeDate(a, b string) bool {
	return a < b
}

// SameDate проверяет, что даты совпадают
func SameDate(a, b string) bool {
	return a == b
}
