package services

import (
	"strconv"
	"strings"
)

// IncrementCounter прибавляет единицу к счётчику, хранящемуся строкой.
// Нечисловое или пустое значение считается нулём.
func IncrementCounter(v string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		n = 0
	}
	return strconv.FormatInt(n+1, 10)
}

// ParseCount разбирает человекочитаемые счётчики вида "1,234", "1.2K", "3M".
func ParseCount(v string) int64 {
	v = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(v), ",", ""))
	if v == "" {
		return 0
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(v, "K"):
		mult, v = 1e3, strings.TrimSuffix(v, "K")
	case strings.HasSuffix(v, "M"):
		mult, v = 1e6, strings.TrimSuffix(v, "M")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f*mult + 0.5)
}

// FormatNumber сокращает большие числа для карточек дашборда: 1500 -> "1.5K".
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1e6, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1e3, 'f', 1, 64) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// ParseReadTime берёт первое число из строки вида "5 min read".
func ParseReadTime(v string) (float64, bool) {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}
