package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Текстовые форматы хранения: они же являются wire-форматом документов
// в хранилище, менять их нельзя ради совместимости с уже сохраненными данными.
const (
	TimeLabelLayout = "3:04 PM"
	DayLayout       = "2006-01-02"
	MonthLayout     = "2006-01"

	rangeSeparator = " - "
)

// SlotStep — шаг сетки бронирования.
const SlotStep = 30 * time.Minute

// ParseTimeLabel разбирает метку времени вида "9:00 AM".
func ParseTimeLabel(label string) (time.Time, error) {
	t, err := time.Parse(TimeLabelLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMalformedRange, label)
	}
	return t, nil
}

// FormatTimeLabel форматирует время в метку слота ("9:00 AM").
func FormatTimeLabel(t time.Time) string {
	return t.Format(TimeLabelLayout)
}

// FormatTimeRange собирает строку диапазона в хранимом формате.
func FormatTimeRange(start, end time.Time) string {
	return FormatTimeLabel(start) + rangeSeparator + FormatTimeLabel(end)
}

// ParseTimeRange разбирает строку "9:00 AM - 10:30 AM" в последовательность
// 30-минутных точек, не включая конечную. Именно в этой гранулярности слоты
// резервируются при бронировании и освобождаются при отмене.
func ParseTimeRange(rangeStr string) ([]string, error) {
	parts := strings.Split(rangeStr, rangeSeparator)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRange, rangeStr)
	}

	start, err := ParseTimeLabel(parts[0])
	if err != nil {
		return nil, err
	}

	end, err := ParseTimeLabel(parts[1])
	if err != nil {
		return nil, err
	}

	var points []string
	for cur := start; cur.Before(end); cur = cur.Add(SlotStep) {
		points = append(points, FormatTimeLabel(cur))
	}

	return points, nil
}

// WeekNumber возвращает номер недели месяца. Неделя 1 начинается с 1-го
// числа, границы недель — 7-дневные интервалы, привязанные к дню недели
// 1-го числа (не календарные Пн-Вс). Для последних дней месяца,
// начавшегося в пятницу-воскресенье, формула дает неделю 6.
// Формула воспроизводится в точности: это ключ балансировки нагрузки
// по счетчикам сессий, и он осмыслен только относительно самого себя.
func WeekNumber(date time.Time) int {
	firstOfMonth := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())

	dayOfWeek := int(firstOfMonth.Weekday())
	if dayOfWeek == 0 {
		dayOfWeek = 7
	}

	return (date.Day()+dayOfWeek-1)/7 + 1
}

// ValidEndTimes возвращает допустимые метки окончания сессии, начинающейся
// в start: каждую точку от start+30м, пока она непрерывно присутствует в
// available, плюс одну точку за первым разрывом. Дополнительная точка
// намеренна: сессия, занимающая последний доступный слот, заканчивается
// в начале следующего, уже недоступного.
func ValidEndTimes(start string, available []string) ([]string, error) {
	startTime, err := ParseTimeLabel(start)
	if err != nil {
		return nil, err
	}

	availSet := make(map[string]struct{}, len(available))
	for _, label := range available {
		availSet[label] = struct{}{}
	}

	var ends []string
	cur := startTime.Add(SlotStep)
	for {
		label := FormatTimeLabel(cur)
		if _, ok := availSet[label]; !ok {
			ends = append(ends, label)
			break
		}
		ends = append(ends, label)
		cur = cur.Add(SlotStep)
	}

	return ends, nil
}

// TimeIntervals возвращает шаблон рабочих часов редактора доступности:
// слоты по 30 минут с 9:00 AM до 9:30 PM включительно.
func TimeIntervals() []string {
	intervals := make([]string, 0, 26)
	for h := 9; h <= 21; h++ {
		base := time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC)
		intervals = append(intervals, FormatTimeLabel(base), FormatTimeLabel(base.Add(SlotStep)))
	}
	return intervals
}

// MonthKey возвращает ключ месяца ("2025-04") для даты.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// DayKey возвращает ключ дня ("2025-04-15") для даты.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay разбирает ключ дня.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректный формат даты: %w", err)
	}
	return t, nil
}

// SortTimeLabels сортирует метки слотов по времени суток.
// Метки, не поддающиеся разбору, уходят в конец.
func SortTimeLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		ti, erri := time.Parse(TimeLabelLayout, labels[i])
		tj, errj := time.Parse(TimeLabelLayout, labels[j])
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return ti.Before(tj)
	})
}
