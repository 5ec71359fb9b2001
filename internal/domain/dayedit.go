package domain

type EditAction string

const (
	EditActionSelectAll EditAction = "selectAll"
	EditActionClearAll  EditAction = "clearAll"
	EditActionToggle    EditAction = "toggle"
)

// EditDayDTO — одна операция редактирования дня. Для toggle обязательно
// поле Time, массовые операции его игнорируют.
type EditDayDTO struct {
	Day    string      `json:"day" binding:"required"`
	Action EditAction  `json:"action" binding:"required,oneof=selectAll clearAll toggle"`
	Mode   SessionMode `json:"mode" binding:"required,oneof=online inPerson"`
	Time   string      `json:"time"`
}

// DayEdit — буфер редактирования слотов одного дня на стороне тьютора.
// Забронированные слоты сохраняются в буфере как контекст, но массовые
// операции их не трогают: бронирование неизменяемо из редактора.
type DayEdit struct {
	Day   string
	slots map[string]TimeSlot
}

// NewDayEdit создает буфер редактирования из уже опубликованных слотов дня.
func NewDayEdit(day string, existing []TimeSlot) *DayEdit {
	e := &DayEdit{
		Day:   day,
		slots: make(map[string]TimeSlot, len(existing)),
	}
	for _, s := range existing {
		e.slots[s.Time] = s
	}
	return e
}

// SelectAll включает режим mode для каждого слота рабочего шаблона,
// пропуская уже забронированные.
func (e *DayEdit) SelectAll(mode SessionMode) {
	for _, label := range TimeIntervals() {
		existing, ok := e.slots[label]
		if ok && existing.Booked {
			continue
		}
		if !ok {
			existing = TimeSlot{Time: label}
		}
		setMode(&existing, mode, true)
		e.slots[label] = existing
	}
}

// ClearAll выключает режим mode для каждого слота рабочего шаблона,
// пропуская забронированные. Слот, оставшийся без единого режима,
// удаляется из буфера.
func (e *DayEdit) ClearAll(mode SessionMode) {
	for _, label := range TimeIntervals() {
		existing, ok := e.slots[label]
		if !ok || existing.Booked {
			continue
		}
		setMode(&existing, mode, false)
		if existing.Online || existing.InPerson {
			e.slots[label] = existing
		} else {
			delete(e.slots, label)
		}
	}
}

// Toggle переключает ровно один режим одного слота. Слот без единого
// включенного режима удаляется; флаг booked переключение не меняет.
func (e *DayEdit) Toggle(label string, mode SessionMode) {
	existing, ok := e.slots[label]
	if !ok {
		slot := TimeSlot{Time: label}
		setMode(&slot, mode, true)
		e.slots[label] = slot
		return
	}
	if existing.Booked {
		return
	}

	switch mode {
	case SessionModeOnline:
		existing.Online = !existing.Online
	case SessionModeInPerson:
		existing.InPerson = !existing.InPerson
	}

	if existing.Online || existing.InPerson {
		e.slots[label] = existing
	} else {
		delete(e.slots, label)
	}
}

// Empty сообщает, пуст ли буфер: пустой буфер при сохранении означает
// удаление записи дня из месячной сетки.
func (e *DayEdit) Empty() bool {
	return len(e.slots) == 0
}

// Slots возвращает содержимое буфера, упорядоченное по времени слота.
func (e *DayEdit) Slots() []TimeSlot {
	labels := make([]string, 0, len(e.slots))
	for label := range e.slots {
		labels = append(labels, label)
	}
	SortTimeLabels(labels)

	slots := make([]TimeSlot, 0, len(labels))
	for _, label := range labels {
		slots = append(slots, e.slots[label])
	}
	return slots
}

func setMode(s *TimeSlot, mode SessionMode, enabled bool) {
	switch mode {
	case SessionModeOnline:
		s.Online = enabled
	case SessionModeInPerson:
		s.InPerson = enabled
	}
}
