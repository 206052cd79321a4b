// Package query реализует составление предиката для выборки истории операций.
//
// Фильтр состоит из необязательных условий: равенство вида операции и
// границы интервала по времени записи (обе включительные). Условия
// соединяются логическим И; отсутствующее поле фильтра не порождает
// условия вовсе — значения по умолчанию не подставляются. Пакет не
// выполняет I/O: предикат — описание условий, в SQL его переводит
// слой хранилища.
package query

import "time"

// Filter — необязательные параметры выборки истории. nil-поле означает
// отсутствие соответствующего условия. Фильтр живёт один запрос и
// нигде не сохраняется.
type Filter struct {
	Operation *string    // Вид операции
	StartDate *time.Time // Нижняя граница времени записи, включительно
	EndDate   *time.Time // Верхняя граница времени записи, включительно
}

// Condition — одно условие предиката. Закрытое множество реализаций:
// OperationEquals, TimestampAtLeast, TimestampAtMost.
type Condition interface {
	condition()
}

// OperationEquals — условие равенства вида операции.
type OperationEquals struct {
	Operation string
}

// TimestampAtLeast — условие "время записи не раньше Moment".
type TimestampAtLeast struct {
	Moment time.Time
}

// TimestampAtMost — условие "время записи не позже Moment".
type TimestampAtMost struct {
	Moment time.Time
}

func (OperationEquals) condition()  {}
func (TimestampAtLeast) condition() {}
func (TimestampAtMost) condition()  {}

// Predicate — конъюнкция условий. Пустой список условий соответствует
// предикату, пропускающему каждую запись; ограничение по владельцу
// накладывает вызывающая сторона, не этот пакет.
type Predicate struct {
	Conditions []Condition
}

// IsEmpty сообщает, что предикат не содержит ни одного условия.
func (p Predicate) IsEmpty() bool {
	return len(p.Conditions) == 0
}

// Build составляет предикат из фильтра. Порядок условий фиксирован,
// но результат выборки от него не зависит: условия независимы и
// соединены конъюнктивно.
func Build(f Filter) Predicate {
	var conds []Condition
	if f.Operation != nil {
		conds = append(conds, OperationEquals{Operation: *f.Operation})
	}
	if f.StartDate != nil {
		conds = append(conds, TimestampAtLeast{Moment: *f.StartDate})
	}
	if f.EndDate != nil {
		conds = append(conds, TimestampAtMost{Moment: *f.EndDate})
	}
	return Predicate{Conditions: conds}
}
