package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AnnotationValue хранит значения route/headsign.
// В JSON одно значение пишется строкой, несколько - массивом, отсутствие - null.
type AnnotationValue []string

// IsSet сообщает, заполнена ли аннотация
func (v AnnotationValue) IsSet() bool {
	return len(v) > 0
}

// Scalar возвращает единственное значение, если оно одно
func (v AnnotationValue) Scalar() (string, bool) {
	if len(v) == 1 {
		return v[0], true
	}
	return "", false
}

func (v AnnotationValue) MarshalJSON() ([]byte, error) {
	switch len(v) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(v[0])
	default:
		return json.Marshal([]string(v))
	}
}

func (v *AnnotationValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = AnnotationValue{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("annotation must be a string or an array of strings: %w", err)
	}
	*v = many
	return nil
}

// Value сохраняет аннотацию в JSONB колонку (NULL если не заполнена)
func (v AnnotationValue) Value() (driver.Value, error) {
	if !v.IsSet() {
		return nil, nil
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// AnnotatedEvent - событие с добавленными маршрутами и направлениями.
// Создаётся заново на каждый цикл, исходное событие не изменяется.
type AnnotatedEvent struct {
	TrafficEvent
	Route    AnnotationValue `json:"route"`
	Headsign AnnotationValue `json:"headsign"`
}

// IsAnnotated сообщает, затрагивает ли событие хотя бы один маршрут
func (e AnnotatedEvent) IsAnnotated() bool {
	return e.Route.IsSet()
}
