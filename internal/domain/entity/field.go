package entity

import (
	"github.com/go-faster/errors"
)

// Kind - тип поля формы
type Kind string

const (
	KindText   Kind = "text"
	KindDate   Kind = "date"
	KindBool   Kind = "bool"
	KindNumber Kind = "number"
	KindSelect Kind = "select"
	KindHidden Kind = "hidden"
)

// Validate проверяет, что тип поля известен.
func (k Kind) Validate() error {
	switch k {
	case KindText, KindDate, KindBool, KindNumber, KindSelect, KindHidden:
		return nil
	}
	return errors.Errorf("неизвестный тип поля: %q", string(k))
}

// String возвращает строковое представление типа.
func (k Kind) String() string {
	return string(k)
}

// Field описывает одно поле формы и ключи снимка, из которых оно заполняется.
type Field struct {
	// Name - имя поля в форме, оно же ключ в теле запроса.
	Name  string `validate:"required"`
	Label string
	Kind  Kind `validate:"required"`
	// Keys - ключи записи сервера в порядке приоритета. Ключ с точкой
	// ("MedicalData.String") проходит по вложенным объектам.
	Keys    []string
	Default string
	// Normalize приводит значение сервера к значению, которое принимает форма.
	Normalize func(string) string `validate:"-"`
}

// Text создает текстовое поле.
func Text(name, label string, keys ...string) Field {
	return Field{Name: name, Label: label, Kind: KindText, Keys: keys}
}

// Date создает поле даты.
func Date(name, label string, keys ...string) Field {
	return Field{Name: name, Label: label, Kind: KindDate, Keys: keys}
}

// Number создает числовое поле.
func Number(name, label string, keys ...string) Field {
	return Field{Name: name, Label: label, Kind: KindNumber, Keys: keys}
}

// Bool создает поле-флажок.
func Bool(name, label string, keys ...string) Field {
	return Field{Name: name, Label: label, Kind: KindBool, Keys: keys}
}

// Select создает поле выбора, опции которого приходят с отдельного эндпоинта.
func Select(name, label string, keys ...string) Field {
	return Field{Name: name, Label: label, Kind: KindSelect, Keys: keys}
}

// Hidden создает скрытое поле (обычно id редактируемой записи).
func Hidden(name string, keys ...string) Field {
	return Field{Name: name, Kind: KindHidden, Keys: keys}
}

// WithDefault задает значение по умолчанию, если в снимке ничего не нашлось.
func (f Field) WithDefault(v string) Field {
	f.Default = v
	return f
}

// WithNormalize задает функцию нормализации значения.
func (f Field) WithNormalize(fn func(string) string) Field {
	f.Normalize = fn
	return f
}
