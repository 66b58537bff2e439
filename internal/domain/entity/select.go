package entity

import (
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
)

// LoadFailedLabel - подпись заглушки, если список не удалось загрузить.
const LoadFailedLabel = "Ошибка загрузки"

// Option - один вариант выпадающего списка.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DependentSelect - выпадающий список, опции которого нужно получить с
// другого эндпоинта до того, как форма будет показана.
type DependentSelect struct {
	Field       string `validate:"required"`
	Path        string `validate:"required,startswith=/"`
	ListKey     string `validate:"required"`
	Placeholder string
	Empty       string
	// Label строит подпись опции из записи списка. По умолчанию берется
	// name/Name/label/Label.
	Label func(Raw) string `validate:"-"`
}

func (s DependentSelect) placeholder() Option {
	label := s.Placeholder
	if label == "" {
		label = "Выберите..."
	}
	return Option{Value: "", Label: label}
}

// Options разбирает список из ответа сервера в опции с заглушкой в начале.
// Пустой список дает единственную опцию с подписью Empty.
func (s DependentSelect) Options(list json.RawMessage) ([]Option, error) {
	var items []json.RawMessage
	if len(list) > 0 && string(list) != "null" {
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, errors.Wrapf(err, "список %s", s.ListKey)
		}
	}

	if len(items) == 0 && s.Empty != "" {
		return []Option{{Value: "", Label: s.Empty}}, nil
	}

	opts := make([]Option, 0, len(items)+1)
	opts = append(opts, s.placeholder())
	for _, item := range items {
		raw, err := DecodeRaw(item)
		if err != nil {
			return nil, err
		}
		opts = append(opts, s.option(raw))
	}
	return opts, nil
}

// Failed возвращает список-заглушку для неудачной загрузки.
func (s DependentSelect) Failed() []Option {
	return []Option{{Value: "", Label: LoadFailedLabel}}
}

func (s DependentSelect) option(raw Raw) Option {
	value := firstString(raw, "id", "ID")
	label := ""
	if s.Label != nil {
		label = s.Label(raw)
	}
	if label == "" {
		label = firstString(raw, "name", "Name", "label", "Label")
	}
	if label == "" {
		label = value
	}
	return Option{Value: value, Label: label}
}

func firstString(raw Raw, keys ...string) string {
	for _, k := range keys {
		if v, ok := lookup(raw, k); ok {
			if s, ok := stringify(v); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// TariffLabel подписывает тариф вместе с ценой.
func TariffLabel(raw Raw) string {
	name := firstString(raw, "name", "Name")
	price := firstString(raw, "price", "Price")
	if name == "" {
		return ""
	}
	return fmt.Sprintf("%s (%s ₽)", name, price)
}
