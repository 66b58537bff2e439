package entity

import (
	"github.com/PuerkitoBio/goquery"
)

// RowSource описывает, где на странице списка лежат данные записи, у
// которой нет эндпоинта чтения: атрибуты кнопки редактирования в ее строке.
type RowSource struct {
	// Selector - кнопки редактирования на странице списка.
	Selector string `validate:"required"`
	// IDAttr - атрибут кнопки с id записи.
	IDAttr string `validate:"required"`
	// Attrs - ключ записи -> атрибут кнопки.
	Attrs map[string]string `validate:"required,min=1"`
}

// Read находит кнопку записи id и собирает запись из ее атрибутов.
// Отсутствующий атрибут в запись не попадает.
func (r RowSource) Read(doc *goquery.Document, id string) (Raw, bool) {
	btn := doc.Find(r.Selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr(r.IDAttr, "") == id
	}).First()
	if btn.Length() == 0 {
		return nil, false
	}

	raw := make(Raw, len(r.Attrs))
	for key, attr := range r.Attrs {
		if v, ok := btn.Attr(attr); ok {
			raw[key] = v
		}
	}
	return raw, true
}
