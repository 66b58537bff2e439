package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"fitclub/internal/domain/entity"
)

// Table - связанные записи в виде таблицы только для чтения.
type Table struct {
	Headers []string
	Rows    [][]string
	// Empty - текст для пустой таблицы.
	Empty string
}

// Related загружает связанные записи (например, записавшихся на групповую
// тренировку). Ничего не изменяет.
func (c *Controller) Related(ctx context.Context, id string) (*Table, error) {
	rel := c.def.Related
	if rel == nil {
		return nil, errors.Wrapf(ErrNotSupported, "связанные записи: %s", c.def.Name)
	}

	res, err := c.api.Send(ctx, http.MethodGet, entity.Path(rel.Path, id), nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err("Не удалось загрузить список")
	}

	var items []json.RawMessage
	if list, ok := res.Raw(rel.ListKey); ok {
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, &ResponseError{Kind: KindApplication, Status: res.Status, Message: "Некорректный список в ответе", Err: err}
		}
	}

	t := &Table{Empty: rel.Empty}
	for _, col := range rel.Columns {
		t.Headers = append(t.Headers, col.Header)
	}
	for i, item := range items {
		raw, err := entity.DecodeRaw(item)
		if err != nil {
			return nil, &ResponseError{Kind: KindApplication, Status: res.Status, Message: "Некорректная запись в ответе", Err: err}
		}
		row := make([]string, 0, len(rel.Columns))
		for _, col := range rel.Columns {
			row = append(row, col.Value(i, raw))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
