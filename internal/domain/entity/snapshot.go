package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// Raw - запись сервера в том виде, в каком она пришла по сети.
type Raw map[string]any

// Snapshot - запись, приведенная к каноническому виду: имя поля формы -> значение.
type Snapshot map[string]string

// DecodeRaw разбирает JSON-объект записи, сохраняя числа без потери точности.
func DecodeRaw(data []byte) (Raw, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw Raw
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "разбор записи")
	}
	if raw == nil {
		return nil, errors.New("пустая запись")
	}
	return raw, nil
}

// Normalize переводит запись сервера в Snapshot по отображению полей
// определения. Это единственное место, где учитываются разные написания
// ключей (fio/FIO/фио).
func Normalize(fields []Field, raw Raw) Snapshot {
	snap := make(Snapshot, len(fields))
	for _, f := range fields {
		snap[f.Name] = normalizeField(f, raw)
	}
	return snap
}

func normalizeField(f Field, raw Raw) string {
	keys := f.Keys
	if len(keys) == 0 {
		keys = []string{f.Name}
	}

	if f.Kind == KindBool {
		for _, k := range keys {
			if v, ok := lookup(raw, k); ok && truthy(v) {
				return "on"
			}
		}
		if f.Default != "" {
			return f.Default
		}
		return ""
	}

	value := ""
	for _, k := range keys {
		v, ok := lookup(raw, k)
		if !ok {
			continue
		}
		if s, ok := stringify(v); ok && s != "" {
			value = s
			break
		}
	}

	if f.Normalize != nil {
		value = f.Normalize(value)
	}
	if f.Kind == KindDate {
		value = NormalizeDate(value)
	}
	if value == "" {
		value = f.Default
	}
	return value
}

// lookup ищет ключ в записи; ключ с точками проходит по вложенным объектам.
func lookup(raw Raw, key string) (any, bool) {
	if v, ok := raw[key]; ok {
		return v, v != nil
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}

	var cur any = map[string]any(raw)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		return s != "" && s != "false" && s != "0" && s != "off"
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	case float64:
		return x != 0
	case map[string]any, []any:
		return true
	}
	return false
}
