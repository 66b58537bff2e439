package filter

import (
	"net/url"
	"sort"
	"strings"

	"fitclub/internal/domain/entity"
)

// Kind - тип элемента фильтра.
type Kind string

const (
	KindText     Kind = "text"
	KindCheckbox Kind = "checkbox"
	KindSelect   Kind = "select"
	KindDate     Kind = "date"
)

// On - значение включенного флажка в строке запроса.
const On = "1"

// Control - один элемент панели фильтров.
type Control struct {
	Name  string
	Label string
	Kind  Kind
}

// State - значения фильтров: имя параметра запроса -> значение.
// Пустое значение означает, что фильтр не задан.
type State map[string]string

// Active сообщает, задан ли фильтр.
func (s State) Active(name string) bool {
	return s[name] != ""
}

// Clone возвращает независимую копию состояния.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Keys возвращает имена заданных фильтров в отсортированном порядке.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s))
	for k, v := range s {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Inputs - элементы управления фильтром на экране.
type Inputs interface {
	Value(name string) string
	SetValue(name, value string)
}

// MapInputs - Inputs поверх обычной map.
type MapInputs map[string]string

func (m MapInputs) Value(name string) string    { return m[name] }
func (m MapInputs) SetValue(name, value string) { m[name] = value }

// BuildURL собирает адрес списка. Пустые значения пропускаются, параметры
// идут в порядке сортировки ключей, поэтому одно состояние всегда дает один адрес.
func BuildURL(basePath string, s State) string {
	q := url.Values{}
	for _, k := range s.Keys() {
		q.Set(k, s[k])
	}
	if qs := q.Encode(); qs != "" {
		return basePath + "?" + qs
	}
	return basePath
}

// FromQuery восстанавливает состояние из строки запроса. Неизвестные
// параметры игнорируются.
func FromQuery(controls []Control, q url.Values) State {
	s := make(State, len(controls))
	for _, c := range controls {
		s[c.Name] = c.normalize(q.Get(c.Name))
	}
	return s
}

// Read снимает состояние с элементов управления.
func Read(controls []Control, in Inputs) State {
	s := make(State, len(controls))
	for _, c := range controls {
		s[c.Name] = c.normalize(in.Value(c.Name))
	}
	return s
}

// Render записывает состояние обратно в элементы управления.
func Render(controls []Control, s State, in Inputs) {
	for _, c := range controls {
		in.SetValue(c.Name, c.normalize(s[c.Name]))
	}
}

func (c Control) normalize(v string) string {
	v = strings.TrimSpace(v)
	switch c.Kind {
	case KindCheckbox:
		if checked(v) {
			return On
		}
		return ""
	case KindDate:
		return entity.NormalizeDate(v)
	}
	return v
}

func checked(v string) bool {
	switch strings.ToLower(v) {
	case "1", "on", "true", "yes", "да":
		return true
	}
	return false
}
