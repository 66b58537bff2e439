package client

import (
	"net/url"
	"strings"
	"sync"

	"github.com/go-faster/errors"

	"fitclub/internal/domain/entity"
)

// checkedValue - значение отмеченного флажка в теле формы.
const checkedValue = "on"

// Input - один элемент формы.
type Input struct {
	Field   entity.Field
	Value   string
	Options []entity.Option
}

// Checked сообщает, отмечен ли флажок.
func (i Input) Checked() bool {
	return i.Value == checkedValue
}

// SubmitControl - кнопка отправки.
type SubmitControl interface {
	// Acquire блокирует кнопку и показывает busyLabel. false, если кнопка уже заблокирована.
	Acquire(busyLabel string) bool
	// Release разблокирует кнопку и возвращает исходную подпись.
	Release()
	Disabled() bool
	Label() string
}

// Button - SubmitControl в памяти.
type Button struct {
	mu       sync.Mutex
	label    string
	saved    string
	disabled bool
}

func NewButton(label string) *Button {
	return &Button{label: label}
}

func (b *Button) Acquire(busyLabel string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return false
	}
	b.disabled = true
	b.saved = b.label
	b.label = busyLabel
	return true
}

func (b *Button) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.disabled {
		return
	}
	b.disabled = false
	b.label = b.saved
}

func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// lock блокирует кнопку на время запроса. Возвращенную функцию нужно
// вызвать на любом пути выхода.
func lock(c SubmitControl, busyLabel string) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	if !c.Acquire(busyLabel) {
		return nil, ErrSubmitInProgress
	}
	return c.Release, nil
}

// FormBinding связывает поля определения с элементами одной формы и окном,
// в котором она показана. Создается один раз на контроллер.
type FormBinding struct {
	mu      sync.Mutex
	fields  []entity.Field
	inputs  map[string]*Input
	files   []File
	editing string

	modal  Modal
	submit SubmitControl
}

func NewFormBinding(fields []entity.Field, modal Modal, submit SubmitControl) *FormBinding {
	b := &FormBinding{
		fields: fields,
		inputs: make(map[string]*Input, len(fields)),
		modal:  modal,
		submit: submit,
	}
	for _, f := range fields {
		b.inputs[f.Name] = &Input{Field: f, Value: f.Default}
	}
	return b
}

// Submit возвращает кнопку отправки формы.
func (b *FormBinding) Submit() SubmitControl {
	return b.submit
}

// Set записывает значение поля. Для флажка любое истинное значение
// превращается в "on".
func (b *FormBinding) Set(name, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	in, ok := b.inputs[name]
	if !ok {
		return errors.Errorf("в форме нет поля %q", name)
	}
	in.Value = inputValue(in.Field, value)
	return nil
}

// Get возвращает текущее значение поля.
func (b *FormBinding) Get(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if in, ok := b.inputs[name]; ok {
		return in.Value
	}
	return ""
}

// SetOptions заменяет опции списка.
func (b *FormBinding) SetOptions(name string, opts []entity.Option) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if in, ok := b.inputs[name]; ok {
		in.Options = opts
	}
}

// Attach прикрепляет файл к следующей отправке.
func (b *FormBinding) Attach(f File) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files = append(b.files, f)
}

// Inputs возвращает копию элементов формы в порядке полей.
func (b *FormBinding) Inputs() []Input {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inputsLocked()
}

func (b *FormBinding) inputsLocked() []Input {
	out := make([]Input, 0, len(b.fields))
	for _, f := range b.fields {
		in := *b.inputs[f.Name]
		in.Options = append([]entity.Option(nil), in.Options...)
		out = append(out, in)
	}
	return out
}

// Load заполняет форму снимком записи и опциями списков за один шаг и
// отмечает запись id как редактируемую.
func (b *FormBinding) Load(id string, snap entity.Snapshot, options map[string][]entity.Option) []Input {
	b.mu.Lock()
	defer b.mu.Unlock()

	for name, opts := range options {
		if in, ok := b.inputs[name]; ok {
			in.Options = opts
		}
	}
	for _, f := range b.fields {
		if v, ok := snap[f.Name]; ok {
			b.inputs[f.Name].Value = inputValue(f, v)
		}
	}
	b.editing = id
	return b.inputsLocked()
}

// Editing возвращает id редактируемой записи.
func (b *FormBinding) Editing() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editing
}

// Reset возвращает форму к значениям по умолчанию.
func (b *FormBinding) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, f := range b.fields {
		in := b.inputs[f.Name]
		in.Value = f.Default
	}
	b.files = nil
	b.editing = ""
}

// Values собирает значения формы так же, как браузер собирает FormData:
// флажок попадает в тело только отмеченным.
func (b *FormBinding) Values() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.valuesLocked()
}

func (b *FormBinding) valuesLocked() url.Values {
	v := make(url.Values, len(b.fields))
	for _, f := range b.fields {
		in := b.inputs[f.Name]
		if f.Kind == entity.KindBool {
			if in.Checked() {
				v.Set(f.Name, checkedValue)
			}
			continue
		}
		v.Set(f.Name, in.Value)
	}
	return v
}

// Form возвращает тело запроса с прикрепленными файлами.
func (b *FormBinding) Form(enc entity.Encoding) *Form {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &Form{
		Encoding: enc,
		Values:   b.valuesLocked(),
		Files:    append([]File(nil), b.files...),
	}
}

func inputValue(f entity.Field, v string) string {
	if f.Kind != entity.KindBool {
		return v
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off", "no", "нет":
		return ""
	}
	return checkedValue
}
