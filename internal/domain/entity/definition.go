package entity

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
)

// Encoding - кодировка тела запроса на создание/обновление.
type Encoding string

const (
	EncodingForm      Encoding = "application/x-www-form-urlencoded"
	EncodingMultipart Encoding = "multipart/form-data"
)

// Messages - тексты уведомлений для одной сущности. Пустые значения
// заменяются общими формулировками.
type Messages struct {
	Created      string
	Updated      string
	Deleted      string
	CreateFailed string
	LoadFailed   string
	UpdateFailed string
	DeleteFailed string
}

// Photo - подресурс фотографии записи.
type Photo struct {
	Field         string `validate:"required"`
	UploadPath    string `validate:"required,startswith=/"`
	DeletePath    string `validate:"omitempty,startswith=/"`
	ViewPath      string `validate:"omitempty,startswith=/"`
	DeleteConfirm string
}

// Column - колонка таблицы связанных записей.
type Column struct {
	Header string
	Value  func(i int, row Raw) string `validate:"-"`
}

// Related - список связанных записей только для чтения.
type Related struct {
	Path    string   `validate:"required,startswith=/"`
	ListKey string   `validate:"required"`
	Empty   string   `validate:"required"`
	Columns []Column `validate:"required,min=1"`
}

// Definition - декларативное описание CRUD-экрана одной сущности.
// Пути содержат плейсхолдер {id}.
type Definition struct {
	Name     string `validate:"required"`
	Title    string `validate:"required"`
	ListPath string `validate:"required,startswith=/"`

	CreatePath     string `validate:"omitempty,startswith=/"`
	CreateEncoding Encoding
	ReadPath       string `validate:"omitempty,startswith=/"`
	SnapshotKey    string `validate:"required_with=ReadPath"`
	UpdatePath     string `validate:"omitempty,startswith=/"`
	UpdateEncoding Encoding
	DeletePath     string `validate:"omitempty,startswith=/"`
	DeleteConfirm  string

	Fields []Field `validate:"required,min=1,dive"`
	// CreateFields - поля формы создания, если они отличаются от формы
	// редактирования.
	CreateFields []Field           `validate:"dive"`
	Selects      []DependentSelect `validate:"dive"`
	Photo        *Photo            `validate:"omitempty"`
	Related      *Related          `validate:"omitempty"`

	// Row - данные записи на странице списка, если ReadPath нет.
	Row *RowSource `validate:"omitempty"`

	Messages Messages
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate проверяет определение целиком. Ошибка здесь - ошибка
// конфигурации экрана, а не данных пользователя.
func (d Definition) Validate() error {
	if err := validatorInstance().Struct(d); err != nil {
		return errors.Wrapf(err, "определение %q", d.Name)
	}

	for _, fields := range [][]Field{d.Fields, d.CreateFields} {
		seen := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			if err := f.Kind.Validate(); err != nil {
				return errors.Wrapf(err, "определение %q, поле %q", d.Name, f.Name)
			}
			if _, dup := seen[f.Name]; dup {
				return errors.Errorf("определение %q: поле %q объявлено дважды", d.Name, f.Name)
			}
			seen[f.Name] = struct{}{}
		}
	}
	for _, s := range d.Selects {
		f, ok := d.Field(s.Field)
		if !ok {
			f, ok = fieldIn(d.CreateFields, s.Field)
		}
		if !ok {
			return errors.Errorf("определение %q: список для неизвестного поля %q", d.Name, s.Field)
		}
		if f.Kind != KindSelect {
			return errors.Errorf("определение %q: поле %q не является списком", d.Name, s.Field)
		}
	}
	if d.Row != nil {
		for key := range d.Row.Attrs {
			if _, ok := d.Field(key); !ok {
				return errors.Errorf("определение %q: атрибут строки для неизвестного поля %q", d.Name, key)
			}
		}
	}
	if d.CreatePath != "" && d.CreateEncoding == "" {
		return errors.Errorf("определение %q: не задана кодировка создания", d.Name)
	}
	if d.UpdatePath != "" && d.UpdateEncoding == "" {
		return errors.Errorf("определение %q: не задана кодировка обновления", d.Name)
	}
	return nil
}

// displayFields - поля, которыми запись называется в вопросах подтверждения.
var displayFields = []string{"fio", "name", "title"}

// Named сообщает, есть ли у записи поле с именем.
func (d Definition) Named() bool {
	for _, name := range displayFields {
		if _, ok := d.Field(name); ok {
			return true
		}
	}
	return false
}

// DisplayName возвращает имя записи для людей или пустую строку.
func (d Definition) DisplayName(raw Raw) string {
	snap := Normalize(d.Fields, raw)
	for _, name := range displayFields {
		if _, ok := d.Field(name); ok && snap[name] != "" {
			return snap[name]
		}
	}
	return ""
}

// Field ищет поле формы редактирования по имени.
func (d Definition) Field(name string) (Field, bool) {
	return fieldIn(d.Fields, name)
}

// CreateForm - поля формы создания.
func (d Definition) CreateForm() []Field {
	if len(d.CreateFields) > 0 {
		return d.CreateFields
	}
	return d.Fields
}

// SelectsFor возвращает зависимые списки, которые относятся к набору полей.
func (d Definition) SelectsFor(fields []Field) []DependentSelect {
	var out []DependentSelect
	for _, s := range d.Selects {
		if _, ok := fieldIn(fields, s.Field); ok {
			out = append(out, s)
		}
	}
	return out
}

func fieldIn(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (d Definition) CanCreate() bool { return d.CreatePath != "" }
func (d Definition) CanRead() bool   { return d.ReadPath != "" }
func (d Definition) CanUpdate() bool { return d.UpdatePath != "" }
func (d Definition) CanDelete() bool { return d.DeletePath != "" }

// Path подставляет id в шаблон пути.
func Path(tpl, id string) string {
	return strings.ReplaceAll(tpl, "{id}", id)
}

// ConfirmDelete формирует текст подтверждения удаления с именем записи.
func (d Definition) ConfirmDelete(name string) string {
	if name == "" {
		name = d.Title
	}
	if d.DeleteConfirm == "" {
		return fmt.Sprintf("Удалить «%s»?", name)
	}
	if strings.Contains(d.DeleteConfirm, "%s") {
		return fmt.Sprintf(d.DeleteConfirm, name)
	}
	return d.DeleteConfirm
}

// Message возвращает текст сервера, а если его нет - запасной.
func Message(server, fallback string) string {
	if strings.TrimSpace(server) != "" {
		return server
	}
	return fallback
}

func (m Messages) orDefault() Messages {
	def := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Messages{
		Created:      def(m.Created, "Сохранено"),
		Updated:      def(m.Updated, "Обновлено"),
		Deleted:      def(m.Deleted, "Удалено"),
		CreateFailed: def(m.CreateFailed, "Ошибка сохранения"),
		LoadFailed:   def(m.LoadFailed, "Не удалось загрузить запись"),
		UpdateFailed: def(m.UpdateFailed, "Не удалось обновить"),
		DeleteFailed: def(m.DeleteFailed, "Не удалось удалить"),
	}
}

// Texts возвращает тексты уведомлений с подставленными значениями по умолчанию.
func (d Definition) Texts() Messages {
	return d.Messages.orDefault()
}
