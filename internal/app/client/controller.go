package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-faster/errors"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"fitclub/internal/domain/entity"
)

const (
	saveLabel = "Сохранить"
	busyLabel = "⌛..."
)

// Outcome - итог успешного действия. Решение о перезагрузке списка
// принимает вызывающий.
type Outcome struct {
	Message string
	Reload  bool
	Preview *Preview
}

// Controller ведет окна создания и редактирования одной сущности.
type Controller struct {
	def     entity.Definition
	texts   entity.Messages
	api     API
	confirm Confirmer
	log     *slog.Logger

	create *FormBinding
	edit   *FormBinding
	photo  *Button
}

// NewController проверяет определение и строит формы.
func NewController(def entity.Definition, api API, ui UI, log *slog.Logger) (*Controller, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		def:     def,
		texts:   def.Texts(),
		api:     api,
		confirm: ui,
		log:     log.With("entity", def.Name),
		photo:   NewButton("Загрузить"),
	}
	if def.CanCreate() {
		c.create = NewFormBinding(def.CreateForm(), ui.Modal(def.Name, "create"), NewButton(saveLabel))
	}
	if def.CanUpdate() {
		c.edit = NewFormBinding(def.Fields, ui.Modal(def.Name, "edit"), NewButton(saveLabel))
	}
	return c, nil
}

// Definition возвращает определение сущности.
func (c *Controller) Definition() entity.Definition {
	return c.def
}

// CreateForm возвращает форму создания или nil.
func (c *Controller) CreateForm() *FormBinding {
	return c.create
}

// EditForm возвращает форму редактирования или nil.
func (c *Controller) EditForm() *FormBinding {
	return c.edit
}

// OpenCreate показывает окно создания. Сеть не используется.
func (c *Controller) OpenCreate() error {
	if c.create == nil {
		return errors.Wrapf(ErrNotSupported, "создание: %s", c.def.Name)
	}
	c.create.modal.Show("Новая запись: "+c.def.Title, c.create.Inputs())
	return nil
}

// PrepareCreate заполняет списки формы создания. Ошибки загрузки списков
// не мешают показать форму.
func (c *Controller) PrepareCreate(ctx context.Context) {
	if c.create == nil {
		return
	}
	for name, opts := range c.loadSelects(ctx, c.def.SelectsFor(c.create.fields)) {
		c.create.SetOptions(name, opts)
	}
}

// SubmitCreate отправляет форму создания. При успехе форма очищается и
// окно закрывается; при ошибке форма остается как есть.
func (c *Controller) SubmitCreate(ctx context.Context) (*Outcome, error) {
	if c.create == nil {
		return nil, errors.Wrapf(ErrNotSupported, "создание: %s", c.def.Name)
	}

	unlock, err := lock(c.create.submit, busyLabel)
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := c.api.Send(ctx, http.MethodPost, c.def.CreatePath, c.create.Form(c.def.CreateEncoding))
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err(c.texts.CreateFailed)
	}

	c.log.Info("Запись создана")
	c.create.Reset()
	c.create.modal.Hide()
	return &Outcome{Message: res.Text(c.texts.Created), Reload: true}, nil
}

// OpenEdit загружает запись, заполняет зависимые списки и только потом
// показывает окно. При любой ошибке окно не показывается. Запись без
// эндпоинта чтения берется со страницы списка.
func (c *Controller) OpenEdit(ctx context.Context, id string) error {
	if c.edit == nil {
		return errors.Wrapf(ErrNotSupported, "редактирование: %s", c.def.Name)
	}

	raw, err := c.load(ctx, id)
	if err != nil {
		return err
	}
	return c.OpenEditWith(ctx, id, raw)
}

// load получает запись с эндпоинта чтения или со страницы списка.
func (c *Controller) load(ctx context.Context, id string) (entity.Raw, error) {
	switch {
	case c.def.CanRead():
		return c.Fetch(ctx, id)
	case c.def.Row != nil:
		return c.FetchRow(ctx, id)
	}
	return nil, errors.Wrapf(ErrNotSupported, "чтение: %s", c.def.Name)
}

// DisplayName загружает запись и возвращает ее имя для вопроса
// подтверждения. Если имя получить не удалось, возвращается id.
func (c *Controller) DisplayName(ctx context.Context, id string) string {
	if !c.def.Named() {
		return id
	}
	raw, err := c.load(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotSupported) {
			c.log.Warn("Не удалось получить имя записи", "id", id, "error", err)
		}
		return id
	}
	if name := c.def.DisplayName(raw); name != "" {
		return name
	}
	return id
}

// FetchRow читает запись из атрибутов ее строки на странице списка.
func (c *Controller) FetchRow(ctx context.Context, id string) (entity.Raw, error) {
	if c.def.Row == nil {
		return nil, errors.Wrapf(ErrNotSupported, "строка списка: %s", c.def.Name)
	}

	doc, err := c.api.Document(ctx, c.def.ListPath)
	if err != nil {
		return nil, err
	}
	raw, ok := c.def.Row.Read(doc, id)
	if !ok {
		return nil, &ResponseError{Kind: KindApplication, Message: fmt.Sprintf("Запись #%s не найдена на странице %s", id, c.def.ListPath)}
	}
	return raw, nil
}

// Fetch загружает запись по id в сыром виде.
func (c *Controller) Fetch(ctx context.Context, id string) (entity.Raw, error) {
	if !c.def.CanRead() {
		return nil, errors.Wrapf(ErrNotSupported, "чтение: %s", c.def.Name)
	}

	res, err := c.api.Send(ctx, http.MethodGet, entity.Path(c.def.ReadPath, id), nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err(c.texts.LoadFailed)
	}

	data, ok := res.Raw(c.def.SnapshotKey)
	if !ok {
		return nil, &ResponseError{Kind: KindApplication, Status: res.Status, Message: c.texts.LoadFailed}
	}
	raw, err := entity.DecodeRaw(data)
	if err != nil {
		return nil, &ResponseError{Kind: KindApplication, Status: res.Status, Message: c.texts.LoadFailed, Err: err}
	}
	return raw, nil
}

// OpenEditWith открывает окно редактирования по уже известной записи.
// Используется там, где у сущности нет эндпоинта чтения.
func (c *Controller) OpenEditWith(ctx context.Context, id string, raw entity.Raw) error {
	if c.edit == nil {
		return errors.Wrapf(ErrNotSupported, "редактирование: %s", c.def.Name)
	}

	snap := entity.Normalize(c.def.Fields, raw)
	options := c.loadSelects(ctx, c.def.SelectsFor(c.def.Fields))
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "открытие формы")
	}

	inputs := c.edit.Load(id, snap, options)
	c.edit.modal.Show("Редактирование: "+c.def.Title+" #"+id, inputs)
	return nil
}

// SubmitEdit отправляет форму редактирования. Пустой id означает запись,
// открытую последним OpenEdit.
func (c *Controller) SubmitEdit(ctx context.Context, id string) (*Outcome, error) {
	if c.edit == nil {
		return nil, errors.Wrapf(ErrNotSupported, "редактирование: %s", c.def.Name)
	}
	if id == "" {
		id = c.edit.Editing()
	}
	if id == "" {
		return nil, errors.New("форма редактирования не открыта")
	}

	unlock, err := lock(c.edit.submit, busyLabel)
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := c.api.Send(ctx, http.MethodPut, entity.Path(c.def.UpdatePath, id), c.edit.Form(c.def.UpdateEncoding))
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err(c.texts.UpdateFailed)
	}

	c.log.Info("Запись обновлена", "id", id)
	c.edit.modal.Hide()
	c.edit.Reset()
	return &Outcome{Message: res.Text(c.texts.Updated), Reload: true}, nil
}

// Delete спрашивает подтверждение с именем записи и удаляет ее. control -
// кнопка удаления в строке списка, может быть nil.
func (c *Controller) Delete(ctx context.Context, id, name string, control SubmitControl) (*Outcome, error) {
	if !c.def.CanDelete() {
		return nil, errors.Wrapf(ErrNotSupported, "удаление: %s", c.def.Name)
	}
	if !c.confirm.Confirm(c.def.ConfirmDelete(name)) {
		return nil, ErrCancelled
	}

	unlock, err := lock(control, busyLabel)
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := c.api.Send(ctx, http.MethodDelete, entity.Path(c.def.DeletePath, id), nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		c.log.Warn("Удаление отклонено сервером", "id", id, "error", res.Error)
		return nil, res.Err(c.texts.DeleteFailed)
	}

	c.log.Info("Запись удалена", "id", id)
	return &Outcome{Message: res.Text(c.texts.Deleted), Reload: true}, nil
}

// loadSelects загружает все зависимые списки параллельно и ждет их все.
// Неудачный список получает заглушку "Ошибка загрузки".
func (c *Controller) loadSelects(ctx context.Context, selects []entity.DependentSelect) map[string][]entity.Option {
	var (
		mu  sync.Mutex
		out = make(map[string][]entity.Option, len(selects))
		g   errgroup.Group
	)

	for _, s := range selects {
		s := s
		g.Go(func() error {
			opts, err := c.loadSelect(ctx, s)
			if err != nil {
				c.log.Error("Не удалось загрузить список", "field", s.Field, "path", s.Path, "error", err)
				opts = s.Failed()
			}
			mu.Lock()
			out[s.Field] = opts
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (c *Controller) loadSelect(ctx context.Context, s entity.DependentSelect) ([]entity.Option, error) {
	res, err := c.api.Send(ctx, http.MethodGet, s.Path, nil)
	if err != nil {
		return nil, err
	}
	list, ok := res.Raw(s.ListKey)
	if !ok && !res.Success {
		return nil, res.Err(entity.LoadFailedLabel)
	}
	return s.Options(list)
}
