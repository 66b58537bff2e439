package client

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/exp/slog"
)

// Page - граница обработки действий пользователя на одном списке. Любая
// ошибка действия превращается в уведомление; список перезагружается
// только после подтвержденного успеха.
type Page struct {
	location string
	notify   Notifier
	nav      Navigator
	log      *slog.Logger
}

func NewPage(location string, notify Notifier, nav Navigator, log *slog.Logger) *Page {
	return &Page{location: location, notify: notify, nav: nav, log: log}
}

// Location - адрес списка страницы.
func (p *Page) Location() string {
	return p.location
}

// Do выполняет действие и показывает его итог. Отказ пользователя от
// подтверждения ошибкой не считается. Возвращенная ошибка уже показана.
func (p *Page) Do(ctx context.Context, action func(context.Context) (*Outcome, error)) (*Outcome, error) {
	out, err := action(ctx)
	if err != nil {
		return nil, p.fail(err)
	}
	if out == nil {
		return nil, nil
	}

	if out.Message != "" {
		p.notify.Success(out.Message)
	}
	if out.Reload {
		if err := p.nav.Reload(ctx, p.location); err != nil {
			p.log.Warn("Не удалось обновить список", "location", p.location, "error", err)
			p.notify.Error("Не удалось обновить список: " + UserMessage(err))
		}
	}
	return out, nil
}

// Open выполняет действие без итога (например, открытие формы).
func (p *Page) Open(ctx context.Context, action func(context.Context) error) error {
	if err := action(ctx); err != nil {
		return p.fail(err)
	}
	return nil
}

func (p *Page) fail(err error) error {
	if errors.Is(err, ErrCancelled) {
		p.log.Debug("Действие отменено")
		return nil
	}

	msg := UserMessage(err)
	if errors.Is(err, ErrSubmitInProgress) {
		msg = "Запрос уже выполняется, дождитесь ответа"
	}

	var re *ResponseError
	if errors.As(err, &re) {
		p.log.Debug("Действие завершилось ошибкой", "kind", re.Kind.String(), "status", re.Status, "error", re.Message)
	} else {
		p.log.Debug("Действие завершилось ошибкой", "error", err)
	}

	p.notify.Error(msg)
	return &ReportedError{Err: err}
}
