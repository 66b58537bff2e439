package client

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Modal - окно с формой одной сущности.
type Modal interface {
	Show(title string, inputs []Input)
	Hide()
}

// Confirmer запрашивает подтверждение действия.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier показывает уведомления об итоге действия.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Screen отображает страницу списка, полученную с сервера.
type Screen interface {
	ShowList(location string, doc *goquery.Document)
}

// UI - все, что контроллерам нужно от интерфейса пользователя.
type UI interface {
	Confirmer
	Notifier
	Screen
	// Modal возвращает окно формы. name - имя сущности, kind - create/edit/photo.
	Modal(name, kind string) Modal
}

// Navigator перезагружает список или переходит на новый адрес.
type Navigator interface {
	Reload(ctx context.Context, location string) error
	Assign(ctx context.Context, location string) error
}

// navigator получает страницу списка с сервера и отдает ее на экран.
type navigator struct {
	api    API
	screen Screen
}

func (n *navigator) Reload(ctx context.Context, location string) error {
	return n.Assign(ctx, location)
}

func (n *navigator) Assign(ctx context.Context, location string) error {
	doc, err := n.api.Document(ctx, location)
	if err != nil {
		return err
	}
	n.screen.ShowList(location, doc)
	return nil
}
