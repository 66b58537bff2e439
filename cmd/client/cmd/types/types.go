// Package types хранит общие для команд значения в контексте cobra.
package types

import (
	"context"

	"github.com/go-faster/errors"

	"fitclub/internal/app/client"
	"fitclub/internal/app/client/terminal"
)

type ctxKey struct{}

// Runtime - приложение и консоль, собранные в PersistentPreRunE.
type Runtime struct {
	App  *client.App
	Term *terminal.Terminal
}

func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, ctxKey{}, rt)
}

// From достает Runtime из контекста команды.
func From(ctx context.Context) (*Runtime, error) {
	rt, ok := ctx.Value(ctxKey{}).(*Runtime)
	if !ok || rt == nil || rt.App == nil {
		return nil, errors.New("приложение не инициализировано")
	}
	return rt, nil
}
