package client

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-faster/errors"
	"golang.org/x/exp/slog"

	"fitclub/internal/app/client/config"
	"fitclub/internal/domain/entity"
	"fitclub/internal/domain/filter"
)

// App связывает HTTP-клиент, интерфейс пользователя и контроллеры всех
// экранов панели.
type App struct {
	config *config.Config
	log    *slog.Logger
	http   *httpClient
	api    API
	ui     UI
	nav    Navigator

	defs        []entity.Definition
	controllers map[string]*Controller
}

func New(cfg *config.Config, log *slog.Logger, ui UI) (*App, error) {
	httpCl, err := newHTTPClient(cfg, log)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка инициализации HTTP клиента")
	}
	return newApp(cfg, log, ui, httpCl)
}

func newApp(cfg *config.Config, log *slog.Logger, ui UI, httpCl *httpClient) (*App, error) {
	var api API = httpCl
	app := &App{
		config:      cfg,
		log:         log,
		http:        httpCl,
		api:         api,
		ui:          ui,
		nav:         &navigator{api: api, screen: ui},
		defs:        entity.Registry(),
		controllers: make(map[string]*Controller),
	}

	for _, def := range app.defs {
		c, err := NewController(def, api, ui, log)
		if err != nil {
			return nil, errors.Wrapf(err, "экран %s", def.Name)
		}
		app.controllers[def.Name] = c
	}

	log.Debug("Клиент инициализирован",
		"server", cfg.ServerURL,
		"entities", len(app.defs),
	)
	return app, nil
}

// Config возвращает конфигурацию клиента.
func (a *App) Config() *config.Config {
	return a.config
}

// Definitions возвращает определения всех экранов.
func (a *App) Definitions() []entity.Definition {
	return a.defs
}

// Controller возвращает контроллер сущности.
func (a *App) Controller(name string) (*Controller, error) {
	c, ok := a.controllers[name]
	if !ok {
		return nil, errors.Errorf("неизвестная сущность: %s", name)
	}
	return c, nil
}

// Page возвращает границу обработки действий для списка сущности.
func (a *App) Page(name string) (*Page, error) {
	c, err := a.Controller(name)
	if err != nil {
		return nil, err
	}
	return NewPage(c.def.ListPath, a.ui, a.nav, a.log.With("page", c.def.ListPath)), nil
}

// Filters возвращает контроллер фильтров списка.
func (a *App) Filters(name string, inputs filter.Inputs) (*FilterController, error) {
	def, ok := filter.Lookup(name)
	if !ok {
		return nil, errors.Errorf("у списка %s нет фильтров", name)
	}
	return NewFilterController(def, inputs, a.nav, a.log), nil
}

// Navigator возвращает навигатор по спискам.
func (a *App) Navigator() Navigator {
	return a.nav
}

// Document загружает страницу списка.
func (a *App) Document(ctx context.Context, path string) (*goquery.Document, error) {
	return a.api.Document(ctx, path)
}

// CheckConnection проверяет доступность сервера
func (a *App) CheckConnection(ctx context.Context) error {
	return a.http.HealthCheck(ctx)
}
