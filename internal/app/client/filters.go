package client

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-faster/errors"
	"golang.org/x/exp/slog"

	"fitclub/internal/domain/filter"
)

// FilterController владеет состоянием фильтров одного списка. Состояние
// каждый раз снимается с элементов управления или восстанавливается из
// адреса, между переходами оно не хранится.
type FilterController struct {
	def    filter.Definition
	inputs filter.Inputs
	nav    Navigator
	log    *slog.Logger

	mu    sync.Mutex
	state filter.State
}

func NewFilterController(def filter.Definition, inputs filter.Inputs, nav Navigator, log *slog.Logger) *FilterController {
	return &FilterController{
		def:    def,
		inputs: inputs,
		nav:    nav,
		log:    log.With("filters", def.Name),
		state:  filter.State{},
	}
}

// Definition возвращает набор фильтров.
func (f *FilterController) Definition() filter.Definition {
	return f.def
}

// Load восстанавливает состояние из строки запроса загруженной страницы и
// переносит его в элементы управления.
func (f *FilterController) Load(query url.Values) filter.State {
	s := filter.FromQuery(f.def.Controls, query)
	f.RenderFilterState(s)
	return s.Clone()
}

// ReadFilterState снимает состояние с элементов управления.
func (f *FilterController) ReadFilterState() filter.State {
	s := filter.Read(f.def.Controls, f.inputs)
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
	return s.Clone()
}

// RenderFilterState записывает состояние в элементы управления.
func (f *FilterController) RenderFilterState(s filter.State) {
	filter.Render(f.def.Controls, s, f.inputs)
	f.mu.Lock()
	f.state = s.Clone()
	f.mu.Unlock()
}

// State возвращает последнее прочитанное или отрисованное состояние.
func (f *FilterController) State() filter.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

// URL возвращает адрес списка для текущих значений элементов управления.
func (f *FilterController) URL() string {
	return filter.BuildURL(f.def.BasePath, f.ReadFilterState())
}

// ApplyFilters переходит на адрес списка с текущими фильтрами. Что попадет
// в список, решает сервер.
func (f *FilterController) ApplyFilters(ctx context.Context) (string, error) {
	next := f.URL()
	f.log.Debug("Применение фильтров", "url", next)
	if err := f.nav.Assign(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

// ApplyInPage фильтрует уже загруженную страницу без запроса к серверу и
// возвращает число видимых строк.
func (f *FilterController) ApplyInPage(doc *goquery.Document, now time.Time) (int, error) {
	if f.def.Rows == nil {
		return 0, errors.Wrapf(ErrNotSupported, "фильтр на странице: %s", f.def.Name)
	}
	visible := f.def.Rows.Apply(doc, f.ReadFilterState(), now)
	f.log.Debug("Фильтр на странице", "visible", visible, "status", f.StatusLabel())
	return visible, nil
}

// ClearInPage сбрасывает фильтры и показывает все строки.
func (f *FilterController) ClearInPage(doc *goquery.Document) error {
	if f.def.Rows == nil {
		return errors.Wrapf(ErrNotSupported, "фильтр на странице: %s", f.def.Name)
	}
	f.RenderFilterState(filter.State{})
	f.def.Rows.Clear(doc)
	return nil
}

// StatusLabel - подпись текущего состояния.
func (f *FilterController) StatusLabel() string {
	return f.def.StatusLabel(f.State())
}
