package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"fitclub/internal/app/client/config"
	"fitclub/internal/utils/logger"
)

type fakeModal struct {
	mu     sync.Mutex
	shown  bool
	shows  int
	title  string
	inputs []Input
}

func (m *fakeModal) Show(title string, inputs []Input) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = true
	m.shows++
	m.title = title
	m.inputs = inputs
}

func (m *fakeModal) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = false
}

func (m *fakeModal) Shown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shown
}

func (m *fakeModal) Input(name string) (Input, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, in := range m.inputs {
		if in.Field.Name == name {
			return in, true
		}
	}
	return Input{}, false
}

type fakeUI struct {
	mu        sync.Mutex
	answer    bool
	prompts   []string
	successes []string
	errors    []string
	lists     []string
	modals    map[string]*fakeModal
}

func newFakeUI() *fakeUI {
	return &fakeUI{answer: true, modals: make(map[string]*fakeModal)}
}

func (u *fakeUI) Confirm(prompt string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.prompts = append(u.prompts, prompt)
	return u.answer
}

func (u *fakeUI) Success(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.successes = append(u.successes, msg)
}

func (u *fakeUI) Error(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.errors = append(u.errors, msg)
}

func (u *fakeUI) ShowList(location string, _ *goquery.Document) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.lists = append(u.lists, location)
}

func (u *fakeUI) Modal(name, kind string) Modal {
	u.mu.Lock()
	defer u.mu.Unlock()
	m := &fakeModal{}
	u.modals[name+"/"+kind] = m
	return m
}

func (u *fakeUI) modal(name, kind string) *fakeModal {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.modals[name+"/"+kind]
}

func (u *fakeUI) Lists() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.lists...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

const listPage = `<html><body><div class="card"><table>
<thead><tr><th>ID</th><th>ФИО</th></tr></thead>
<tbody><tr><td>7</td><td>Иванов</td></tr></tbody>
</table></div></body></html>`

// newRouter возвращает роутер фейкового сервера клуба, который отдает
// страницы списков.
func newRouter() chi.Router {
	r := chi.NewRouter()
	for _, p := range []string{"/", "/clients", "/trainers", "/zones", "/equipment", "/tariffs", "/subscriptions", "/trainings"} {
		r.Get(p, func(w http.ResponseWriter, _ *http.Request) { writeHTML(w, http.StatusOK, listPage) })
	}
	return r
}

func testConfig(url string) *config.Config {
	return &config.Config{
		Env:            config.EnvLocal,
		ServerURL:      url,
		LogLevel:       "debug",
		RequestTimeout: 5 * time.Second,
	}
}

func newTestApp(t *testing.T, h http.Handler) (*App, *fakeUI) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	ui := newFakeUI()
	app, err := New(testConfig(srv.URL), logger.Discard(), ui)
	require.NoError(t, err)
	return app, ui
}

func controller(t *testing.T, app *App, name string) *Controller {
	t.Helper()
	c, err := app.Controller(name)
	require.NoError(t, err)
	return c
}
