package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitclub/internal/utils/logger"
)

func TestPage_DeleteScenario(t *testing.T) {
	tests := []struct {
		name        string
		body        map[string]any
		wantErr     bool
		wantSuccess []string
		wantErrors  []string
		wantReload  bool
	}{
		{
			name:        "deleted",
			body:        map[string]any{"success": true, "message": "Удалено"},
			wantSuccess: []string{"Удалено"},
			wantReload:  true,
		},
		{
			name:       "linked records",
			body:       map[string]any{"success": false, "error": "есть связанные записи"},
			wantErr:    true,
			wantErrors: []string{"есть связанные записи"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec captured
			r := newRouter()
			r.Delete("/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
				rec.record(r)
				writeJSON(w, http.StatusOK, tt.body)
			})
			app, ui := newTestApp(t, r)
			c := controller(t, app, "clients")
			page, err := app.Page("clients")
			require.NoError(t, err)

			_, err = page.Do(context.Background(), func(ctx context.Context) (*Outcome, error) {
				return c.Delete(ctx, "7", "Иванов", nil)
			})

			require.Len(t, ui.prompts, 1)
			assert.Contains(t, ui.prompts[0], "Иванов")

			got := rec.snapshot()
			assert.Equal(t, http.MethodDelete, got.method)
			assert.Equal(t, "/clients/7", got.path)

			if tt.wantErr {
				require.Error(t, err)
				var reported *ReportedError
				assert.True(t, errors.As(err, &reported))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSuccess, ui.successes)
			assert.Equal(t, tt.wantErrors, ui.errors)
			if tt.wantReload {
				assert.Equal(t, []string{"/clients"}, ui.Lists())
			} else {
				assert.Empty(t, ui.Lists())
			}
		})
	}
}

func TestPage_Cancelled(t *testing.T) {
	app, ui := newTestApp(t, newRouter())
	ui.answer = false
	c := controller(t, app, "trainers")
	page, err := app.Page("trainers")
	require.NoError(t, err)

	out, err := page.Do(context.Background(), func(ctx context.Context) (*Outcome, error) {
		return c.Delete(ctx, "3", "Петров", nil)
	})
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Empty(t, ui.errors)
	assert.Empty(t, ui.successes)
	assert.Empty(t, ui.Lists())
}

func TestPage_SubmitInProgress(t *testing.T) {
	app, ui := newTestApp(t, newRouter())
	page, err := app.Page("zones")
	require.NoError(t, err)

	_, err = page.Do(context.Background(), func(context.Context) (*Outcome, error) {
		return nil, ErrSubmitInProgress
	})
	require.Error(t, err)
	assert.Equal(t, []string{"Запрос уже выполняется, дождитесь ответа"}, ui.errors)
}

func TestPage_ReloadFailureIsReported(t *testing.T) {
	r := newRouter()
	r.Get("/broken", func(w http.ResponseWriter, _ *http.Request) {
		writeHTML(w, http.StatusInternalServerError, "упал")
	})
	app, ui := newTestApp(t, r)
	page := NewPage("/broken", ui, app.Navigator(), app.log)

	out, err := page.Do(context.Background(), func(context.Context) (*Outcome, error) {
		return &Outcome{Message: "Сохранено", Reload: true}, nil
	})
	require.NoError(t, err)
	assert.True(t, out.Reload)
	assert.Equal(t, []string{"Сохранено"}, ui.successes)
	assert.Equal(t, []string{"Не удалось обновить список: упал"}, ui.errors)
}

func TestPage_Open(t *testing.T) {
	app, ui := newTestApp(t, subscriptionsRouter())
	c := controller(t, app, "subscriptions")
	page, err := app.Page("subscriptions")
	require.NoError(t, err)

	err = page.Open(context.Background(), func(ctx context.Context) error {
		return c.OpenEdit(ctx, "99")
	})
	require.Error(t, err)
	assert.Equal(t, []string{"Абонемент не найден"}, ui.errors)
	assert.False(t, ui.modal("subscriptions", "edit").Shown())

	err = page.Open(context.Background(), func(ctx context.Context) error {
		return c.OpenEdit(ctx, "12")
	})
	require.NoError(t, err)
	assert.True(t, ui.modal("subscriptions", "edit").Shown())
}

func TestApp(t *testing.T) {
	app, _ := newTestApp(t, newRouter())

	assert.Len(t, app.Definitions(), 10)
	_, err := app.Controller("nope")
	assert.Error(t, err)
	_, err = app.Filters("zones", nil)
	assert.Error(t, err)
	require.NoError(t, app.CheckConnection(context.Background()))

	doc, err := app.Document(context.Background(), "/clients")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("tbody tr").Length())
}

func TestNew_BadServerURL(t *testing.T) {
	cfg := testConfig("not a url")
	_, err := New(cfg, logger.Discard(), newFakeUI())
	assert.Error(t, err)
}
