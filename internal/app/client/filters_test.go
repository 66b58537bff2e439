package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitclub/internal/domain/filter"
)

func TestFilterController_ApplyFilters(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []string
	)
	r := chi.NewRouter()
	r.Get("/trainings", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()
		writeHTML(w, http.StatusOK, listPage)
	})
	app, ui := newTestApp(t, r)

	inputs := filter.MapInputs{"q": " йога ", "zone_id": "3", "from": "01.03.2025", "upcoming": "on", "status": ""}
	f, err := app.Filters("trainings", inputs)
	require.NoError(t, err)

	first, err := f.ApplyFilters(context.Background())
	require.NoError(t, err)
	second, err := f.ApplyFilters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "/trainings?from=2025-03-01&q=%D0%B9%D0%BE%D0%B3%D0%B0&upcoming=1&zone_id=3", first)
	assert.Equal(t, []string{first, second}, ui.Lists())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, queries, 2)
	q, err := url.ParseQuery(queries[0])
	require.NoError(t, err)
	assert.Equal(t, "йога", q.Get("q"))
	assert.NotContains(t, q, "status")
}

func TestFilterController_LoadFromQuery(t *testing.T) {
	app, _ := newTestApp(t, newRouter())
	inputs := filter.MapInputs{"medical": "1", "q": "старое"}
	f, err := app.Filters("clients", inputs)
	require.NoError(t, err)

	s := f.Load(url.Values{"recent": {"1"}})
	assert.Equal(t, filter.State{"q": "", "medical": "", "recent": "1"}, s)
	assert.Equal(t, "", inputs["medical"])
	assert.Equal(t, "1", inputs["recent"])
	assert.Equal(t, "", inputs["q"])
	assert.Equal(t, "Только новые клиенты", f.StatusLabel())
	assert.Equal(t, "/clients?recent=1", f.URL())
}

const clientsListPage = `<html><body>
<div class="card"><table><thead><tr><th>ID</th><th>ФИО</th><th>Телефон</th><th>Дата рождения</th><th>Регистрация</th><th>Мед. данные</th></tr></thead>
<tbody>
<tr><td>1</td><td>Иванов</td><td>+7</td><td>01.01.1990</td><td>01.01.2020</td><td><span class="badge">Да</span></td></tr>
</tbody></table></div>
</body></html>`

func TestFilterController_InPage(t *testing.T) {
	app, _ := newTestApp(t, newRouter())
	inputs := filter.MapInputs{}
	f, err := app.Filters("clients", inputs)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clientsListPage))
	require.NoError(t, err)
	now := time.Date(2025, 11, 4, 10, 0, 0, 0, time.Local)

	inputs["recent"] = "on"
	visible, err := f.ApplyInPage(doc, now)
	require.NoError(t, err)
	assert.Equal(t, 0, visible)
	assert.True(t, filter.Hidden(doc.Find("tbody tr").First()))
	assert.Equal(t, 1, doc.Find("#noResultsMessage").Length())
	assert.Equal(t, "Только новые клиенты", f.StatusLabel())

	require.NoError(t, f.ClearInPage(doc))
	assert.False(t, filter.Hidden(doc.Find("tbody tr").First()))
	assert.Equal(t, 0, doc.Find("#noResultsMessage").Length())
	assert.Equal(t, "", inputs["recent"])
	assert.Equal(t, "Все клиенты", f.StatusLabel())

	tr, err := app.Filters("trainings", filter.MapInputs{})
	require.NoError(t, err)
	_, err = tr.ApplyInPage(doc, now)
	assert.ErrorIs(t, err, ErrNotSupported)
}
