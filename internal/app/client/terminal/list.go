package terminal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/PuerkitoBio/goquery"

	"fitclub/internal/app/client"
	"fitclub/internal/domain/filter"
)

const maxCell = 40

// ShowList печатает таблицу со страницы списка. Скрытые строки и колонка
// действий пропускаются, баннер "ничего не найдено" печатается под таблицей.
func (t *Terminal) ShowList(location string, doc *goquery.Document) {
	t.mu.Lock()
	defer t.mu.Unlock()

	headers, rows := scrape(doc)
	if t.json {
		_ = writeJSON(t.out, headers, rows)
		return
	}

	t.title.Fprintf(t.out, "%s\n", location)
	if len(rows) > 0 {
		writeTable(t.out, headers, rows)
		fmt.Fprintf(t.out, "\nВсего строк: %d\n", len(rows))
	}
	if banner := doc.Find(".alert").First(); banner.Length() > 0 {
		fmt.Fprintln(t.out, collapse(banner.Text()))
	} else if len(rows) == 0 {
		fmt.Fprintln(t.out, "Записи не найдены")
	}
}

// ShowTable печатает связанные записи.
func (t *Terminal) ShowTable(title string, tbl *client.Table) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.json {
		_ = writeJSON(t.out, tbl.Headers, tbl.Rows)
		return
	}
	t.title.Fprintf(t.out, "== %s ==\n", title)
	if len(tbl.Rows) == 0 {
		fmt.Fprintln(t.out, tbl.Empty)
		return
	}
	writeTable(t.out, tbl.Headers, tbl.Rows)
}

// ShowRecord печатает запись, полученную с сервера.
func (t *Terminal) ShowRecord(v any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	enc := json.NewEncoder(t.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ShowPreview печатает сведения о выбранном фото.
func (t *Terminal) ShowPreview(p *client.Preview) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "Фото: %s, %d байт\n", p.MIME, p.Size)
}

func scrape(doc *goquery.Document) ([]string, [][]string) {
	var headers []string
	doc.Find("table thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, collapse(th.Text()))
	})
	actions := -1
	if n := len(headers); n > 0 && strings.EqualFold(headers[n-1], "Действия") {
		actions = n - 1
		headers = headers[:n-1]
	}

	var rows [][]string
	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if filter.Hidden(tr) {
			return
		}
		var row []string
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i == actions {
				return
			}
			row = append(row, collapse(td.Text()))
		})
		rows = append(rows, row)
	})
	return headers, rows
}

func writeTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(tw, strings.Join(headers, "\t")+"\t")
		dashes := make([]string, len(headers))
		for i := range dashes {
			dashes[i] = "---"
		}
		fmt.Fprintln(tw, strings.Join(dashes, "\t")+"\t")
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = truncate(c, maxCell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	tw.Flush()
}

func writeJSON(w io.Writer, headers []string, rows [][]string) error {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]string, len(row))
		for i, c := range row {
			key := fmt.Sprintf("col%d", i+1)
			if i < len(headers) && headers[i] != "" {
				key = headers[i]
			}
			m[key] = c
		}
		out = append(out, m)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
