package filter

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Rule - предикат строки таблицы для одного флажка фильтра.
type Rule struct {
	Filter string
	Keep   func(row *goquery.Selection, now time.Time) bool
}

// RowFilter скрывает и показывает уже отрисованные строки списка без
// запроса к серверу.
type RowFilter struct {
	// Rows - селектор строк таблицы.
	Rows string
	// Anchor - элемент, после которого вставляется сообщение "ничего не найдено".
	Anchor   string
	BannerID string
	Banner   string
	Rules    []Rule
}

// Apply применяет активные правила к строкам документа и возвращает
// число видимых строк. Если не осталось ни одной, после Anchor
// вставляется сообщение с кнопкой сброса.
func (f RowFilter) Apply(doc *goquery.Document, s State, now time.Time) int {
	visible := 0
	doc.Find(f.Rows).Each(func(_ int, row *goquery.Selection) {
		show := true
		for _, r := range f.Rules {
			if s.Active(r.Filter) && !r.Keep(row, now) {
				show = false
				break
			}
		}
		setHidden(row, !show)
		if show {
			visible++
		}
	})
	f.banner(doc, visible == 0)
	return visible
}

// Clear показывает все строки и убирает сообщение.
func (f RowFilter) Clear(doc *goquery.Document) {
	doc.Find(f.Rows).Each(func(_ int, row *goquery.Selection) {
		setHidden(row, false)
	})
	f.banner(doc, false)
}

// Visible возвращает строки, не скрытые фильтром.
func (f RowFilter) Visible(doc *goquery.Document) *goquery.Selection {
	return doc.Find(f.Rows).FilterFunction(func(_ int, row *goquery.Selection) bool {
		return !Hidden(row)
	})
}

// HasBanner сообщает, показано ли сообщение "ничего не найдено".
func (f RowFilter) HasBanner(doc *goquery.Document) bool {
	return doc.Find("#"+f.BannerID).Length() > 0
}

func (f RowFilter) banner(doc *goquery.Document, show bool) {
	msg := doc.Find("#" + f.BannerID)
	switch {
	case show && msg.Length() == 0:
		html := `<div id="` + f.BannerID + `" class="alert alert-warning mt-3">` + f.Banner + `</div>`
		if anchor := doc.Find(f.Anchor).First(); anchor.Length() > 0 {
			anchor.AfterHtml(html)
		} else {
			doc.Find("body").AppendHtml(html)
		}
	case !show && msg.Length() > 0:
		msg.Remove()
	}
}

// Hidden сообщает, скрыта ли строка через style="display: none".
func Hidden(row *goquery.Selection) bool {
	for _, decl := range strings.Split(row.AttrOr("style", ""), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == "display" && strings.TrimSpace(v) == "none" {
			return true
		}
	}
	return false
}

func setHidden(row *goquery.Selection, hidden bool) {
	var decls []string
	for _, decl := range strings.Split(row.AttrOr("style", ""), ";") {
		k, _, _ := strings.Cut(decl, ":")
		if strings.TrimSpace(decl) == "" || strings.TrimSpace(k) == "display" {
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if hidden {
		decls = append(decls, "display: none")
	}
	if len(decls) == 0 {
		row.RemoveAttr("style")
		return
	}
	row.SetAttr("style", strings.Join(decls, "; "))
}

// CellText возвращает текст n-й ячейки строки (с единицы).
func CellText(row *goquery.Selection, n int) string {
	return strings.TrimSpace(row.Find("td").Eq(n - 1).Text())
}
