package filter

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// RecentWindow - сколько дней клиент считается новым.
const RecentWindow = 30

// Definition - набор фильтров одного списка.
type Definition struct {
	Name     string
	BasePath string
	Controls []Control
	// Rows - режим фильтрации на странице. nil, если список фильтрует только сервер.
	Rows *RowFilter
	// Status - подпись текущего состояния фильтров.
	Status func(State) string
}

// StatusLabel возвращает подпись для состояния или пустую строку.
func (d Definition) StatusLabel(s State) string {
	if d.Status == nil {
		return ""
	}
	return d.Status(s)
}

// Clients - фильтры списка клиентов.
func Clients() Definition {
	return Definition{
		Name:     "clients",
		BasePath: "/clients",
		Controls: []Control{
			{Name: "q", Label: "Поиск", Kind: KindText},
			{Name: "medical", Label: "Только с мед. данными", Kind: KindCheckbox},
			{Name: "recent", Label: "Только новые клиенты", Kind: KindCheckbox},
		},
		Rows: &RowFilter{
			Rows:     "table tbody tr",
			Anchor:   ".card",
			BannerID: "noResultsMessage",
			Banner: `<h5>🤷‍♂️ Клиенты не найдены</h5><p>Попробуйте изменить параметры фильтрации</p>` +
				`<button class="btn btn-sm btn-outline-secondary">Сбросить фильтры</button>`,
			Rules: []Rule{
				{Filter: "medical", Keep: hasMedicalData},
				{Filter: "recent", Keep: registeredRecently},
			},
		},
		Status: clientsStatus,
	}
}

// Trainings - фильтры расписания тренировок.
func Trainings() Definition {
	return Definition{
		Name:     "trainings",
		BasePath: "/trainings",
		Controls: []Control{
			{Name: "q", Label: "Поиск", Kind: KindText},
			{Name: "trainer_id", Label: "Тренер", Kind: KindSelect},
			{Name: "zone_id", Label: "Зона", Kind: KindSelect},
			{Name: "level", Label: "Уровень", Kind: KindSelect},
			{Name: "status", Label: "Статус", Kind: KindSelect},
			{Name: "from", Label: "С даты", Kind: KindDate},
			{Name: "to", Label: "По дату", Kind: KindDate},
			{Name: "upcoming", Label: "Только предстоящие", Kind: KindCheckbox},
			{Name: "recent", Label: "Недавние", Kind: KindCheckbox},
		},
	}
}

// Registry возвращает все наборы фильтров.
func Registry() []Definition {
	return []Definition{Clients(), Trainings()}
}

// Lookup ищет набор фильтров по имени списка.
func Lookup(name string) (Definition, bool) {
	for _, d := range Registry() {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// hasMedicalData отсеивает строки, где в шестой колонке бейдж "Нет".
func hasMedicalData(row *goquery.Selection, _ time.Time) bool {
	badge := row.Find("td").Eq(5).Find(".badge").First()
	return badge.Length() == 0 || strings.TrimSpace(badge.Text()) != "Нет"
}

// registeredRecently оставляет клиентов, зарегистрированных за последние
// RecentWindow дней. Дата в пятой колонке в формате дд.мм.гггг; строка с
// неразбираемой датой не скрывается.
func registeredRecently(row *goquery.Selection, now time.Time) bool {
	registered, err := time.ParseInLocation("2.1.2006", CellText(row, 5), now.Location())
	if err != nil {
		return true
	}
	return !registered.Before(now.AddDate(0, 0, -RecentWindow))
}

func clientsStatus(s State) string {
	switch medical, recent := s.Active("medical"), s.Active("recent"); {
	case medical && recent:
		return "С мед. данными + новые"
	case medical:
		return "Только с мед. данными"
	case recent:
		return "Только новые клиенты"
	}
	return "Все клиенты"
}
