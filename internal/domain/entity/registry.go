package entity

import (
	"fmt"
	"sort"
)

var (
	zonesSelect = DependentSelect{
		Field:       "zone_id",
		Path:        "/api/zones-for-select",
		ListKey:     "zones",
		Placeholder: "Выберите зону...",
		Empty:       "Зон пока нет",
	}
	trainersSelect = DependentSelect{
		Field:       "trainer_id",
		Path:        "/api/trainers-for-select",
		ListKey:     "trainers",
		Placeholder: "Выберите...",
	}
	subscriptionsSelect = DependentSelect{
		Field:       "subscription_id",
		Path:        "/api/subscriptions-for-select",
		ListKey:     "subscriptions",
		Placeholder: "Выберите...",
	}
	clientsSelect = DependentSelect{
		Field:       "client_id",
		Path:        "/api/clients-for-select",
		ListKey:     "clients",
		Placeholder: "Выберите клиента...",
	}
	tariffsSelect = DependentSelect{
		Field:       "tariff_id",
		Path:        "/api/tariffs-for-select",
		ListKey:     "tariffs",
		Placeholder: "Выберите тариф...",
		Label:       TariffLabel,
	}
)

// Clients - клиенты клуба.
func Clients() Definition {
	return Definition{
		Name:           "clients",
		Title:          "клиент",
		ListPath:       "/clients",
		CreatePath:     "/clients",
		CreateEncoding: EncodingMultipart,
		ReadPath:       "/clients/{id}",
		SnapshotKey:    "client",
		UpdatePath:     "/clients/{id}",
		UpdateEncoding: EncodingForm,
		DeletePath:     "/clients/{id}",
		DeleteConfirm:  `Удалить клиента "%s"? Это действие нельзя отменить!`,
		Fields: []Field{
			Text("fio", "ФИО", "fio", "FIO", "фио"),
			Text("phone", "Телефон", "phone", "Phone", "номер_телефона"),
			Date("birth_date", "Дата рождения", "birth_date", "BirthDate", "дата_рождения"),
			Text("medical_data", "Медицинские данные",
				"medical_data", "MedicalData.String", "MedicalData", "медицинские_данные.String", "медицинские_данные"),
		},
		Messages: Messages{
			LoadFailed: "Не удалось загрузить клиента",
		},
	}
}

// Trainers - тренеры.
func Trainers() Definition {
	return Definition{
		Name:           "trainers",
		Title:          "тренер",
		ListPath:       "/trainers",
		CreatePath:     "/trainers",
		CreateEncoding: EncodingMultipart,
		ReadPath:       "/trainers/{id}",
		SnapshotKey:    "trainer",
		UpdatePath:     "/trainers/{id}",
		UpdateEncoding: EncodingForm,
		DeletePath:     "/trainers/{id}",
		DeleteConfirm:  "Удалить «%s»?",
		Fields: []Field{
			Text("fio", "ФИО", "fio", "FIO", "фио"),
			Text("phone", "Телефон", "phone", "Phone", "номер_телефона"),
			Text("specialization", "Специализация", "specialization", "Specialization", "специализация"),
			Date("hire_date", "Дата найма", "hire_date", "HireDate", "дата_найма"),
			Number("experience", "Стаж, лет", "experience", "Experience", "стаж_работы").WithDefault("0"),
		},
		Messages: Messages{
			Created:      "Добавлен",
			CreateFailed: "Не удалось сохранить",
			LoadFailed:   "Не удалось получить тренера",
			DeleteFailed: "Не удалось удалить (возможно есть связанные тренировки)",
		},
	}
}

// Zones - зоны клуба.
func Zones() Definition {
	return Definition{
		Name:           "zones",
		Title:          "зона",
		ListPath:       "/zones",
		CreatePath:     "/zones",
		CreateEncoding: EncodingMultipart,
		ReadPath:       "/api/zones/{id}",
		SnapshotKey:    "zone",
		UpdatePath:     "/zones/{id}",
		UpdateEncoding: EncodingForm,
		DeletePath:     "/zones/{id}",
		DeleteConfirm:  "Удалить зону «%s»?",
		Fields: []Field{
			Text("name", "Название", "Name", "name", "название"),
			Text("description", "Описание", "Description", "description", "описание"),
			Number("capacity", "Вместимость", "Capacity", "capacity", "вместимость").WithDefault("1"),
			Text("status", "Статус", "Status", "status", "статус").WithDefault("Доступна"),
		},
		Photo: &Photo{
			Field:         "photo",
			UploadPath:    "/zones/{id}/upload-photo",
			DeletePath:    "/zones/{id}/photo",
			ViewPath:      "/zones/{id}/photo",
			DeleteConfirm: "Удалить фотографию зоны?",
		},
		Messages: Messages{
			Updated:      "Изменения сохранены",
			LoadFailed:   "Не удалось получить зону",
			UpdateFailed: "Не удалось сохранить",
		},
	}
}

// Equipment - оборудование зон.
func Equipment() Definition {
	return Definition{
		Name:           "equipment",
		Title:          "оборудование",
		ListPath:       "/equipment",
		CreatePath:     "/equipment",
		CreateEncoding: EncodingMultipart,
		ReadPath:       "/api/equipment/{id}",
		SnapshotKey:    "item",
		UpdatePath:     "/equipment/{id}",
		UpdateEncoding: EncodingForm,
		DeletePath:     "/equipment/{id}",
		DeleteConfirm:  "Удалить оборудование «%s»?",
		Fields: []Field{
			Text("name", "Название", "Name", "name", "название"),
			Date("purchase_date", "Дата покупки", "PurchaseDate", "purchase_date", "дата_покупки"),
			Date("last_service_date", "Последнее ТО", "LastServiceDate", "last_service_date", "дата_последнего_то"),
			Text("status", "Статус", "Status", "status", "статус").WithNormalize(NormalizeEquipmentStatus),
			Select("zone_id", "Зона", "ZoneID", "zone_id", "id_зоны"),
		},
		Selects: []DependentSelect{zonesSelect},
		Photo: &Photo{
			Field:         "photo",
			UploadPath:    "/equipment/{id}/upload-photo",
			DeletePath:    "/equipment/{id}/photo",
			ViewPath:      "/equipment/{id}/photo",
			DeleteConfirm: "Удалить фотографию?",
		},
		Messages: Messages{
			LoadFailed:   "Не удалось получить данные",
			UpdateFailed: "Не удалось сохранить",
		},
	}
}

// Repairs - заявки на ремонт оборудования. Отдельного эндпоинта чтения нет:
// форма редактирования заполняется данными строки списка.
func Repairs() Definition {
	return Definition{
		Name:           "repairs",
		Title:          "заявка",
		ListPath:       "/equipment",
		CreatePath:     "/repairs",
		CreateEncoding: EncodingMultipart,
		UpdatePath:     "/repairs/{id}",
		UpdateEncoding: EncodingMultipart,
		DeletePath:     "/repairs/{id}",
		DeleteConfirm:  "Удалить заявку #%s ?",
		CreateFields: []Field{
			Hidden("eq_id", "eq_id", "EquipmentID"),
			Text("description", "Описание проблемы", "description"),
			Text("priority", "Приоритет", "priority").WithDefault("Средний"),
		},
		Fields: []Field{
			Text("description", "Описание проблемы", "description", "desc", "описание_проблемы"),
			Text("status", "Статус", "status", "статус").WithDefault("В работе"),
			Text("priority", "Приоритет", "priority", "приоритет").WithDefault("Средний"),
		},
		Row: &RowSource{
			Selector: ".edit-repair-btn",
			IDAttr:   "data-repair-id",
			Attrs: map[string]string{
				"description": "data-repair-desc",
				"status":      "data-repair-status",
				"priority":    "data-repair-priority",
			},
		},
		Photo: &Photo{
			Field:      "photo",
			UploadPath: "/repairs/{id}/upload-photo",
			ViewPath:   "/repairs/{id}/photo",
		},
		Messages: Messages{
			CreateFailed: "Не удалось создать заявку",
			UpdateFailed: "Не удалось обновить заявку",
			DeleteFailed: "Не удалось удалить заявку",
		},
	}
}

// Tariffs - тарифы абонементов.
func Tariffs() Definition {
	return Definition{
		Name:           "tariffs",
		Title:          "тариф",
		ListPath:       "/tariffs",
		CreatePath:     "/tariffs",
		CreateEncoding: EncodingForm,
		ReadPath:       "/api/tariffs/{id}",
		SnapshotKey:    "tariff",
		UpdatePath:     "/tariffs/{id}",
		UpdateEncoding: EncodingForm,
		DeletePath:     "/tariffs/{id}",
		DeleteConfirm:  "Удалить тариф «%s»?",
		Fields: []Field{
			Text("name", "Название", "name", "Name", "название_тарифа"),
			Text("description", "Описание", "description", "Description", "описание"),
			Number("price", "Стоимость", "price", "Price", "стоимость"),
			Text("access_time", "Время доступа", "access_time", "AccessTime", "время_доступа"),
			Bool("has_group", "Групповые тренировки",
				"has_group_trainings", "HasGroupTrainings", "наличие_групповых_тренировок"),
			Bool("has_personal", "Персональные тренировки",
				"has_personal_trainings", "HasPersonalTrainings", "наличие_персональных_тренировок"),
		},
		Messages: Messages{
			Created:      "Тариф создан",
			Updated:      "Сохранено",
			LoadFailed:   "Не удалось получить тариф",
			UpdateFailed: "Ошибка обновления",
			DeleteFailed: "Ошибка удаления",
		},
	}
}

// Subscriptions - абонементы клиентов.
func Subscriptions() Definition {
	return Definition{
		Name:           "subscriptions",
		Title:          "абонемент",
		ListPath:       "/subscriptions",
		CreatePath:     "/subscriptions",
		CreateEncoding: EncodingMultipart,
		ReadPath:       "/subscriptions/{id}",
		SnapshotKey:    "subscription",
		UpdatePath:     "/subscriptions/{id}",
		UpdateEncoding: EncodingForm,
		DeletePath:     "/subscriptions/{id}",
		DeleteConfirm:  "Удалить абонемент #%s?",
		Fields: []Field{
			Select("client_id", "Клиент", "client_id", "ClientID", "id_клиента"),
			Select("tariff_id", "Тариф", "tariff_id", "TariffID", "id_тарифа"),
			Date("start_date", "Дата начала", "start_date", "StartDate", "дата_начала"),
			Date("end_date", "Дата окончания", "end_date", "EndDate", "дата_окончания"),
			Text("status", "Статус", "status", "Status", "статус"),
			Number("price", "Цена", "price", "Price", "цена"),
		},
		Selects: []DependentSelect{clientsSelect, tariffsSelect},
		Messages: Messages{
			LoadFailed: "Не удалось получить абонемент",
		},
	}
}

// GroupTrainings - групповые тренировки.
func GroupTrainings() Definition {
	return Definition{
		Name:           "group-trainings",
		Title:          "групповая тренировка",
		ListPath:       "/trainings",
		CreatePath:     "/group-trainings",
		CreateEncoding: EncodingMultipart,
		ReadPath:       "/api/group-trainings/{id}",
		SnapshotKey:    "item",
		UpdatePath:     "/group-trainings/{id}",
		UpdateEncoding: EncodingForm,
		DeletePath:     "/group-trainings/{id}",
		DeleteConfirm:  "Удалить групповую тренировку?",
		Fields: []Field{
			Text("title", "Название", "Title", "title"),
			Text("description", "Описание", "Description", "description"),
			Number("max", "Максимум участников", "Max", "max").WithDefault("1"),
			Text("level", "Уровень", "Level", "level"),
			Date("date", "Дата", "Date", "date"),
			Text("start_time", "Начало", "StartTime", "start_time"),
			Text("end_time", "Окончание", "EndTime", "end_time"),
			Select("trainer_id", "Тренер", "TrainerID", "trainer_id"),
			Select("zone_id", "Зона", "ZoneID", "zone_id"),
		},
		Selects: []DependentSelect{trainersSelect, zonesSelect},
		Related: &Related{
			Path:    "/api/group-trainings/{id}/enrollments",
			ListKey: "enrollments",
			Empty:   "Пока никто не записан.",
			Columns: []Column{
				{Header: "#", Value: func(i int, _ Raw) string { return fmt.Sprint(i + 1) }},
				{Header: "Клиент", Value: func(_ int, r Raw) string {
					return fmt.Sprintf("%s (#%s)", firstString(r, "client_fio"), firstString(r, "client_id"))
				}},
				{Header: "Абонемент", Value: func(_ int, r Raw) string { return "#" + firstString(r, "subscription_id") }},
				{Header: "Статус", Value: func(_ int, r Raw) string { return firstString(r, "status") }},
				{Header: "Запись", Value: func(_ int, r Raw) string { return "id: " + firstString(r, "id") }},
			},
		},
		Messages: Messages{
			CreateFailed: "Ошибка",
			LoadFailed:   "Не найдено",
			UpdateFailed: "Ошибка",
			DeleteFailed: "Ошибка",
		},
	}
}

// PersonalTrainings - персональные тренировки.
func PersonalTrainings() Definition {
	return Definition{
		Name:           "personal-trainings",
		Title:          "персональная тренировка",
		ListPath:       "/trainings",
		CreatePath:     "/personal-trainings",
		CreateEncoding: EncodingMultipart,
		ReadPath:       "/api/personal-trainings/{id}",
		SnapshotKey:    "item",
		UpdatePath:     "/personal-trainings/{id}",
		UpdateEncoding: EncodingForm,
		DeletePath:     "/personal-trainings/{id}",
		DeleteConfirm:  "Удалить персональную тренировку?",
		Fields: []Field{
			Select("subscription_id", "Абонемент", "SubscriptionID", "subscription_id"),
			Select("trainer_id", "Тренер", "TrainerID", "trainer_id"),
			Date("date", "Дата", "Date", "date"),
			Text("start_time", "Начало", "StartTime", "start_time"),
			Text("end_time", "Окончание", "EndTime", "end_time"),
			Text("status", "Статус", "Status", "status"),
			Number("price", "Стоимость", "Price", "price"),
		},
		Selects: []DependentSelect{subscriptionsSelect, trainersSelect},
		Messages: Messages{
			CreateFailed: "Ошибка",
			LoadFailed:   "Не найдено",
			UpdateFailed: "Ошибка",
			DeleteFailed: "Ошибка",
		},
	}
}

// GroupEnrollments - запись абонемента на групповую тренировку. Только создание.
func GroupEnrollments() Definition {
	return Definition{
		Name:           "group-enrollments",
		Title:          "запись",
		ListPath:       "/trainings",
		CreatePath:     "/group-enrollments",
		CreateEncoding: EncodingMultipart,
		Fields: []Field{
			Hidden("group_id"),
			Select("subscription_id", "Абонемент"),
			Text("status", "Статус"),
		},
		Selects: []DependentSelect{subscriptionsSelect},
		Messages: Messages{
			CreateFailed: "Ошибка",
		},
	}
}

// Registry возвращает определения всех экранов панели, отсортированные по имени.
func Registry() []Definition {
	defs := []Definition{
		Clients(),
		Trainers(),
		Zones(),
		Equipment(),
		Repairs(),
		Tariffs(),
		Subscriptions(),
		GroupTrainings(),
		PersonalTrainings(),
		GroupEnrollments(),
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Lookup ищет определение по имени.
func Lookup(name string) (Definition, bool) {
	for _, d := range Registry() {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
