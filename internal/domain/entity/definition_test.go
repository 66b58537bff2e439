package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Valid(t *testing.T) {
	defs := Registry()
	require.Len(t, defs, 10)

	for _, d := range defs {
		t.Run(d.Name, func(t *testing.T) {
			require.NoError(t, d.Validate())
		})
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("clients")
	require.True(t, ok)
	assert.Equal(t, "/clients/{id}", d.DeletePath)

	_, ok = Lookup("unknown")
	assert.False(t, ok)
}

func TestDefinition_Validate(t *testing.T) {
	base := func() Definition {
		return Definition{
			Name:           "things",
			Title:          "вещь",
			ListPath:       "/things",
			CreatePath:     "/things",
			CreateEncoding: EncodingForm,
			Fields:         []Field{Text("name", "Название")},
		}
	}

	tests := []struct {
		name        string
		mutate      func(d *Definition)
		expectedErr string
	}{
		{
			name:   "valid",
			mutate: func(d *Definition) {},
		},
		{
			name:        "no fields",
			mutate:      func(d *Definition) { d.Fields = nil },
			expectedErr: "Fields",
		},
		{
			name:        "relative path",
			mutate:      func(d *Definition) { d.CreatePath = "things" },
			expectedErr: "CreatePath",
		},
		{
			name:        "read path without snapshot key",
			mutate:      func(d *Definition) { d.ReadPath = "/things/{id}" },
			expectedErr: "SnapshotKey",
		},
		{
			name: "duplicate field",
			mutate: func(d *Definition) {
				d.Fields = append(d.Fields, Text("name", "Еще раз"))
			},
			expectedErr: "объявлено дважды",
		},
		{
			name: "row attribute for unknown field",
			mutate: func(d *Definition) {
				d.Row = &RowSource{Selector: ".edit-btn", IDAttr: "data-id", Attrs: map[string]string{"color": "data-color"}}
			},
			expectedErr: "атрибут строки",
		},
		{
			name: "row without attributes",
			mutate: func(d *Definition) {
				d.Row = &RowSource{Selector: ".edit-btn", IDAttr: "data-id"}
			},
			expectedErr: "Attrs",
		},
		{
			name:        "unknown kind",
			mutate:      func(d *Definition) { d.Fields[0].Kind = "color" },
			expectedErr: "неизвестный тип поля",
		},
		{
			name: "select for unknown field",
			mutate: func(d *Definition) {
				d.Selects = []DependentSelect{zonesSelect}
			},
			expectedErr: "неизвестного поля",
		},
		{
			name: "select for text field",
			mutate: func(d *Definition) {
				d.Fields = append(d.Fields, Text("zone_id", "Зона"))
				d.Selects = []DependentSelect{zonesSelect}
			},
			expectedErr: "не является списком",
		},
		{
			name:        "missing encoding",
			mutate:      func(d *Definition) { d.CreateEncoding = "" },
			expectedErr: "кодировка создания",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base()
			tt.mutate(&d)
			err := d.Validate()
			if tt.expectedErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestDefinition_ConfirmDelete(t *testing.T) {
	assert.Equal(t, `Удалить клиента "Иванов"? Это действие нельзя отменить!`, Clients().ConfirmDelete("Иванов"))
	assert.Equal(t, "Удалить заявку #15 ?", Repairs().ConfirmDelete("15"))
	assert.Equal(t, "Удалить групповую тренировку?", GroupTrainings().ConfirmDelete("Йога"))
	assert.Equal(t, "Удалить «вещь»?", Definition{Title: "вещь"}.ConfirmDelete(""))
}

func TestDefinition_Forms(t *testing.T) {
	rep := Repairs()
	assert.Equal(t, "eq_id", rep.CreateForm()[0].Name)
	assert.Equal(t, "description", rep.Fields[0].Name)
	assert.False(t, rep.CanRead())
	assert.True(t, rep.CanUpdate())

	sub := Subscriptions()
	sels := sub.SelectsFor(sub.Fields)
	require.Len(t, sels, 2)
	assert.Equal(t, "client_id", sels[0].Field)

	assert.Empty(t, Clients().SelectsFor(Clients().Fields))
	assert.False(t, GroupEnrollments().CanDelete())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "есть связанные записи", Message("есть связанные записи", "Не удалось удалить"))
	assert.Equal(t, "Не удалось удалить", Message("  ", "Не удалось удалить"))
}

func TestDefinition_Texts(t *testing.T) {
	texts := Trainers().Texts()
	assert.Equal(t, "Не удалось удалить (возможно есть связанные тренировки)", texts.DeleteFailed)
	assert.Equal(t, "Обновлено", texts.Updated)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/api/zones/4", Path("/api/zones/{id}", "4"))
	assert.Equal(t, "/zones/4/upload-photo", Path(Zones().Photo.UploadPath, "4"))
}

func TestDefinition_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		raw  Raw
		want string
	}{
		{name: "client fio", def: Clients(), raw: Raw{"FIO": "Иванов"}, want: "Иванов"},
		{name: "zone name", def: Zones(), raw: Raw{"Name": "Кардио"}, want: "Кардио"},
		{name: "training title", def: GroupTrainings(), raw: Raw{"title": "Йога"}, want: "Йога"},
		{name: "empty name", def: Clients(), raw: Raw{"fio": ""}, want: ""},
		{name: "no name field", def: Subscriptions(), raw: Raw{"id": 12}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.def.DisplayName(tt.raw))
		})
	}

	assert.True(t, Trainers().Named())
	assert.False(t, Repairs().Named())
}
