package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRaw(t *testing.T) {
	raw, err := DecodeRaw([]byte(`{"id": 12345678901234567, "fio": "Иванов"}`))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567", firstString(raw, "id"))
	assert.Equal(t, "Иванов", firstString(raw, "fio"))

	_, err = DecodeRaw([]byte(`null`))
	require.Error(t, err)

	_, err = DecodeRaw([]byte(`{not json`))
	require.Error(t, err)
}

func TestNormalize_Clients(t *testing.T) {
	def := Clients()

	tests := []struct {
		name string
		json string
		want Snapshot
	}{
		{
			name: "snake case keys",
			json: `{"fio":"Иванов","phone":"+7900","birth_date":"1990-05-01T00:00:00Z","medical_data":"астма"}`,
			want: Snapshot{"fio": "Иванов", "phone": "+7900", "birth_date": "1990-05-01", "medical_data": "астма"},
		},
		{
			name: "go struct keys with nullable",
			json: `{"FIO":"Петров","Phone":"+7901","BirthDate":"1985-01-02","MedicalData":{"String":"нет","Valid":true}}`,
			want: Snapshot{"fio": "Петров", "phone": "+7901", "birth_date": "1985-01-02", "medical_data": "нет"},
		},
		{
			name: "russian keys",
			json: `{"фио":"Сидоров","номер_телефона":"+7902","дата_рождения":"02.03.1970"}`,
			want: Snapshot{"fio": "Сидоров", "phone": "+7902", "birth_date": "1970-03-02", "medical_data": ""},
		},
		{
			name: "first non-empty key wins",
			json: `{"fio":"","FIO":"Козлов"}`,
			want: Snapshot{"fio": "Козлов", "phone": "", "birth_date": "", "medical_data": ""},
		},
		{
			name: "null and unparsable values",
			json: `{"fio":null,"birth_date":"когда-то"}`,
			want: Snapshot{"fio": "", "phone": "", "birth_date": "", "medical_data": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := DecodeRaw([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, Normalize(def.Fields, raw))
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	raw, err := DecodeRaw([]byte(`{"Name":"Кардио"}`))
	require.NoError(t, err)

	snap := Normalize(Zones().Fields, raw)
	assert.Equal(t, "Кардио", snap["name"])
	assert.Equal(t, "1", snap["capacity"])
	assert.Equal(t, "Доступна", snap["status"])
}

func TestNormalize_Bool(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "true", json: `{"has_group_trainings":true}`, want: "on"},
		{name: "number", json: `{"HasGroupTrainings":1}`, want: "on"},
		{name: "russian string", json: `{"наличие_групповых_тренировок":"true"}`, want: "on"},
		{name: "false", json: `{"has_group_trainings":false}`, want: ""},
		{name: "zero", json: `{"has_group_trainings":0}`, want: ""},
		{name: "missing", json: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := DecodeRaw([]byte(tt.json))
			require.NoError(t, err)
			snap := Normalize(Tariffs().Fields, raw)
			assert.Equal(t, tt.want, snap["has_group"])
		})
	}
}

func TestNormalize_EquipmentStatus(t *testing.T) {
	raw, err := DecodeRaw([]byte(`{"Name":"Беговая дорожка","Status":"ремонт","ZoneID":3,"PurchaseDate":"2023-01-10T00:00:00Z"}`))
	require.NoError(t, err)

	snap := Normalize(Equipment().Fields, raw)
	assert.Equal(t, EquipmentRepair, snap["status"])
	assert.Equal(t, "3", snap["zone_id"])
	assert.Equal(t, "2023-01-10", snap["purchase_date"])
	assert.Equal(t, "", snap["last_service_date"])
}

func TestNormalize_NameAsKey(t *testing.T) {
	raw := Raw{"group_id": "5"}
	snap := Normalize([]Field{Hidden("group_id")}, raw)
	assert.Equal(t, Snapshot{"group_id": "5"}, snap)
}
