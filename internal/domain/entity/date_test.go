package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain date", in: "2024-03-15", want: "2024-03-15"},
		{name: "iso datetime", in: "2024-03-15T00:00:00Z", want: "2024-03-15"},
		{name: "iso with offset", in: "2024-03-15T23:10:00+03:00", want: "2024-03-15"},
		{name: "sql datetime", in: "2024-03-15 10:20:30", want: "2024-03-15"},
		{name: "russian format", in: "15.03.2024", want: "2024-03-15"},
		{name: "russian with time", in: "15.03.2024 18:00", want: "2024-03-15"},
		{name: "rfc1123", in: "Fri, 15 Mar 2024 10:00:00 GMT", want: "2024-03-15"},
		{name: "spaces trimmed", in: "  2024-03-15  ", want: "2024-03-15"},
		{name: "empty", in: "", want: ""},
		{name: "garbage", in: "вчера", want: ""},
		{name: "invalid month", in: "2024-13-01", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.in))
		})
	}
}

func TestNormalizeEquipmentStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Исправен", EquipmentWorking},
		{"Работает", EquipmentWorking},
		{"На ремонте", EquipmentRepair},
		{"Ремонт", EquipmentRepair},
		{"Списано", EquipmentSpentOut},
		{"", EquipmentWorking},
		{"что-то", EquipmentWorking},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEquipmentStatus(tt.in))
		})
	}
}
