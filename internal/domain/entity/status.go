package entity

import "strings"

const (
	EquipmentWorking  = "Исправен"
	EquipmentRepair   = "На ремонте"
	EquipmentSpentOut = "Списан"
)

// NormalizeEquipmentStatus сводит разные написания статуса оборудования к
// одному из трех значений выпадающего списка.
func NormalizeEquipmentStatus(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "Исправен" || s == "Работает" || s == "Исправно":
		return EquipmentWorking
	case s == "На ремонте" || strings.ToLower(s) == "ремонт":
		return EquipmentRepair
	case s == "Списан" || s == "Списано":
		return EquipmentSpentOut
	}
	return EquipmentWorking
}
