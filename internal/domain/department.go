package domain

import "github.com/google/uuid"

// Слаги департаментов из справочника
const (
	DeptWater        = "water"
	DeptElectricity  = "electricity"
	DeptMunicipality = "municipality"
	DeptTelecom      = "telecom"
)

type Department struct {
	ID   int64  `json:"id" db:"id"`
	Slug string `json:"slug" db:"slug"`
	Name string `json:"name" db:"name"`
}

// DepartmentSlugForService - фиксированная таблица автоназначения департамента
func DepartmentSlugForService(t ServiceType) string {
	switch t {
	case ServiceElectricity:
		return DeptElectricity
	case ServiceWater:
		return DeptWater
	default:
		return DeptMunicipality
	}
}

// RoleAdmin - глобальная роль с правом редактировать все сети
const RoleAdmin = "admin"

// Actor - аутентифицированный пользователь, полученный из bearer токена
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
