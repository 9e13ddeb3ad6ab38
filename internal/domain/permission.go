package domain

// NetworkSet - множество сетей, доступных для редактирования
type NetworkSet map[NetworkType]struct{}

func NewNetworkSet(types ...NetworkType) NetworkSet {
	s := make(NetworkSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

func (s NetworkSet) Has(t NetworkType) bool {
	_, ok := s[t]
	return ok
}

// NetworkPolicy определяет, какие сети может менять пользователь.
// Админ получает все сети, остальные - по слагу своего департамента.
type NetworkPolicy struct {
	AdminRole    string
	ByDepartment map[string][]NetworkType
	// ZoneEditors - департаменты, которым разрешено редактировать зоны
	ZoneEditors []string
}

// DefaultNetworkPolicy - таблица по умолчанию
func DefaultNetworkPolicy() *NetworkPolicy {
	return &NetworkPolicy{
		AdminRole: RoleAdmin,
		ByDepartment: map[string][]NetworkType{
			DeptWater:        {NetworkWater},
			DeptElectricity:  {NetworkElectricity},
			DeptMunicipality: {NetworkSewage},
			DeptTelecom:      {NetworkPhone},
		},
		ZoneEditors: []string{DeptMunicipality},
	}
}

// IsAdmin - роль с доступом ко всем сетям и зонам
func (p *NetworkPolicy) IsAdmin(role string) bool {
	return role != "" && role == p.AdminRole
}

// Allowed возвращает множество сетей для роли и слага департамента.
// Неизвестный департамент дает пустое множество.
func (p *NetworkPolicy) Allowed(role, departmentSlug string) NetworkSet {
	if p.IsAdmin(role) {
		return NewNetworkSet(NetworkTypes...)
	}
	return NewNetworkSet(p.ByDepartment[departmentSlug]...)
}

// CanEditZones - админ или департамент из ZoneEditors
func (p *NetworkPolicy) CanEditZones(role, departmentSlug string) bool {
	if p.IsAdmin(role) {
		return true
	}
	for _, d := range p.ZoneEditors {
		if departmentSlug != "" && d == departmentSlug {
			return true
		}
	}
	return false
}
