package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/infra-status-service/internal/domain"
)

// policyFile - формат YAML файла с таблицей прав:
//
//	admin_role: admin
//	departments:
//	  water: [water]
//	  telecom: [phone]
//	zone_editors: [municipality]
type policyFile struct {
	AdminRole   string              `yaml:"admin_role"`
	Departments map[string][]string `yaml:"departments"`
	ZoneEditors []string            `yaml:"zone_editors"`
}

// LoadNetworkPolicy читает таблицу прав; пустой путь - таблица по умолчанию
func LoadNetworkPolicy(path string) (*domain.NetworkPolicy, error) {
	if path == "" {
		return domain.DefaultNetworkPolicy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return ParseNetworkPolicy(data)
}

func ParseNetworkPolicy(data []byte) (*domain.NetworkPolicy, error) {
	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}

	policy := domain.DefaultNetworkPolicy()
	if f.AdminRole != "" {
		policy.AdminRole = f.AdminRole
	}
	if f.Departments != nil {
		policy.ByDepartment = make(map[string][]domain.NetworkType, len(f.Departments))
		for slug, networks := range f.Departments {
			for _, n := range networks {
				nt := domain.NetworkType(n)
				if !nt.Valid() {
					return nil, fmt.Errorf("department %q: unknown network type %q", slug, n)
				}
				policy.ByDepartment[slug] = append(policy.ByDepartment[slug], nt)
			}
		}
	}
	if f.ZoneEditors != nil {
		policy.ZoneEditors = f.ZoneEditors
	}
	return policy, nil
}
