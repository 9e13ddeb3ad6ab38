package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// NetworkType - сеть, к которой относится физический объект
type NetworkType string

const (
	NetworkWater       NetworkType = "water"
	NetworkElectricity NetworkType = "electricity"
	NetworkSewage      NetworkType = "sewage"
	NetworkPhone       NetworkType = "phone"
)

// NetworkTypes - все поддерживаемые сети
var NetworkTypes = []NetworkType{NetworkWater, NetworkElectricity, NetworkSewage, NetworkPhone}

func (n NetworkType) Valid() bool {
	for _, t := range NetworkTypes {
		if t == n {
			return true
		}
	}
	return false
}

// AssetStatus - эксплуатационное состояние узла или линии
type AssetStatus string

const (
	AssetActive      AssetStatus = "active"
	AssetMaintenance AssetStatus = "maintenance"
	AssetBroken      AssetStatus = "broken"
)

func (s AssetStatus) Valid() bool {
	return s == AssetActive || s == AssetMaintenance || s == AssetBroken
}

// Metadata - произвольные атрибуты объекта, содержимое не интерпретируется
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Metadata) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*m = Metadata{}
		return nil
	default:
		return fmt.Errorf("unsupported metadata source type %T", src)
	}
	out := Metadata{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Node - точечный объект сети (насос, задвижка, трансформатор, опора ...)
type Node struct {
	ID          int64       `json:"id" db:"id"`
	NetworkType NetworkType `json:"network_type" db:"network_type"`
	Subtype     string      `json:"subtype" db:"subtype"`
	Point       Position    `json:"coordinates" db:"point"`
	Status      AssetStatus `json:"status" db:"status"`
	Metadata    Metadata    `json:"metadata" db:"metadata"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// Line - линейный объект сети (трубопровод, кабель)
type Line struct {
	ID          int64       `json:"id" db:"id"`
	NetworkType NetworkType `json:"network_type" db:"network_type"`
	Coordinates LineString  `json:"coordinates" db:"coordinates"`
	Status      AssetStatus `json:"status" db:"status"`
	Metadata    Metadata    `json:"metadata" db:"metadata"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// AssetPatch - изменение статуса и/или замена metadata
type AssetPatch struct {
	Status   *AssetStatus
	Metadata *Metadata
}

// NetworkAssets - полный список объектов для редакторов карты
type NetworkAssets struct {
	Nodes []Node `json:"nodes"`
	Lines []Line `json:"lines"`
}
