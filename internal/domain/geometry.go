package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Position - координата в порядке [lon, lat], как в GeoJSON
type Position [2]float64

// UnmarshalJSON принимает ровно два числа. Обычное декодирование в [2]float64
// дополняет короткий массив нулями и отбрасывает лишние элементы.
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("position must have exactly 2 elements [lon, lat], got %d", len(raw))
	}
	p[0], p[1] = raw[0], raw[1]
	return nil
}

func (p Position) Lon() float64 { return p[0] }
func (p Position) Lat() float64 { return p[1] }

// LineString - упорядоченная ломаная
type LineString []Position

// Polygon - кольца полигона, первое кольцо внешнее
type Polygon [][]Position

// Координаты хранятся в json колонках как есть, без перепроецирования и округления.

func (p Position) Value() (driver.Value, error) { return marshalGeometry(p) }
func (p *Position) Scan(src interface{}) error  { return scanGeometry(src, p) }

func (l LineString) Value() (driver.Value, error) { return marshalGeometry(l) }
func (l *LineString) Scan(src interface{}) error  { return scanGeometry(src, l) }

func (p Polygon) Value() (driver.Value, error) { return marshalGeometry(p) }
func (p *Polygon) Scan(src interface{}) error  { return scanGeometry(src, p) }

// OuterRing возвращает внешнее кольцо без замыкающей вершины
func (p Polygon) OuterRing() []Position {
	if len(p) == 0 {
		return nil
	}
	ring := p[0]
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// ApproxCenter - невзвешенное среднее вершин внешнего кольца.
// Это не центр масс площади: для невыпуклых полигонов смещение ожидаемо,
// для размещения иконки на карте этого достаточно.
func (p Polygon) ApproxCenter() (Position, bool) {
	ring := p.OuterRing()
	if len(ring) == 0 {
		return Position{}, false
	}
	var sumLon, sumLat float64
	for _, v := range ring {
		sumLon += v[0]
		sumLat += v[1]
	}
	n := float64(len(ring))
	return Position{sumLon / n, sumLat / n}, true
}

// ValidatePosition проверяет диапазоны lon/lat
func ValidatePosition(p Position) error {
	if p[0] < -180 || p[0] > 180 || p[1] < -90 || p[1] > 90 || p[0] != p[0] || p[1] != p[1] {
		return fmt.Errorf("position %v out of range", p)
	}
	return nil
}

// ValidateLineString - минимум две вершины с валидными координатами
func ValidateLineString(l LineString) error {
	if len(l) < 2 {
		return fmt.Errorf("line needs at least 2 vertices, got %d", len(l))
	}
	for _, p := range l {
		if err := ValidatePosition(p); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePolygon - внешнее кольцо с минимум тремя различными вершинами
func ValidatePolygon(p Polygon) error {
	ring := p.OuterRing()
	if len(ring) < 3 {
		return fmt.Errorf("polygon outer ring needs at least 3 vertices, got %d", len(ring))
	}
	for _, r := range p {
		for _, v := range r {
			if err := ValidatePosition(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func marshalGeometry(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanGeometry(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported geometry source type %T", src)
	}
}
