package domain

import "time"

// ZoneKindNeighborhood - единственный вид зоны, используемый для heatmap
const ZoneKindNeighborhood = "neighborhood_zone"

// Zone - полигон района. Name совпадает с ServiceLog.Neighborhood посимвольно.
type Zone struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Kind      string    `json:"kind" db:"kind"`
	Polygon   Polygon   `json:"polygon" db:"polygon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
