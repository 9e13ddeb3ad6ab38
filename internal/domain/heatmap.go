package domain

import (
	"math"
	"time"
)

// HeatmapStatus - цветовая категория района
type HeatmapStatus string

const (
	HeatmapAvailable HeatmapStatus = "available"
	HeatmapUnstable  HeatmapStatus = "unstable"
	HeatmapCutoff    HeatmapStatus = "cutoff"
)

// Границы категорий включительные: 60 -> available, 40 -> cutoff
const (
	AvailableScoreFloor = 60.0
	CutoffScoreCeiling  = 40.0
)

// Score - 100 * available / total
func Score(available, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(available) / float64(total)
}

func ClassifyScore(score float64) HeatmapStatus {
	switch {
	case score >= AvailableScoreFloor:
		return HeatmapAvailable
	case score <= CutoffScoreCeiling:
		return HeatmapCutoff
	default:
		return HeatmapUnstable
	}
}

type HeatmapProperties struct {
	Neighborhood   string        `json:"neighborhood"`
	TotalReports   int           `json:"total_reports"`
	AvailableCount int           `json:"available_count"`
	Score          float64       `json:"score"`
	Status         HeatmapStatus `json:"status"`
	ServiceType    ServiceType   `json:"service_type"`
	Center         Position      `json:"center"`
}

type HeatmapGeometry struct {
	Type        string  `json:"type"`
	Coordinates Polygon `json:"coordinates"`
}

type HeatmapFeature struct {
	Type       string            `json:"type"`
	ID         int64             `json:"id"`
	Geometry   HeatmapGeometry   `json:"geometry"`
	Properties HeatmapProperties `json:"properties"`
}

// Heatmap - FeatureCollection районов. Unmatched перечисляет районы без зоны,
// они не попадают в Features. Unmatched нужен только для логов и не сериализуется.
type Heatmap struct {
	Type        string           `json:"type"`
	ServiceType ServiceType      `json:"service_type"`
	Date        string           `json:"date"`
	Features    []HeatmapFeature `json:"features"`
	Unmatched   []string         `json:"-"`
}

// BuildHeatmap соединяет агрегаты по районам с зонами по точному совпадению имени
func BuildHeatmap(serviceType ServiceType, date time.Time, tallies []NeighborhoodTally, zones map[string]Zone) *Heatmap {
	hm := &Heatmap{
		Type:        GeoJSONFeatureCollection,
		ServiceType: serviceType,
		Date:        date.Format(DateLayout),
		Features:    make([]HeatmapFeature, 0, len(tallies)),
	}

	for _, t := range tallies {
		if t.Total == 0 {
			continue
		}
		zone, ok := zones[t.Neighborhood]
		if !ok {
			hm.Unmatched = append(hm.Unmatched, t.Neighborhood)
			continue
		}
		center, ok := zone.Polygon.ApproxCenter()
		if !ok {
			hm.Unmatched = append(hm.Unmatched, t.Neighborhood)
			continue
		}

		score := Score(t.AvailableCount, t.Total)
		hm.Features = append(hm.Features, HeatmapFeature{
			Type: GeoJSONFeature,
			ID:   zone.ID,
			Geometry: HeatmapGeometry{
				Type:        GeometryPolygon,
				Coordinates: zone.Polygon,
			},
			Properties: HeatmapProperties{
				Neighborhood:   t.Neighborhood,
				TotalReports:   t.Total,
				AvailableCount: t.AvailableCount,
				Score:          math.Round(score*10) / 10,
				Status:         ClassifyScore(score),
				ServiceType:    serviceType,
				Center:         center,
			},
		})
	}

	return hm
}

// StatusByNeighborhood - категория по имени района, для раскраски зон
func (h *Heatmap) StatusByNeighborhood() map[string]HeatmapStatus {
	out := make(map[string]HeatmapStatus, len(h.Features))
	for _, f := range h.Features {
		out[f.Properties.Neighborhood] = f.Properties.Status
	}
	return out
}
