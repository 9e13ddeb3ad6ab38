package domain

import "strconv"

// Цвета слоя отображения. Вычисляются при чтении и нигде не сохраняются.
const (
	ColorMaintenance = "#FB8C00"
	ColorBroken      = "#E53935"
	ColorZone        = "#9E9E9E"
)

var networkColors = map[NetworkType]string{
	NetworkWater:       "#1E88E5",
	NetworkElectricity: "#FDD835",
	NetworkSewage:      "#6D4C41",
	NetworkPhone:       "#8E24AA",
}

var heatmapColors = map[HeatmapStatus]string{
	HeatmapAvailable: "#43A047",
	HeatmapUnstable:  "#FFB300",
	HeatmapCutoff:    "#E53935",
}

// AssetColor - цвет по (сеть, статус): рабочие объекты окрашены по сети,
// ремонт и авария - общими цветами
func AssetColor(network NetworkType, status AssetStatus) string {
	switch status {
	case AssetMaintenance:
		return ColorMaintenance
	case AssetBroken:
		return ColorBroken
	}
	if c, ok := networkColors[network]; ok {
		return c
	}
	return ColorZone
}

// ZoneColor - цвет зоны; при известной категории heatmap берется ее цвет
func ZoneColor(status HeatmapStatus) string {
	if c, ok := heatmapColors[status]; ok {
		return c
	}
	return ColorZone
}

const (
	LayerKindNode = "node"
	LayerKindLine = "line"
	LayerKindZone = "zone"
)

func NodeFeature(n Node) Feature {
	return Feature{
		Type:     GeoJSONFeature,
		ID:       LayerKindNode + ":" + strconv.FormatInt(n.ID, 10),
		Geometry: PointGeometry(n.Point),
		Properties: map[string]interface{}{
			"kind":          LayerKindNode,
			"id":            n.ID,
			"network_type":  n.NetworkType,
			"subtype":       n.Subtype,
			"status":        n.Status,
			"display_color": AssetColor(n.NetworkType, n.Status),
		},
	}
}

func LineFeature(l Line) Feature {
	return Feature{
		Type:     GeoJSONFeature,
		ID:       LayerKindLine + ":" + strconv.FormatInt(l.ID, 10),
		Geometry: LineGeometry(l.Coordinates),
		Properties: map[string]interface{}{
			"kind":          LayerKindLine,
			"id":            l.ID,
			"network_type":  l.NetworkType,
			"status":        l.Status,
			"display_color": AssetColor(l.NetworkType, l.Status),
		},
	}
}

// ZoneFeature; пустой status означает, что heatmap не запрашивался или данных нет
func ZoneFeature(z Zone, status HeatmapStatus) Feature {
	props := map[string]interface{}{
		"kind":          LayerKindZone,
		"id":            z.ID,
		"name":          z.Name,
		"display_color": ZoneColor(status),
	}
	if status != "" {
		props["service_status"] = status
	}
	return Feature{
		Type:       GeoJSONFeature,
		ID:         LayerKindZone + ":" + strconv.FormatInt(z.ID, 10),
		Geometry:   PolygonGeometry(z.Polygon),
		Properties: props,
	}
}
