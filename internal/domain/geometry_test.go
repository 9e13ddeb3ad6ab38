package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// areaCentroid - центр масс площади по формуле шнурования, только для сравнения в тестах
func areaCentroid(ring []Position) Position {
	var a, cx, cy float64
	n := len(ring)
	for i := 0; i < n; i++ {
		x0, y0 := ring[i][0], ring[i][1]
		x1, y1 := ring[(i+1)%n][0], ring[(i+1)%n][1]
		cross := x0*y1 - x1*y0
		a += cross
		cx += (x0 + x1) * cross
		cy += (y0 + y1) * cross
	}
	a /= 2
	return Position{cx / (6 * a), cy / (6 * a)}
}

func TestPolygon_ApproxCenter_Square(t *testing.T) {
	square := Polygon{{{0, 0}, {0, 2}, {2, 2}, {2, 0}}}

	center, ok := square.ApproxCenter()
	require.True(t, ok)
	assert.Equal(t, Position{1, 1}, center)
}

func TestPolygon_ApproxCenter_IgnoresClosingVertex(t *testing.T) {
	closed := Polygon{{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}}}

	center, ok := closed.ApproxCenter()
	require.True(t, ok)
	assert.Equal(t, Position{1, 1}, center)
}

func TestPolygon_ApproxCenter_DiffersFromAreaCentroid(t *testing.T) {
	// L-образный полигон: среднее вершин смещено относительно центра масс
	lShape := Polygon{{{0, 0}, {4, 0}, {4, 1}, {1, 1}, {1, 4}, {0, 4}}}

	approx, ok := lShape.ApproxCenter()
	require.True(t, ok)
	exact := areaCentroid(lShape.OuterRing())

	assert.InDelta(t, 10.0/6.0, approx.Lon(), 1e-9)
	assert.InDelta(t, 10.0/6.0, approx.Lat(), 1e-9)
	assert.InDelta(t, 9.5/7.0, exact.Lon(), 1e-9)
	assert.Greater(t, math.Hypot(approx[0]-exact[0], approx[1]-exact[1]), 0.3)
}

func TestPolygon_ApproxCenter_Empty(t *testing.T) {
	_, ok := Polygon{}.ApproxCenter()
	assert.False(t, ok)
}

func TestValidateLineString(t *testing.T) {
	assert.Error(t, ValidateLineString(LineString{{36.2, 33.5}}))
	assert.Error(t, ValidateLineString(LineString{{36.2, 33.5}, {200, 33.5}}))
	assert.NoError(t, ValidateLineString(LineString{{36.2, 33.5}, {36.3, 33.51}}))
}

func TestValidatePolygon(t *testing.T) {
	assert.Error(t, ValidatePolygon(Polygon{{{0, 0}, {1, 1}, {0, 0}}}))
	assert.NoError(t, ValidatePolygon(Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))
}

func TestGeometry_ScanValueRoundTripKeepsText(t *testing.T) {
	stored := `[[36.27123456789012,33.51398765432101],[36.28,33.5]]`

	var line LineString
	require.NoError(t, line.Scan([]byte(stored)))

	v, err := line.Value()
	require.NoError(t, err)
	assert.Equal(t, stored, v)

	out, err := json.Marshal(line)
	require.NoError(t, err)
	assert.Equal(t, stored, string(out))
}

func TestPosition_UnmarshalJSON_RequiresTwoElements(t *testing.T) {
	var p Position
	require.NoError(t, json.Unmarshal([]byte(`[36.27123456789012,33.5]`), &p))
	assert.Equal(t, Position{36.27123456789012, 33.5}, p)

	tests := map[string]string{
		"short":  `[35.1]`,
		"long":   `[35.2,33.5,120]`,
		"empty":  `[]`,
		"string": `["35.1","33.5"]`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var p Position
			assert.Error(t, json.Unmarshal([]byte(input), &p))
		})
	}
}

func TestLineString_UnmarshalJSON_RejectsMalformedVertex(t *testing.T) {
	var line LineString
	assert.Error(t, json.Unmarshal([]byte(`[[35.1],[35.2,33.5]]`), &line))
	assert.Error(t, json.Unmarshal([]byte(`[[35.1,33.4],[35.2,33.5,120.0]]`), &line))
}

func TestPolygon_UnmarshalJSON_RejectsMalformedVertex(t *testing.T) {
	var polygon Polygon
	assert.Error(t, json.Unmarshal([]byte(`[[[0,0],[1],[1,1],[0,0]]]`), &polygon))
	assert.Error(t, json.Unmarshal([]byte(`[[[0,0,5],[1,0],[1,1],[0,0]]]`), &polygon))
	require.NoError(t, json.Unmarshal([]byte(`[[[0,0],[1,0],[1,1],[0,0]]]`), &polygon))
	assert.NoError(t, ValidatePolygon(polygon))
}
