package utils

import "math"

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// RoundTo округляет значение до заданного количества знаков после запятой
func RoundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// Percent возвращает part/total*100, округленное до одного знака; 0 при пустом total
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return RoundTo(100*float64(part)/float64(total), 1)
}
