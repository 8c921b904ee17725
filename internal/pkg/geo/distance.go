package geo

import (
	"math"

	"github.com/traffic-route-matcher/internal/domain"
)

// EarthRadiusMeters - радиус Земли для формулы гаверсинусов
const EarthRadiusMeters = 6371000.0

// HaversineDistance вычисляет расстояние по большому кругу в метрах
func HaversineDistance(a, b domain.Location) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// PointToLineDistance возвращает расстояние в метрах от точки до отрезка ab.
// Параметр проекции ограничивается [0,1], поэтому за пределами отрезка
// возвращается расстояние до ближайшего конца.
func PointToLineDistance(p, a, b domain.Location) float64 {
	pc, ac, bc := ToCartesian(p), ToCartesian(a), ToCartesian(b)

	abX, abY := bc.X-ac.X, bc.Y-ac.Y
	apX, apY := pc.X-ac.X, pc.Y-ac.Y

	abSquared := abX*abX + abY*abY
	if abSquared == 0 {
		return math.Hypot(apX, apY)
	}

	t := (apX*abX + apY*abY) / abSquared
	t = math.Max(0, math.Min(1, t))

	projX := ac.X + t*abX
	projY := ac.Y + t*abY

	return math.Hypot(pc.X-projX, pc.Y-projY)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
