// Package geo содержит планарную проекцию и геометрические примитивы,
// на которых построено сопоставление событий с маршрутами.
package geo

import (
	"math"

	"github.com/traffic-route-matcher/internal/domain"
)

// MetersPerDegree - метров в одном градусе широты
const MetersPerDegree = 111320.0

// Point - точка в локальной декартовой системе (метры)
type Point struct {
	X float64
	Y float64
}

// ToCartesian переводит координаты в локальную равнопромежуточную проекцию.
//
// Масштаб по долготе берётся по широте самой точки, общей опорной точки нет.
// Для отрезков маршрутов длиной в десятки метров и допусков порядка метра
// это согласованно, но на больших перепадах широты ошибка накапливается.
// Менять проекцию без перепроверки допусков нельзя.
func ToCartesian(loc domain.Location) Point {
	return Point{
		X: loc.Lng * MetersPerDegree * math.Cos(degToRad(loc.Lat)),
		Y: loc.Lat * MetersPerDegree,
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
