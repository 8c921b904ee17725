package geo

import "github.com/traffic-route-matcher/internal/domain"

// PolylinesIntersect проверяет каждую пару отрезков двух ломаных и возвращает
// индексы отрезков первой ломаной, пересекающих вторую. Индексы уникальны и
// идут в порядке обнаружения.
func PolylinesIntersect(first, second []domain.Location) (bool, []int) {
	if len(first) < 2 || len(second) < 2 {
		return false, nil
	}

	a := project(first)
	b := project(second)

	var segments []int
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				segments = append(segments, i)
				break
			}
		}
	}

	return len(segments) > 0, segments
}

// PointOnPolyline возвращает первый отрезок ломаной, на котором лежит точка.
// Перебор останавливается на первом совпадении; при отсутствии - (false, -1).
func PointOnPolyline(point domain.Location, polyline []domain.Location, toleranceMeters float64) (bool, int) {
	if len(polyline) < 2 {
		return false, -1
	}

	p := ToCartesian(point)
	prev := ToCartesian(polyline[0])
	for i := 1; i < len(polyline); i++ {
		next := ToCartesian(polyline[i])
		if pointOnSegment(p, prev, next, toleranceMeters) {
			return true, i - 1
		}
		prev = next
	}

	return false, -1
}

// Project переводит ломаную в локальные декартовы координаты
func Project(path []domain.Location) []Point {
	return project(path)
}

func project(path []domain.Location) []Point {
	points := make([]Point, len(path))
	for i, loc := range path {
		points[i] = ToCartesian(loc)
	}
	return points
}
