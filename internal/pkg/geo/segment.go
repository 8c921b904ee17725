package geo

import (
	"math"

	"github.com/traffic-route-matcher/internal/domain"
)

// collinearEpsilon - порог, ниже которого векторное произведение считается нулём
const collinearEpsilon = 1e-10

// PointOnLineSegment проверяет, лежит ли точка на отрезке ab с допуском toleranceMeters.
//
// Перпендикулярное расстояние должно быть не больше допуска, а проекция точки -
// попадать в сам отрезок без ограничения параметра: точка рядом с продолжением
// отрезка не подходит. Вырожденный отрезок сравнивается как точка.
func PointOnLineSegment(p, a, b domain.Location, toleranceMeters float64) bool {
	return pointOnSegment(ToCartesian(p), ToCartesian(a), ToCartesian(b), toleranceMeters)
}

func pointOnSegment(p, a, b Point, toleranceMeters float64) bool {
	abX, abY := b.X-a.X, b.Y-a.Y
	apX, apY := p.X-a.X, p.Y-a.Y

	lengthSquared := abX*abX + abY*abY
	if lengthSquared == 0 {
		return math.Sqrt(apX*apX+apY*apY) <= toleranceMeters
	}

	if perpendicularDistance(p, a, b) > toleranceMeters {
		return false
	}

	dot := apX*abX + apY*abY
	if dot < 0 || dot > lengthSquared {
		return false
	}

	return true
}

// perpendicularDistance - |ap x ab| / |ab|; для вырожденного отрезка не вызывается
func perpendicularDistance(p, a, b Point) float64 {
	abX, abY := b.X-a.X, b.Y-a.Y
	apX, apY := p.X-a.X, p.Y-a.Y

	cross := math.Abs(apX*abY - apY*abX)
	length := math.Sqrt(abX*abX + abY*abY)

	return cross / length
}

// LineSegmentsIntersect проверяет пересечение отрезков p1p2 и p3p4.
// Касание концами и наложение коллинеарных отрезков считаются пересечением.
func LineSegmentsIntersect(p1, p2, p3, p4 domain.Location) bool {
	return segmentsIntersect(ToCartesian(p1), ToCartesian(p2), ToCartesian(p3), ToCartesian(p4))
}

func segmentsIntersect(a, b, c, d Point) bool {
	o1 := orientation(a, b, c)
	o2 := orientation(a, b, d)
	o3 := orientation(c, d, a)
	o4 := orientation(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// коллинеарные случаи
	if o1 == collinear && onSegment(a, c, b) {
		return true
	}
	if o2 == collinear && onSegment(a, d, b) {
		return true
	}
	if o3 == collinear && onSegment(c, a, d) {
		return true
	}
	if o4 == collinear && onSegment(c, b, d) {
		return true
	}

	return false
}

type turn int

const (
	collinear turn = iota
	clockwise
	counterClockwise
)

func orientation(p, q, r Point) turn {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if math.Abs(val) < collinearEpsilon {
		return collinear
	}
	if val > 0 {
		return clockwise
	}
	return counterClockwise
}

// onSegment проверяет, что q лежит в ограничивающем прямоугольнике pr
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}
