package domain

// Location - географическая точка в десятичных градусах
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteDirection - одно направление движения опубликованного маршрута.
// Path заполняется один раз при загрузке индекса и далее не изменяется.
type RouteDirection struct {
	RouteID   string     `json:"route_id"`
	Direction string     `json:"direction"`
	Path      []Location `json:"path"`
}

// TotalSegments возвращает количество отрезков пути (0 для пустого или одноточечного пути)
func (d RouteDirection) TotalSegments() int {
	if len(d.Path) > 1 {
		return len(d.Path) - 1
	}
	return 0
}
