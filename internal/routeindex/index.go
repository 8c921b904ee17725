// Package routeindex загружает статический набор маршрутов в плоский
// неизменяемый список направлений, который сканируется при сопоставлении.
package routeindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/traffic-route-matcher/internal/domain"
	"go.uber.org/zap"
)

// ErrRouteIndexUnavailable возвращается, когда набор маршрутов не удалось загрузить
var ErrRouteIndexUnavailable = errors.New("route index unavailable")

// Index - плоский список направлений маршрутов в порядке появления в файле.
// После построения не изменяется, поэтому безопасен для чтения из разных горутин.
type Index struct {
	directions []domain.RouteDirection
	routes     int
}

// Stats - сводка по загруженным данным
type Stats struct {
	Routes     int `json:"routes"`
	Directions int `json:"directions"`
	Points     int `json:"points"`
	Empty      int `json:"empty_directions"`
}

// New строит индекс из готового списка направлений
func New(directions []domain.RouteDirection) *Index {
	seen := make(map[string]struct{})
	copied := make([]domain.RouteDirection, len(directions))
	for i, d := range directions {
		path := make([]domain.Location, len(d.Path))
		copy(path, d.Path)
		copied[i] = domain.RouteDirection{RouteID: d.RouteID, Direction: d.Direction, Path: path}
		seen[d.RouteID] = struct{}{}
	}
	return &Index{directions: copied, routes: len(seen)}
}

// Load читает JSON-файл вида {route_id: {direction: [[lng, lat], ...]}}.
// Загрузка атомарна: любая ошибка открытия или разбора возвращается целиком,
// частичный индекс не создаётся.
func Load(path string, logger *zap.Logger) (*Index, error) {
	logger.Info("Loading bus routes", zap.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrRouteIndexUnavailable, path, err)
	}
	defer file.Close()

	idx, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRouteIndexUnavailable, path, err)
	}

	idx.logSummary(logger)
	return idx, nil
}

// Decode разбирает набор маршрутов из потока, сохраняя порядок ключей документа
func Decode(r io.Reader) (*Index, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	idx := &Index{}
	for dec.More() {
		routeID, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("route %q: %w", routeID, err)
		}

		for dec.More() {
			direction, err := readKey(dec)
			if err != nil {
				return nil, fmt.Errorf("route %q: %w", routeID, err)
			}

			var coords [][]float64
			if err := dec.Decode(&coords); err != nil {
				return nil, fmt.Errorf("route %q direction %q: decode coordinates: %w", routeID, direction, err)
			}

			path := make([]domain.Location, 0, len(coords))
			for i, c := range coords {
				if len(c) < 2 {
					return nil, fmt.Errorf("route %q direction %q: coordinate %d has %d elements", routeID, direction, i, len(c))
				}
				// в файле порядок [lng, lat]
				path = append(path, domain.Location{Lat: c[1], Lng: c[0]})
			}

			idx.directions = append(idx.directions, domain.RouteDirection{
				RouteID:   routeID,
				Direction: direction,
				Path:      path,
			})
		}

		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("route %q: %w", routeID, err)
		}
		idx.routes++
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	return idx, nil
}

// Directions возвращает направления в порядке индекса. Пути разделяются с индексом
// и не должны изменяться вызывающим кодом.
func (i *Index) Directions() []domain.RouteDirection {
	out := make([]domain.RouteDirection, len(i.directions))
	copy(out, i.directions)
	return out
}

// Direction возвращает направление по позиции в индексе
func (i *Index) Direction(pos int) domain.RouteDirection {
	return i.directions[pos]
}

// Len возвращает количество направлений
func (i *Index) Len() int {
	return len(i.directions)
}

// Stats возвращает сводку по индексу
func (i *Index) Stats() Stats {
	s := Stats{Routes: i.routes, Directions: len(i.directions)}
	for _, d := range i.directions {
		s.Points += len(d.Path)
		if len(d.Path) == 0 {
			s.Empty++
		}
	}
	return s
}

func (i *Index) logSummary(logger *zap.Logger) {
	for _, d := range i.directions {
		if len(d.Path) == 0 {
			logger.Warn("Route direction has no coordinates",
				zap.String("route_id", d.RouteID),
				zap.String("direction", d.Direction))
			continue
		}
		start, end := d.Path[0], d.Path[len(d.Path)-1]
		logger.Debug("Route direction loaded",
			zap.String("route_id", d.RouteID),
			zap.String("direction", d.Direction),
			zap.Int("points", len(d.Path)),
			zap.Float64s("start", []float64{start.Lat, start.Lng}),
			zap.Float64s("end", []float64{end.Lat, end.Lng}))
	}

	stats := i.Stats()
	logger.Info("Bus routes loaded",
		zap.Int("routes", stats.Routes),
		zap.Int("directions", stats.Directions),
		zap.Int("points", stats.Points))
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("read key: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
