package matching

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/pkg/geo"
	"github.com/traffic-route-matcher/internal/routeindex"
)

// PreFilter отбирает направления-кандидаты перед точной проверкой.
// Реализация обязана вернуть надмножество реально совпадающих направлений
// в виде позиций индекса по возрастанию.
type PreFilter interface {
	Candidates(index *routeindex.Index, geometry []domain.Location, toleranceMeters float64) []int
}

// FullScan - базовый вариант без отбора: проверяется каждое направление
type FullScan struct{}

func (FullScan) Candidates(index *routeindex.Index, _ []domain.Location, _ float64) []int {
	positions := make([]int, index.Len())
	for i := range positions {
		positions[i] = i
	}
	return positions
}

// boundsSlack компенсирует ошибки округления на границе прямоугольников (метры)
const boundsSlack = 1e-6

// BoundsPreFilter хранит ограничивающие прямоугольники направлений в R-дереве.
// Прямоугольники строятся в той же планарной проекции, что и точные проверки,
// поэтому пересечение отрезков всегда означает пересечение прямоугольников.
type BoundsPreFilter struct {
	tree  rtree.RTreeG[int]
	index *routeindex.Index
}

// NewBoundsPreFilter строит R-дерево по всем направлениям индекса.
// Направления без отрезков не совпадают ни с чем и в дерево не попадают.
func NewBoundsPreFilter(index *routeindex.Index) *BoundsPreFilter {
	f := &BoundsPreFilter{index: index}
	for pos := 0; pos < index.Len(); pos++ {
		direction := index.Direction(pos)
		if len(direction.Path) < 2 {
			continue
		}
		b := projectedBound(direction.Path)
		f.tree.Insert([2]float64{b.Min.X(), b.Min.Y()}, [2]float64{b.Max.X(), b.Max.Y()}, pos)
	}
	return f
}

// Candidates возвращает направления, чей прямоугольник пересекает прямоугольник
// геометрии события, расширенный на допуск (отрицательный допуск считается нулевым).
// Для чужого индекса выполняется полный перебор.
func (f *BoundsPreFilter) Candidates(index *routeindex.Index, geometry []domain.Location, toleranceMeters float64) []int {
	if index != f.index || len(geometry) == 0 {
		return FullScan{}.Candidates(index, geometry, toleranceMeters)
	}

	b := projectedBound(geometry).Pad(math.Max(toleranceMeters, 0) + boundsSlack)

	var positions []int
	f.tree.Search([2]float64{b.Min.X(), b.Min.Y()}, [2]float64{b.Max.X(), b.Max.Y()},
		func(_, _ [2]float64, pos int) bool {
			positions = append(positions, pos)
			return true
		})

	slices.Sort(positions)
	return positions
}

// Len возвращает количество направлений в дереве
func (f *BoundsPreFilter) Len() int {
	return f.tree.Len()
}

func projectedBound(path []domain.Location) orb.Bound {
	first := geo.ToCartesian(path[0])
	b := orb.Point{first.X, first.Y}.Bound()
	for _, loc := range path[1:] {
		p := geo.ToCartesian(loc)
		b = b.Extend(orb.Point{p.X, p.Y})
	}
	return b
}
