package snapshot

import (
	"math"
	"sort"
	"time"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/pkg/utils"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50

	// pointTolerance - полуразмер прямоугольника точки в градусах
	pointTolerance = 1e-7

	// bboxMargin - запас на погрешность вычислений при построении bbox
	bboxMargin = 1.01
)

// indexedEntity оборачивает сущность для R-дерева
type indexedEntity struct {
	entity   *domain.Entity
	position int
	rect     *rtreego.Rect
}

func (i *indexedEntity) Bounds() *rtreego.Rect {
	return i.rect
}

// Snapshot - неизменяемый снимок сущностей одного вида.
// После создания не модифицируется, поэтому читается без блокировок.
type Snapshot struct {
	kind     domain.EntityKind
	version  string
	loadedAt time.Time
	entities []*domain.Entity
	located  []*indexedEntity
	priced   int
	tree     *rtreego.Rtree
}

// New строит снимок и R-дерево по сущностям с координатами
func New(kind domain.EntityKind, entities []*domain.Entity) *Snapshot {
	s := &Snapshot{
		kind:     kind,
		version:  uuid.NewString(),
		loadedAt: time.Now().UTC(),
		entities: entities,
		tree:     rtreego.NewTree(dimensions, minChildren, maxChildren),
	}

	for i, e := range entities {
		if e.HasPrice() {
			s.priced++
		}
		if !e.HasLocation() {
			continue
		}
		item := &indexedEntity{
			entity:   e,
			position: i,
			rect:     rtreego.Point{e.Location.Lat, e.Location.Lng}.ToRect(pointTolerance),
		}
		s.located = append(s.located, item)
		s.tree.Insert(item)
	}

	return s
}

func (s *Snapshot) Kind() domain.EntityKind { return s.kind }
func (s *Snapshot) Version() string         { return s.version }
func (s *Snapshot) Len() int                { return len(s.entities) }

// Entities возвращает все сущности снимка. Срез нельзя модифицировать.
func (s *Snapshot) Entities() []*domain.Entity {
	return s.entities
}

// Candidates возвращает сущности с координатами внутри bbox круга радиуса radiusMeters.
// Результат - надмножество точного множества, порядок совпадает с порядком снимка.
func (s *Snapshot) Candidates(center domain.GeoPoint, radiusMeters float64) []*domain.Entity {
	if radiusMeters <= 0 || len(s.located) == 0 {
		return []*domain.Entity{}
	}

	bounds, ok := boundingRect(center, radiusMeters)
	if !ok {
		return s.allLocated()
	}

	found := s.tree.SearchIntersect(bounds)
	items := make([]*indexedEntity, 0, len(found))
	for _, f := range found {
		if item, ok := f.(*indexedEntity); ok {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].position < items[j].position
	})

	result := make([]*domain.Entity, len(items))
	for i, item := range items {
		result[i] = item.entity
	}
	return result
}

func (s *Snapshot) allLocated() []*domain.Entity {
	result := make([]*domain.Entity, len(s.located))
	for i, item := range s.located {
		result[i] = item.entity
	}
	return result
}

// Info возвращает сводку по снимку
func (s *Snapshot) Info() domain.SnapshotInfo {
	loadedAt := s.loadedAt
	return domain.SnapshotInfo{
		Kind:         s.kind,
		Ready:        len(s.entities) > 0,
		Version:      s.version,
		Entities:     len(s.entities),
		WithLocation: len(s.located),
		WithPrice:    s.priced,
		LoadedAt:     &loadedAt,
	}
}

// boundingRect строит прямоугольник lat/lng, содержащий круг радиуса radiusMeters.
// ok=false, если круг касается полюса или антимеридиана: тогда нужен полный перебор.
func boundingRect(center domain.GeoPoint, radiusMeters float64) (*rtreego.Rect, bool) {
	angular := radiusMeters / utils.EarthRadiusMeters
	if angular >= math.Pi/2 {
		return nil, false
	}

	latDeg := angular * 180 / math.Pi * bboxMargin
	if center.Lat-latDeg <= -90 || center.Lat+latDeg >= 90 {
		return nil, false
	}

	// максимальное отклонение по долготе на окружности радиуса angular
	sinLon := math.Sin(angular) / math.Cos(center.Lat*math.Pi/180)
	if sinLon >= 1 {
		return nil, false
	}
	lngDeg := math.Asin(sinLon) * 180 / math.Pi * bboxMargin
	if center.Lng-lngDeg < -180 || center.Lng+lngDeg > 180 {
		return nil, false
	}

	rect, err := rtreego.NewRect(
		rtreego.Point{center.Lat - latDeg, center.Lng - lngDeg},
		[]float64{2 * latDeg, 2 * lngDeg},
	)
	if err != nil {
		return nil, false
	}
	return rect, true
}
