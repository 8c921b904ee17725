package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/domain/repository"
	"go.uber.org/zap"
)

// DefaultUpsertChunk - количество строк в одном INSERT
const DefaultUpsertChunk = 500

type trafficEventRepository struct {
	db        *DB
	table     string
	chunkSize int
	location  *time.Location
	logger    *zap.Logger
}

// eventRow - строка таблицы событий
type eventRow struct {
	ID                  string                 `db:"id"`
	EventType           string                 `db:"event_type"`
	EventSubtype        string                 `db:"event_subtype"`
	EventDueTo          string                 `db:"event_due_to"`
	Direction           string                 `db:"direction"`
	Towards             string                 `db:"towards"`
	ImpactType          string                 `db:"impact_type"`
	ImpactSubtype       string                 `db:"impact_subtype"`
	DurationStart       string                 `db:"duration_start"`
	EventPriority       string                 `db:"event_priority"`
	Description         string                 `db:"description"`
	Advice              string                 `db:"advice"`
	LastUpdated         string                 `db:"last_updated"`
	Information         string                 `db:"information"`
	RoadName            string                 `db:"road_name"`
	Locality            string                 `db:"locality"`
	Postcode            string                 `db:"postcode"`
	LocalGovernmentArea string                 `db:"local_government_area"`
	District            string                 `db:"district"`
	Coordinates         string                 `db:"coordinates"`
	Route               domain.AnnotationValue `db:"route"`
	Headsign            domain.AnnotationValue `db:"headsign"`
}

// NewTrafficEventRepository создает репозиторий событий.
// location задаёт часовой пояс, в котором записывается время resolved.
func NewTrafficEventRepository(db *DB, table string, chunkSize int, location *time.Location) repository.TrafficEventRepository {
	if chunkSize <= 0 {
		chunkSize = DefaultUpsertChunk
	}
	if location == nil {
		location = time.UTC
	}
	return &trafficEventRepository{
		db:        db,
		table:     pq.QuoteIdentifier(table),
		chunkSize: chunkSize,
		location:  location,
		logger:    db.logger,
	}
}

func (r *trafficEventRepository) upsertQuery() string {
	return fmt.Sprintf(`
		INSERT INTO %s (
			id, event_type, event_subtype, event_due_to, direction, towards,
			impact_type, impact_subtype, duration_start, event_priority,
			description, advice, last_updated, information, road_name, locality,
			postcode, local_government_area, district, coordinates, route, headsign
		) VALUES (
			:id, :event_type, :event_subtype, :event_due_to, :direction, :towards,
			:impact_type, :impact_subtype, :duration_start, :event_priority,
			:description, :advice, :last_updated, :information, :road_name, :locality,
			:postcode, :local_government_area, :district,
			CAST(:coordinates AS jsonb), CAST(:route AS jsonb), CAST(:headsign AS jsonb)
		)
		ON CONFLICT (id) DO UPDATE SET
			event_type = EXCLUDED.event_type,
			event_subtype = EXCLUDED.event_subtype,
			event_due_to = EXCLUDED.event_due_to,
			direction = EXCLUDED.direction,
			towards = EXCLUDED.towards,
			impact_type = EXCLUDED.impact_type,
			impact_subtype = EXCLUDED.impact_subtype,
			duration_start = EXCLUDED.duration_start,
			event_priority = EXCLUDED.event_priority,
			description = EXCLUDED.description,
			advice = EXCLUDED.advice,
			last_updated = EXCLUDED.last_updated,
			information = EXCLUDED.information,
			road_name = EXCLUDED.road_name,
			locality = EXCLUDED.locality,
			postcode = EXCLUDED.postcode,
			local_government_area = EXCLUDED.local_government_area,
			district = EXCLUDED.district,
			coordinates = EXCLUDED.coordinates,
			route = EXCLUDED.route,
			headsign = EXCLUDED.headsign,
			updated_at = NOW()`, r.table)
}

// UpsertEvents сохраняет события пачками в одной транзакции: при ошибке
// не сохраняется ничего. Повторяющиеся ID внутри вызова схлопываются,
// побеждает последняя запись.
func (r *trafficEventRepository) UpsertEvents(ctx context.Context, events []domain.AnnotatedEvent) (int, error) {
	rows, err := toRows(events)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	query := r.upsertQuery()

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for start := 0; start < len(rows); start += r.chunkSize {
			end := start + r.chunkSize
			if end > len(rows) {
				end = len(rows)
			}
			chunk := rows[start:end]

			r.logger.Info("Upserting traffic events",
				zap.String("table", r.table),
				zap.Int("offset", start),
				zap.Int("rows", len(chunk)))

			if _, err := tx.NamedExecContext(ctx, query, chunk); err != nil {
				r.logger.Error("Failed to upsert traffic events",
					zap.Int("offset", start),
					zap.Error(err))
				return fmt.Errorf("upsert traffic events [%d:%d]: %w", start, end, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("Upsert complete", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// ResolveMissing проставляет resolved событиям, которых нет в текущем фиде
func (r *trafficEventRepository) ResolveMissing(ctx context.Context, currentIDs []string, resolvedAt time.Time) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET resolved = $1, updated_at = NOW()
		WHERE (resolved IS NULL OR btrim(resolved) = '')
		  AND NOT (id = ANY($2))`, r.table)

	if currentIDs == nil {
		currentIDs = []string{}
	}

	res, err := r.db.ExecContext(ctx, query,
		resolvedAt.In(r.location).Format(domain.TimestampLayout),
		pq.Array(currentIDs))
	if err != nil {
		r.logger.Error("Failed to update resolved status", zap.Error(err))
		return 0, fmt.Errorf("resolve missing traffic events: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("resolve missing traffic events: %w", err)
	}

	if affected > 0 {
		r.logger.Info("Marked traffic events as resolved", zap.Int64("rows", affected))
	}
	return affected, nil
}

func toRows(events []domain.AnnotatedEvent) ([]eventRow, error) {
	positions := make(map[string]int, len(events))
	rows := make([]eventRow, 0, len(events))

	for _, e := range events {
		coords := e.Coordinates
		if coords == nil {
			coords = []domain.RawCoordinate{}
		}
		coordsJSON, err := json.Marshal(coords)
		if err != nil {
			return nil, fmt.Errorf("marshal coordinates of event %s: %w", e.ID, err)
		}

		row := eventRow{
			ID:                  e.ID,
			EventType:           e.EventType,
			EventSubtype:        e.EventSubtype,
			EventDueTo:          e.EventDueTo,
			Direction:           e.Direction,
			Towards:             e.Towards,
			ImpactType:          e.ImpactType,
			ImpactSubtype:       e.ImpactSubtype,
			DurationStart:       e.DurationStart,
			EventPriority:       e.EventPriority,
			Description:         e.Description,
			Advice:              e.Advice,
			LastUpdated:         e.LastUpdated,
			Information:         e.Information,
			RoadName:            e.RoadName,
			Locality:            e.Locality,
			Postcode:            e.Postcode,
			LocalGovernmentArea: e.LocalGovernmentArea,
			District:            e.District,
			Coordinates:         string(coordsJSON),
			Route:               e.Route,
			Headsign:            e.Headsign,
		}

		if pos, dup := positions[e.ID]; dup {
			rows[pos] = row
			continue
		}
		positions[e.ID] = len(rows)
		rows = append(rows, row)
	}

	return rows, nil
}
