package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventStoreImpl struct {
	db database.Querier
}

func NewEventStore(db database.Querier) attendance.EventStore {
	return &eventStoreImpl{db: db}
}

// QueryEvents implements attendance.EventStore.
func (s *eventStoreImpl) QueryEvents(ctx context.Context, query attendance.EventQuery) ([]attendance.Event, error) {
	if query.IsEmptyScope() {
		return []attendance.Event{}, nil
	}

	var (
		where []string
		args  []interface{}
	)
	if !query.AllUsers {
		args = append(args, query.UserIDs)
		where = append(where, fmt.Sprintf("f.usuario_id = ANY($%d::text[]::uuid[])", len(args)))
	}
	if query.From != nil {
		args = append(args, *query.From)
		where = append(where, fmt.Sprintf("f.created_at >= $%d", len(args)))
	}
	if query.To != nil {
		args = append(args, *query.To)
		where = append(where, fmt.Sprintf("f.created_at <= $%d", len(args)))
	}

	sql := `
		SELECT f.id::text, f.usuario_id::text, f.tipo, f.created_at,
			   f.latitud, f.longitud, f.ubicacion_autorizada,
			   u.nombre, u.email, u.id_empresa::text
		FROM fichajes f
		LEFT JOIN usuarios u ON u.id = f.usuario_id
	`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY f.created_at DESC NULLS LAST, f.id"
	if query.Limit > 0 {
		args = append(args, query.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fichajes: %w", err)
	}
	defer rows.Close()

	events := make([]attendance.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fichaje: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fichajes: %w", err)
	}
	return events, nil
}

func scanEvent(rows pgx.Rows) (attendance.Event, error) {
	var (
		e                    attendance.Event
		userID, kind         *string
		lat, lng             *float64
		authorized           *bool
		name, email, company *string
	)
	if err := rows.Scan(
		&e.ID, &userID, &kind, &e.OccurredAt,
		&lat, &lng, &authorized,
		&name, &email, &company,
	); err != nil {
		return attendance.Event{}, err
	}

	e.UserID = deref(userID)
	e.Kind = attendance.Kind(deref(kind))
	e.Employee = attendance.Employee{
		DisplayName: deref(name),
		Email:       deref(email),
		CompanyID:   deref(company),
	}
	if lat != nil || lng != nil || authorized != nil {
		e.Location = &attendance.Location{
			Latitude:   lat,
			Longitude:  lng,
			Authorized: authorized != nil && *authorized,
		}
	}
	return e, nil
}

// QueryDailyMinutes implements attendance.EventStore.
func (s *eventStoreImpl) QueryDailyMinutes(ctx context.Context, userIDs []string, localDays []string) ([]attendance.DailyMinutesFact, error) {
	if len(userIDs) == 0 || len(localDays) == 0 {
		return []attendance.DailyMinutesFact{}, nil
	}

	sql := `
		SELECT usuario_id::text, to_char(dia, 'YYYY-MM-DD'), minutos::int
		FROM minutos_trabajados_diarios
		WHERE usuario_id = ANY($1::text[]::uuid[])
		  AND dia = ANY($2::text[]::date[])
	`

	rows, err := s.db.Query(ctx, sql, userIDs, localDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily minutes: %w", err)
	}
	defer rows.Close()

	facts := make([]attendance.DailyMinutesFact, 0)
	for rows.Next() {
		var f attendance.DailyMinutesFact
		if err := rows.Scan(&f.UserID, &f.LocalDay, &f.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan daily minutes: %w", err)
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily minutes: %w", err)
	}
	return facts, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
