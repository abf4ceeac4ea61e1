package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetgrid/server/internal/model"
)

const eventColumns = `id, title, description, location, start_date, end_date,
	capacity, is_public, creator_id, created_at`

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event together with its category links.
func (r *EventRepository) Create(ctx context.Context, e *model.Event, categoryIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO events (title, description, location, start_date, end_date, capacity, is_public, creator_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		e.Title, e.Description, e.Location, e.StartDate, e.EndDate, e.Capacity, e.IsPublic, e.CreatorID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	if err := addCategories(ctx, tx, e.ID, categoryIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID returns a single event with its active registration count,
// or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var e model.Event
	err := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+`,
		        (SELECT COUNT(*) FROM event_registrations
		         WHERE event_id = events.id AND status = 'registered')
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartDate, &e.EndDate,
		&e.Capacity, &e.IsPublic, &e.CreatorID, &e.CreatedAt, &e.RegistrationCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// ListUpcoming returns public events starting in the future, soonest
// first.
func (r *EventRepository) ListUpcoming(ctx context.Context, limit, offset int) ([]model.Event, error) {
	return r.list(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE start_date > now() AND is_public = TRUE
		 ORDER BY start_date ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByCategory returns public events linked to a category.
func (r *EventRepository) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]model.Event, error) {
	return r.list(ctx,
		`SELECT e.id, e.title, e.description, e.location, e.start_date, e.end_date,
		        e.capacity, e.is_public, e.creator_id, e.created_at
		 FROM events e
		 JOIN event_categories ec ON e.id = ec.event_id
		 WHERE ec.category_id = $1 AND e.is_public = TRUE
		 ORDER BY e.start_date ASC
		 LIMIT $2 OFFSET $3`,
		categoryID, limit, offset)
}

// ListByCreator returns every event a user created, including private
// ones.
func (r *EventRepository) ListByCreator(ctx context.Context, creatorID int64, limit, offset int) ([]model.Event, error) {
	return r.list(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE creator_id = $1
		 ORDER BY start_date ASC
		 LIMIT $2 OFFSET $3`,
		creatorID, limit, offset)
}

// ListRegisteredBy returns events the user holds an active
// registration for.
func (r *EventRepository) ListRegisteredBy(ctx context.Context, userID int64, limit, offset int) ([]model.Event, error) {
	return r.list(ctx,
		`SELECT e.id, e.title, e.description, e.location, e.start_date, e.end_date,
		        e.capacity, e.is_public, e.creator_id, e.created_at
		 FROM events e
		 JOIN event_registrations er ON e.id = er.event_id
		 WHERE er.user_id = $1 AND er.status = 'registered'
		 ORDER BY e.start_date ASC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

// Search matches public events by title, description or location.
func (r *EventRepository) Search(ctx context.Context, query string, limit, offset int) ([]model.Event, error) {
	pattern := "%" + query + "%"
	return r.list(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE (title ILIKE $1 OR description ILIKE $1 OR location ILIKE $1)
		   AND is_public = TRUE
		 ORDER BY start_date ASC
		 LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
}

// Update writes the given columns and replaces the category links when
// categoryIDs is non-nil.
func (r *EventRepository) Update(ctx context.Context, e *model.Event, categoryIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE events
		 SET title = $2, description = $3, location = $4, start_date = $5,
		     end_date = $6, capacity = $7, is_public = $8
		 WHERE id = $1`,
		e.ID, e.Title, e.Description, e.Location, e.StartDate, e.EndDate, e.Capacity, e.IsPublic,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if categoryIDs != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM event_categories WHERE event_id = $1`, e.ID); err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}
		if err := addCategories(ctx, tx, e.ID, categoryIDs); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete removes an event; registrations and category links cascade.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartDate,
			&e.EndDate, &e.Capacity, &e.IsPublic, &e.CreatorID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func addCategories(ctx context.Context, tx pgx.Tx, eventID int64, categoryIDs []int64) error {
	for _, categoryID := range categoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO event_categories (event_id, category_id)
			 VALUES ($1, $2)
			 ON CONFLICT (event_id, category_id) DO NOTHING`,
			eventID, categoryID,
		); err != nil {
			return fmt.Errorf("add category %d: %w", categoryID, err)
		}
	}
	return nil
}
