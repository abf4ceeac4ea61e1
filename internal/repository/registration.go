package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetgrid/server/internal/model"
)

// RegistrationRepository performs capacity-safe state transitions on
// registrations. Each (event, user) pair moves absent → registered →
// {cancelled, attended}; the terminal states never transition, and a
// re-registration after cancelling creates a fresh row.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register performs a concurrency-safe registration inside a single
// transaction.
//
// Two concurrent transactions that each read "count < capacity" before
// either commits would overbook the event, so the event row is locked
// with SELECT ... FOR UPDATE first. The lock serialises all
// registration attempts for one event: the capacity count, the
// duplicate check and the insert all happen under it. The partial
// unique index on (event_id, user_id) WHERE status = 'registered'
// backstops the duplicate check independently of the capacity path.
//
// Any failure rolls the transaction back whole; no partial insert
// survives, and nothing is retried here.
func (r *RegistrationRepository) Register(ctx context.Context, eventID, userID int64) (*model.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the event row. Concurrent Register calls for the same
	// event block here until we commit or roll back.
	var capacity *int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	var active bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM event_registrations
		     WHERE event_id = $1 AND user_id = $2 AND status = 'registered'
		 )`,
		eventID, userID,
	).Scan(&active)
	if err != nil {
		return nil, fmt.Errorf("check active registration: %w", err)
	}
	if active {
		return nil, ErrAlreadyRegistered
	}

	// NULL capacity means unbounded; skip the count entirely.
	if capacity != nil {
		var count int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM event_registrations
			 WHERE event_id = $1 AND status = 'registered'`,
			eventID,
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		if count >= *capacity {
			return nil, ErrEventFull
		}
	}

	reg := &model.Registration{
		ID:               uuid.New().String(),
		EventID:          eventID,
		UserID:           userID,
		Status:           model.StatusRegistered,
		RegistrationDate: time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO event_registrations (id, event_id, user_id, status, registration_date)
		 VALUES ($1, $2, $3, $4, $5)`,
		reg.ID, reg.EventID, reg.UserID, reg.Status, reg.RegistrationDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

// Cancel transitions the active registration to cancelled. Cancelling
// twice fails: the second call finds no active row.
func (r *RegistrationRepository) Cancel(ctx context.Context, eventID, userID int64) error {
	return r.transition(ctx, eventID, userID, model.StatusCancelled)
}

// MarkAttended transitions the active registration to attended. Admin
// enforcement happens upstream.
func (r *RegistrationRepository) MarkAttended(ctx context.Context, eventID, userID int64) error {
	return r.transition(ctx, eventID, userID, model.StatusAttended)
}

// transition moves the single active row into a terminal status. The
// WHERE status = 'registered' clause makes terminal states sticky: a
// cancelled or attended row never transitions again.
func (r *RegistrationRepository) transition(ctx context.Context, eventID, userID int64, to model.RegistrationStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE event_registrations SET status = $3
		 WHERE event_id = $1 AND user_id = $2 AND status = 'registered'`,
		eventID, userID, to,
	)
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotRegistered
	}
	return nil
}

// IsRegistered reports whether an active registration exists. This is
// a best-effort read; Register re-checks inside its transaction.
func (r *RegistrationRepository) IsRegistered(ctx context.Context, eventID, userID int64) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM event_registrations
		     WHERE event_id = $1 AND user_id = $2 AND status = 'registered'
		 )`,
		eventID, userID,
	).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return active, nil
}

// ListAttendees returns every historical registration for an event
// joined with its user.
func (r *RegistrationRepository) ListAttendees(ctx context.Context, eventID int64) ([]model.Attendee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, er.status, er.registration_date
		 FROM event_registrations er
		 JOIN users u ON er.user_id = u.id
		 WHERE er.event_id = $1
		 ORDER BY er.registration_date ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	var attendees []model.Attendee
	for rows.Next() {
		var a model.Attendee
		if err := rows.Scan(&a.UserID, &a.FirstName, &a.LastName, &a.Email, &a.Status, &a.RegistrationDate); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}
