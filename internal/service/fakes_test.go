package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/repository"
)

// In-memory store doubles. The registration fake reproduces the
// ledger's contract under a single mutex: the capacity check and the
// insert are one critical section, exactly what the SQL transaction
// guarantees in production.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]model.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]model.Event)}
}

func (s *fakeEventStore) add(e model.Event) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	s.events[e.ID] = e
	return e
}

func (s *fakeEventStore) Create(_ context.Context, e *model.Event, _ []int64) error {
	*e = s.add(*e)
	return nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := e
	return &copied, nil
}

func (s *fakeEventStore) ListUpcoming(_ context.Context, limit, _ int) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, e := range s.events {
		if e.IsPublic && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEventStore) ListByCategory(context.Context, int64, int, int) ([]model.Event, error) {
	return nil, nil
}

func (s *fakeEventStore) ListByCreator(_ context.Context, creatorID int64, _, _ int) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, e := range s.events {
		if e.CreatorID == creatorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEventStore) ListRegisteredBy(context.Context, int64, int, int) ([]model.Event, error) {
	return nil, nil
}

func (s *fakeEventStore) Search(context.Context, string, int, int) ([]model.Event, error) {
	return nil, nil
}

func (s *fakeEventStore) Update(_ context.Context, e *model.Event, _ []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; !ok {
		return repository.ErrNotFound
	}
	s.events[e.ID] = *e
	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

type fakeRegistrationStore struct {
	mu     sync.Mutex
	events *fakeEventStore
	rows   []model.Registration
}

func newFakeRegistrationStore(events *fakeEventStore) *fakeRegistrationStore {
	return &fakeRegistrationStore{events: events}
}

func (s *fakeRegistrationStore) Register(ctx context.Context, eventID, userID int64) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, row := range s.rows {
		if row.EventID != eventID || row.Status != model.StatusRegistered {
			continue
		}
		if row.UserID == userID {
			return nil, repository.ErrAlreadyRegistered
		}
		active++
	}
	if event.Capacity != nil && active >= *event.Capacity {
		return nil, repository.ErrEventFull
	}

	reg := model.Registration{
		ID:               uuid.New().String(),
		EventID:          eventID,
		UserID:           userID,
		Status:           model.StatusRegistered,
		RegistrationDate: time.Now().UTC(),
	}
	s.rows = append(s.rows, reg)
	return &reg, nil
}

func (s *fakeRegistrationStore) Cancel(_ context.Context, eventID, userID int64) error {
	return s.transition(eventID, userID, model.StatusCancelled)
}

func (s *fakeRegistrationStore) MarkAttended(_ context.Context, eventID, userID int64) error {
	return s.transition(eventID, userID, model.StatusAttended)
}

func (s *fakeRegistrationStore) transition(eventID, userID int64, to model.RegistrationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		row := &s.rows[i]
		if row.EventID == eventID && row.UserID == userID && row.Status == model.StatusRegistered {
			row.Status = to
			return nil
		}
	}
	return repository.ErrNotRegistered
}

func (s *fakeRegistrationStore) IsRegistered(_ context.Context, eventID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.EventID == eventID && row.UserID == userID && row.Status == model.StatusRegistered {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRegistrationStore) ListAttendees(_ context.Context, eventID int64) ([]model.Attendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Attendee
	for _, row := range s.rows {
		if row.EventID == eventID {
			out = append(out, model.Attendee{
				UserID:           row.UserID,
				Status:           row.Status,
				RegistrationDate: row.RegistrationDate,
			})
		}
	}
	return out, nil
}

// activeCount reports the current number of active rows for an event.
func (s *fakeRegistrationStore) activeCount(eventID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, row := range s.rows {
		if row.EventID == eventID && row.Status == model.StatusRegistered {
			n++
		}
	}
	return n
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]model.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[int64]model.Category)}
}

func (s *fakeCategoryStore) Create(_ context.Context, c *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.categories[c.ID] = *c
	return nil
}

func (s *fakeCategoryStore) List(context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Category
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id int64) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := c
	return &copied, nil
}

func (s *fakeCategoryStore) Update(_ context.Context, c *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}
