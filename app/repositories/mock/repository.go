package mock

import (
	"context"
	"sort"
	"sync"

	"hootroost/app/models"
	"hootroost/app/repositories"
)

// HootRepository keeps hoots in memory. Values are copied in and out so
// callers cannot mutate stored state without calling Update.
type HootRepository struct {
	hoots map[string]*models.Hoot
	mutex sync.RWMutex

	// Err, when set, is returned by every method.
	Err error
}

// UserRepository keeps profiles in memory.
type UserRepository struct {
	users map[string]*models.User
	mutex sync.RWMutex
}

func NewHootRepository() *HootRepository {
	return &HootRepository{hoots: make(map[string]*models.Hoot)}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*models.User)}
}

func (m *HootRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.hoots = make(map[string]*models.Hoot)
}

// Count returns the number of stored hoots.
func (m *HootRepository) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.hoots)
}

// HootRepository implementation
func (m *HootRepository) Create(ctx context.Context, hoot *models.Hoot) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	hoot.BeforeCreate()
	for _, c := range hoot.Comments {
		c.BeforeCreate()
	}
	m.hoots[hoot.ID] = clone(hoot)
	return nil
}

func (m *HootRepository) GetByID(ctx context.Context, id string) (*models.Hoot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	hoot, exists := m.hoots[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return clone(hoot), nil
}

func (m *HootRepository) List(ctx context.Context) ([]*models.Hoot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	hoots := make([]*models.Hoot, 0, len(m.hoots))
	for _, hoot := range m.hoots {
		hoots = append(hoots, clone(hoot))
	}
	sort.SliceStable(hoots, func(i, j int) bool {
		return hoots[i].CreatedAt.After(hoots[j].CreatedAt)
	})
	return hoots, nil
}

func (m *HootRepository) Update(ctx context.Context, hoot *models.Hoot) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.hoots[hoot.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.hoots[hoot.ID] = clone(hoot)
	return nil
}

func (m *HootRepository) UpdateFields(ctx context.Context, hoot *models.Hoot) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored, exists := m.hoots[hoot.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	stored.Title = hoot.Title
	stored.Text = hoot.Text
	stored.Category = hoot.Category
	stored.UpdatedAt = hoot.UpdatedAt
	return nil
}

func (m *HootRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.hoots[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.hoots, id)
	return nil
}

func (m *HootRepository) AppendComment(ctx context.Context, hootID string, comment *models.Comment) (*models.Hoot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	hoot, exists := m.hoots[hootID]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	comment.BeforeCreate()
	c := *comment
	if err := hoot.AddComment(&c); err != nil {
		return nil, err
	}
	return clone(hoot), nil
}

// UserRepository implementation
func (m *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *UserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if user, exists := m.users[id]; exists {
			u := *user
			users[id] = &u
		}
	}
	return users, nil
}

func clone(hoot *models.Hoot) *models.Hoot {
	h := *hoot
	h.Comments = make([]*models.Comment, len(hoot.Comments))
	for i, c := range hoot.Comments {
		cc := *c
		h.Comments[i] = &cc
	}
	return &h
}
