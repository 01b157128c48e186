package users

import (
	"context"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

var (
	newID = uuid.NewString
	now   = time.Now
)

// MemoryRepository keeps users in process memory. Emails are indexed in a
// set so availability checks do not scan the table.
type MemoryRepository struct {
	mu     sync.RWMutex
	emails mapset.Set[string]
	users  []*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{emails: mapset.NewThreadUnsafeSet[string]()}
}

// Create assigns ID and CreatedAt and stores a copy of user.
func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.emails.Add(user.Email) {
		return nil, ErrEmailTaken
	}

	u := *user
	u.ID = newID()
	u.CreatedAt = now().UTC()
	r.users = append(r.users, &u)

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.emails.Contains(email) {
		return nil, ErrNotFound
	}
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Exists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emails.Contains(email), nil
}

// List returns copies of all users in creation order.
func (r *MemoryRepository) List(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}
