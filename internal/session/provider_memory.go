package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryProvider is an in-memory identity provider for tests.
// It is not intended for production use.

type MemoryProvider struct {
	mu      sync.Mutex
	byID    map[string]User
	byEmail map[string]string

	// Err, when set, is returned from every call to simulate an
	// unreachable or slow provider.
	Err error
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (p *MemoryProvider) CreateUser(ctx context.Context, email, passwordHash, role string) (User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return User{}, p.Err
	}
	if _, ok := p.byEmail[email]; ok {
		return User{}, ErrEmailTaken
	}
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	p.byID[u.ID] = u
	p.byEmail[u.Email] = u.ID
	return u, nil
}

func (p *MemoryProvider) UserByEmail(ctx context.Context, email string) (User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return User{}, p.Err
	}
	id, ok := p.byEmail[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return p.byID[id], nil
}

func (p *MemoryProvider) UserByID(ctx context.Context, id string) (User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return User{}, p.Err
	}
	u, ok := p.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}
