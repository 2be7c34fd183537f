package repo

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/servicehub/account-service/internal/domain"
)

// Memory is a mutex-guarded implementation of the same store surface as
// Store, for tests and MONGO_URI="" development runs. It enforces the email
// uniqueness constraint the same way the unique index does.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]domain.Account // keyed by hex id
	byEmail  map[string]string         // email -> hex id
	Logins   []domain.LoginRecord
	Payments []domain.Payment
}

func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]domain.Account),
		byEmail:  make(map[string]string),
	}
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	a := m.accounts[id]
	return &a, nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *Memory) Insert(_ context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[a.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.accounts[a.ID.Hex()] = *a
	m.byEmail[a.Email] = a.ID.Hex()
	return nil
}

func (m *Memory) Update(_ context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.ID.Hex()]; !ok {
		return domain.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	m.accounts[a.ID.Hex()] = *a
	return nil
}

func (m *Memory) FindAll(_ context.Context) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *Memory) AppendLogin(_ context.Context, rec domain.LoginRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.LoginAt.IsZero() {
		rec.LoginAt = time.Now().UTC()
	}
	rec.ID = primitive.NewObjectID()
	m.Logins = append(m.Logins, rec)
	return nil
}

func (m *Memory) InsertPayment(_ context.Context, p domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.ID = primitive.NewObjectID()
	m.Payments = append(m.Payments, p)
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }
