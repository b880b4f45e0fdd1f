package service

import (
	"context"
	"strings"
	"time"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/infrastructure/db/memory"
)

// plainHasher stands in for bcrypt so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }

func (plainHasher) Verify(pw, hash string) bool { return hash == "hashed:"+pw }

type stubTokens struct {
	lastUser string
	lastRole domain.Role
	lastExp  time.Time
}

func (s *stubTokens) Issue(userID string, role domain.Role, exp time.Time) (string, error) {
	s.lastUser, s.lastRole, s.lastExp = userID, role, exp
	return "token-" + userID, nil
}

func (s *stubTokens) Verify(token string) (*domain.Identity, error) {
	id, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &domain.Identity{UserID: id, Role: s.lastRole}, nil
}

// stubLimiter blocks an email once max failures are recorded.
type stubLimiter struct {
	max      int
	failures map[string]int
	err      error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, failures: map[string]int{}}
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.failures[key] < l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, key string) error {
	l.failures[key]++
	return l.err
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	delete(l.failures, key)
	return l.err
}

const validPassword = "Secret!Pass1"

func seedUser(db *memory.DB, name, email string, role domain.Role) *domain.User {
	u, err := db.Users().Create(context.Background(), &domain.User{Name: name, Email: email, Role: role}, "hashed:"+validPassword)
	if err != nil {
		panic(err)
	}
	return u
}

func seedStore(db *memory.DB, name, ownerID string) *domain.Store {
	s, err := db.Stores().Create(context.Background(), &domain.Store{Name: name, OwnerID: ownerID, CreatedAt: time.Now().UTC()})
	if err != nil {
		panic(err)
	}
	return s
}
