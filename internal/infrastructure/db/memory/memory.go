// Package memory is a process-local storage backend. It enforces the same
// uniqueness rules as the database adapters and is used for tests and for
// STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/storerating/rating-system/internal/core/domain"
)

type userRecord struct {
	user domain.User
	hash string
}

type ratingPair struct {
	userID  string
	storeID string
}

// DB holds every collection behind one lock.
type DB struct {
	mu sync.RWMutex

	users     map[string]*userRecord
	userOrder []string
	emails    map[string]string

	stores     map[string]*domain.Store
	storeOrder []string

	ratings     map[string]*domain.Rating
	ratingOrder []string
	pairs       map[ratingPair]string
}

func New() *DB {
	return &DB{
		users:   make(map[string]*userRecord),
		emails:  make(map[string]string),
		stores:  make(map[string]*domain.Store),
		ratings: make(map[string]*domain.Rating),
		pairs:   make(map[ratingPair]string),
	}
}

func (db *DB) Users() *UserRepository     { return &UserRepository{db: db} }
func (db *DB) Stores() *StoreRepository   { return &StoreRepository{db: db} }
func (db *DB) Ratings() *RatingRepository { return &RatingRepository{db: db} }

// Ping always succeeds.
func (db *DB) Ping(context.Context) error { return nil }

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// page applies offset and limit to n items and returns the bounds.
func page(n, offset, limit int) (int, int) {
	if offset > n {
		offset = n
	}
	end := offset + limit
	if end > n || end < offset {
		end = n
	}
	return offset, end
}

// sortStable sorts idx by cmp, keeping creation order for ties in both
// directions.
func sortStable(idx []int, cmp func(a, b int) int, desc bool) {
	sort.SliceStable(idx, func(i, j int) bool {
		c := cmp(idx[i], idx[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}
