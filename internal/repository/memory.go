package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/finsight/finsight-service/internal/models"
)

// MemoryRepository is an in-memory Repository used in tests and local
// development without a database.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[int64]*models.User
	records map[int64][]*models.FinancialRecord // userID -> versions, oldest first
}

// NewMemoryRepository initializes an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:  1,
		users:   make(map[int64]*models.User),
		records: make(map[int64][]*models.FinancialRecord),
	}
}

// CreateUser stores a new user, enforcing email uniqueness
func (r *MemoryRepository) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}

	now := time.Now().Format(time.RFC3339)
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *MemoryRepository) FindUserByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			found := *user
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindUserByID retrieves a user by id
func (r *MemoryRepository) FindUserByID(id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// SaveFinancialRecord appends a new bundle version for a user
func (r *MemoryRepository) SaveFinancialRecord(record *models.FinancialRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.CreatedAt = time.Now()
	stored := *record
	r.records[record.UserID] = append(r.records[record.UserID], &stored)
	return nil
}

// LatestFinancialRecord retrieves the most recent bundle version for a user
func (r *MemoryRepository) LatestFinancialRecord(userID int64) (*models.FinancialRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.records[userID]
	if len(versions) == 0 {
		return nil, ErrNoRecord
	}
	found := *versions[len(versions)-1]
	return &found, nil
}

// ConsentingUserIDs lists users with at least one stored record
func (r *MemoryRepository) ConsentingUserIDs() ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.records))
	for id, versions := range r.records {
		if len(versions) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
