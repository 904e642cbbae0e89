package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/finsight/finsight-service/internal/models"
)

// PostgresRepository implements Repository on top of database/sql.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository initializes a new postgres-backed repository
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateUser creates a new user in the database
func (r *PostgresRepository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO finsight.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *PostgresRepository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM finsight.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *PostgresRepository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM finsight.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveFinancialRecord stores a new encrypted bundle version for a user
func (r *PostgresRepository) SaveFinancialRecord(record *models.FinancialRecord) error {
	query := `
		INSERT INTO finsight.financial_records (id, user_id, ciphertext, hmac, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query, record.ID, record.UserID, record.Ciphertext, record.HMAC).
		Scan(&record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save financial record: %w", err)
	}
	return nil
}

// LatestFinancialRecord retrieves the most recent bundle version for a user
func (r *PostgresRepository) LatestFinancialRecord(userID int64) (*models.FinancialRecord, error) {
	record := &models.FinancialRecord{}
	query := `
		SELECT id, user_id, ciphertext, hmac, created_at
		FROM finsight.financial_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.QueryRow(query, userID).
		Scan(&record.ID, &record.UserID, &record.Ciphertext, &record.HMAC, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find financial record: %w", err)
	}
	return record, nil
}

// ConsentingUserIDs lists users with at least one stored record
func (r *PostgresRepository) ConsentingUserIDs() ([]int64, error) {
	query := `
		SELECT DISTINCT user_id
		FROM finsight.financial_records
		ORDER BY user_id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list consenting users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate consenting users: %w", err)
	}
	return ids, nil
}
