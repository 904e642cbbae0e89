package repository

import (
	"errors"

	"github.com/finsight/finsight-service/internal/models"
)

// Common errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNoRecord       = errors.New("no financial data found for user")
)

// Repository provides persistence for users and their encrypted financial
// records.
type Repository interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)

	SaveFinancialRecord(record *models.FinancialRecord) error
	LatestFinancialRecord(userID int64) (*models.FinancialRecord, error)
	// ConsentingUserIDs lists users that have at least one stored record.
	ConsentingUserIDs() ([]int64, error)
}
