package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"budgetflow/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget for the given period with two categories
// (Rent 600, Food 300) and a 900 planned total.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:       userID,
		Month:        month,
		Year:         year,
		Currency:     "USD",
		PlannedTotal: 900,
		ActualTotal:  0,
		IsActive:     true,
		Categories: []models.BudgetCategory{
			{Name: "Rent", PlannedAmount: 600, Order: 0},
			{Name: "Food", PlannedAmount: 300, Order: 1},
		},
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
