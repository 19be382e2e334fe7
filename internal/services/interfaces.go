package services

import (
	"budgetflow/internal/models"
	"budgetflow/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// CategoryInput is one allocation line submitted by a client.
type CategoryInput struct {
	Name          string
	PlannedAmount float64
	ActualAmount  float64
}

// CreateBudgetInput carries a budget creation request past the transport
// layer. TotalBudget is only a validation cap: the persisted planned total
// is recomputed from Categories.
type CreateBudgetInput struct {
	TotalBudget float64
	Currency    string
	Month       int
	Year        int
	Notes       string
	Categories  []CategoryInput
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, in CreateBudgetInput) (*models.Budget, error)
	GetUserBudgets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
}
