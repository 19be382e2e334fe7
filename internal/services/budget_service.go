package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "budgetflow/internal/errors"
	"budgetflow/internal/models"
	"budgetflow/internal/money"
	"budgetflow/internal/pagination"
)

// maxNotesLength bounds the free-text notes field.
const maxNotesLength = 500

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget validates and persists a new monthly budget. Client input is
// never trusted: validation is re-run here regardless of what the client
// checked, planned/actual totals are recomputed from the category list, and
// the one-budget-per-(user, month, year) invariant is enforced by the unique
// index rather than a read-then-write check, so concurrent creates for the
// same period produce exactly one winner.
func (s *budgetService) CreateBudget(userID uint, in CreateBudgetInput) (*models.Budget, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = string(money.USD)
	}

	budget := &models.Budget{
		UserID:     userID,
		Month:      in.Month,
		Year:       in.Year,
		Currency:   currency,
		Notes:      in.Notes,
		IsActive:   true,
		Categories: make([]models.BudgetCategory, 0, len(in.Categories)),
	}

	var plannedTotal, actualTotal float64
	for i, cat := range in.Categories {
		planned := cat.PlannedAmount
		actual := cat.ActualAmount
		plannedTotal += planned
		actualTotal += actual
		budget.Categories = append(budget.Categories, models.BudgetCategory{
			Name:          strings.TrimSpace(cat.Name),
			PlannedAmount: planned,
			ActualAmount:  actual,
			Order:         i,
		})
	}
	budget.PlannedTotal = plannedTotal
	budget.ActualTotal = actualTotal

	if err := s.db.Create(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.WithMessage(apperrors.ErrBudgetExists,
				fmt.Sprintf("Budget for %d/%d already exists", in.Month, in.Year))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// validateInput performs the structural and domain validation for budget
// creation: field ranges first, then the allocation-sum rule.
func (s *budgetService) validateInput(in CreateBudgetInput) error {
	if math.IsNaN(in.TotalBudget) || math.IsInf(in.TotalBudget, 0) || in.TotalBudget <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Total budget must be a positive number")
	}
	if in.Month < 1 || in.Month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidBudgetPeriod, "Month must be between 1 and 12")
	}
	if in.Year < 1900 {
		return apperrors.WithMessage(apperrors.ErrInvalidBudgetPeriod, "Year must be 1900 or later")
	}
	if currentYear := time.Now().Year(); in.Year > currentYear {
		return apperrors.WithMessage(apperrors.ErrInvalidBudgetPeriod,
			fmt.Sprintf("Year cannot be in the future (max %d)", currentYear))
	}
	if in.Currency != "" && !money.Valid(in.Currency) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("Unsupported currency %q", in.Currency))
	}
	if len(in.Notes) > maxNotesLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Notes must be under 500 characters")
	}

	var plannedTotal float64
	for i, cat := range in.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidBudgetCategories,
				fmt.Sprintf("Category at index %d has an invalid or empty name", i))
		}
		if len(name) > 50 {
			return apperrors.WithMessage(apperrors.ErrInvalidBudgetCategories,
				fmt.Sprintf("Category at index %d has a name longer than 50 characters", i))
		}
		if math.IsNaN(cat.PlannedAmount) || cat.PlannedAmount < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidBudgetCategories,
				fmt.Sprintf("Category at index %d has an invalid planned amount", i))
		}
		if math.IsNaN(cat.ActualAmount) || cat.ActualAmount < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidBudgetCategories,
				fmt.Sprintf("Category at index %d has an invalid actual amount", i))
		}
		plannedTotal += cat.PlannedAmount
	}

	if plannedTotal > in.TotalBudget {
		return apperrors.ErrAllocationExceedsTotal
	}
	return nil
}

// GetUserBudgets returns the user's budgets, newest period first, with
// categories in wizard order.
func (s *budgetService) GetUserBudgets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	err := base.
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Scopes(pagination.Ordered("year DESC, month DESC"), pagination.Paginate(page)).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("id = ? AND user_id = ?", budgetID, userID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}
