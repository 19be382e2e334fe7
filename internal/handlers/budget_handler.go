package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetflow/internal/errors"
	"budgetflow/internal/pagination"
	"budgetflow/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetCategoryRequest represents a single allocation line in a budget
// creation request.
type BudgetCategoryRequest struct {
	Name          string  `json:"name" binding:"required,max=50"`
	PlannedAmount float64 `json:"plannedAmount" binding:"min=0"`
	ActualAmount  float64 `json:"actualAmount" binding:"omitempty,min=0"`
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	TotalBudget float64                 `json:"totalBudget" binding:"required,gt=0"`
	Currency    string                  `json:"currency" binding:"omitempty,currency_code"`
	Month       int                     `json:"month" binding:"required,min=1,max=12"`
	Year        int                     `json:"year" binding:"required,min=1900"`
	Notes       string                  `json:"notes" binding:"max=500"`
	Categories  []BudgetCategoryRequest `json:"categories" binding:"omitempty,dive"`
}

// requireOwnPath checks that the :id path parameter names the authenticated
// user. The ownership check runs before the body is even read, so a caller
// probing another user's ID learns nothing about the payload rules.
func requireOwnPath(c *gin.Context) (uint, error) {
	userID, err := getUserID(c)
	if err != nil {
		return 0, err
	}
	pathID, err := parsePathID(c, "id")
	if err != nil {
		return 0, err
	}
	if pathID != userID {
		return 0, apperrors.ErrForbidden
	}
	return userID, nil
}

// CreateBudget handles the creation of a monthly budget for the user named in
// the path.
// @Summary     Create a budget
// @Description Create a monthly budget with category allocations
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "User ID (must match token)"
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} SuccessResponse "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Path user does not match token"
// @Failure     409 {object} ErrorResponse "Budget already exists for the period"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/create/{id} [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := requireOwnPath(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in := services.CreateBudgetInput{
		TotalBudget: req.TotalBudget,
		Currency:    req.Currency,
		Month:       req.Month,
		Year:        req.Year,
		Notes:       req.Notes,
		Categories:  make([]services.CategoryInput, 0, len(req.Categories)),
	}
	for _, cat := range req.Categories {
		in.Categories = append(in.Categories, services.CategoryInput{
			Name:          cat.Name,
			PlannedAmount: cat.PlannedAmount,
			ActualAmount:  cat.ActualAmount,
		})
	}

	budget, err := h.budgetService.CreateBudget(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithData(c, http.StatusCreated, "Budget created successfully", budget)
}

// GetUserBudgets handles listing budgets for the user named in the path.
// @Summary     List budgets
// @Description Get a paginated list of budgets for the user, newest period first
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "User ID (must match token)"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} SuccessResponse "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Path user does not match token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/user/{id} [get]
func (h *BudgetHandler) GetUserBudgets(c *gin.Context) {
	userID, err := requireOwnPath(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.GetUserBudgets(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithData(c, http.StatusOK, "Budgets fetched successfully", result)
}

// GetBudget handles retrieving a specific budget owned by the caller.
// @Summary     Get budget by ID
// @Description Get a specific budget with its categories
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} SuccessResponse "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithData(c, http.StatusOK, "Budget fetched successfully", budget)
}
