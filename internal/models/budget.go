package models

// Budget is a user's spending plan for one calendar month. A user can have
// at most one budget per (month, year): the composite unique index is the
// durable form of that invariant, so concurrent creates for the same period
// resolve to exactly one winner at the storage layer.
type Budget struct {
	Base
	UserID   uint   `gorm:"not null;uniqueIndex:idx_budgets_user_period" json:"user_id"`
	Month    int    `gorm:"not null;uniqueIndex:idx_budgets_user_period" json:"month"`
	Year     int    `gorm:"not null;uniqueIndex:idx_budgets_user_period" json:"year"`
	Currency string `gorm:"not null;default:USD" json:"currency"`

	// PlannedTotal and ActualTotal are derived: recomputed from the category
	// list on every save, never taken from client-submitted totals.
	PlannedTotal float64 `gorm:"not null" json:"planned_total"`
	ActualTotal  float64 `gorm:"not null" json:"actual_total"`

	Notes    string `gorm:"size:500" json:"notes,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Categories []BudgetCategory `gorm:"foreignKey:BudgetID" json:"categories"`
}

// BudgetCategory is one allocation line inside a budget. Order preserves the
// position the user gave it in the entry wizard.
type BudgetCategory struct {
	Base
	BudgetID      uint    `gorm:"not null;index" json:"budget_id"`
	Name          string  `gorm:"size:50;not null" json:"name"`
	PlannedAmount float64 `gorm:"not null" json:"planned_amount"`
	ActualAmount  float64 `gorm:"not null;default:0" json:"actual_amount"`
	Order         int     `gorm:"column:sort_order;not null" json:"order"`
}
