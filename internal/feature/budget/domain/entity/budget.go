// Package entity defines the domain models for the budget feature.
package entity

// Item types.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Expense categories.
const (
	CategoryGroceries     = "groceries"
	CategoryDining        = "dining"
	CategoryTransport     = "transport"
	CategoryUtilities     = "utilities"
	CategoryRent          = "rent"
	CategoryEntertainment = "entertainment"
	CategoryShopping      = "shopping"
	CategoryHealth        = "health"
	CategoryOther         = "other"
)

// Item is one income or expense line.
type Item struct {
	Description string
	Amount      float64
	Type        string // "expense" (default) or "income"
}

// CategorizedItem is an expense with its predicted category.
type CategorizedItem struct {
	Item
	Category string
}

// Recommendation is a 50/30/20 split of monthly income.
type Recommendation struct {
	MonthlyIncome float64
	Essentials    float64 // 50%
	Wants         float64 // 30%
	Savings       float64 // 20%
}
