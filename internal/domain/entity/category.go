// Package entity defines the core business entities for the domain layer.
package entity

// CategoryType represents which side of the ledger a category applies to.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeBoth    CategoryType = "both"
)

// UnknownCategoryName is shown for transactions whose category is not in the catalog.
const UnknownCategoryName = "Unknown"

// UnknownCategoryColor is the neutral color used for unknown categories.
const UnknownCategoryColor = "#6B7280"

// UnknownCategoryIcon is the icon used for unknown categories.
const UnknownCategoryIcon = "help-circle"

// Category is static reference data. The catalog is fixed at process start.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
	Type  CategoryType
}

// AppliesTo reports whether the category can be used for the transaction type.
func (c Category) AppliesTo(t TransactionType) bool {
	return c.Type == CategoryTypeBoth || string(c.Type) == string(t)
}

// DefaultCategories is the built-in category catalog.
var DefaultCategories = []Category{
	// Expense categories
	{ID: "1", Name: "Food & Dining", Icon: "utensils", Color: "#EF4444", Type: CategoryTypeExpense},
	{ID: "2", Name: "Transportation", Icon: "car", Color: "#F97316", Type: CategoryTypeExpense},
	{ID: "3", Name: "Shopping", Icon: "shopping-bag", Color: "#8B5CF6", Type: CategoryTypeExpense},
	{ID: "4", Name: "Entertainment", Icon: "film", Color: "#EC4899", Type: CategoryTypeExpense},
	{ID: "5", Name: "Bills & Utilities", Icon: "zap", Color: "#F59E0B", Type: CategoryTypeExpense},
	{ID: "6", Name: "Healthcare", Icon: "heart", Color: "#EF4444", Type: CategoryTypeExpense},
	{ID: "7", Name: "Education", Icon: "book", Color: "#3B82F6", Type: CategoryTypeExpense},
	{ID: "8", Name: "Travel", Icon: "plane", Color: "#06B6D4", Type: CategoryTypeExpense},
	{ID: "9", Name: "Housing", Icon: "home", Color: "#84CC16", Type: CategoryTypeExpense},
	{ID: "10", Name: "Personal Care", Icon: "scissors", Color: "#F59E0B", Type: CategoryTypeExpense},

	// Income categories
	{ID: "11", Name: "Salary", Icon: "briefcase", Color: "#10B981", Type: CategoryTypeIncome},
	{ID: "12", Name: "Freelance", Icon: "laptop", Color: "#10B981", Type: CategoryTypeIncome},
	{ID: "13", Name: "Investment", Icon: "trending-up", Color: "#10B981", Type: CategoryTypeIncome},
	{ID: "14", Name: "Gift", Icon: "gift", Color: "#10B981", Type: CategoryTypeIncome},
	{ID: "15", Name: "Business", Icon: "building", Color: "#10B981", Type: CategoryTypeIncome},
	{ID: "16", Name: "Other Income", Icon: "plus-circle", Color: "#10B981", Type: CategoryTypeIncome},
}

// FindCategory looks up a catalog category by ID.
func FindCategory(id string) (Category, bool) {
	for _, c := range DefaultCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ResolveCategory returns the catalog category for id, or an Unknown
// placeholder carrying the dangling id.
func ResolveCategory(id string) Category {
	if c, ok := FindCategory(id); ok {
		return c
	}
	return Category{
		ID:    id,
		Name:  UnknownCategoryName,
		Icon:  UnknownCategoryIcon,
		Color: UnknownCategoryColor,
		Type:  CategoryTypeBoth,
	}
}

// CategoriesFor returns the catalog categories usable for the transaction type.
func CategoriesFor(t TransactionType) []Category {
	result := make([]Category, 0, len(DefaultCategories))
	for _, c := range DefaultCategories {
		if c.AppliesTo(t) {
			result = append(result, c)
		}
	}
	return result
}
