package entity

import "time"

// Default look for user-created categories when none is provided.
const (
	DefaultCategoryColor = "#6366f1"
	DefaultCategoryIcon  = "tag"
)

// Category is a user-scoped spending category. The eight default
// categories are seeded at registration and are exempt from deletion.
type Category struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRef is the expanded category projection embedded in expense
// and report payloads.
type CategoryRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// DefaultCategories returns the fixed set seeded for every new user.
// Static configuration data, not persisted anywhere else.
func DefaultCategories() []Category {
	specs := []struct {
		name  string
		color string
		icon  string
	}{
		{"Food & Dining", "#ef4444", "utensils"},
		{"Transportation", "#f97316", "car"},
		{"Shopping", "#eab308", "shopping-bag"},
		{"Entertainment", "#8b5cf6", "film"},
		{"Bills & Utilities", "#06b6d4", "file-text"},
		{"Healthcare", "#22c55e", "heart-pulse"},
		{"Education", "#3b82f6", "graduation-cap"},
		{"Other", "#64748b", "circle-ellipsis"},
	}
	out := make([]Category, 0, len(specs))
	for _, s := range specs {
		out = append(out, Category{Name: s.name, Color: s.color, Icon: s.icon, IsDefault: true})
	}
	return out
}
