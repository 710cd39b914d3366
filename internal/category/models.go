package category

// Category is a canonical taxonomy entry. Reference data: organization-side
// operations never create or delete categories.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}
