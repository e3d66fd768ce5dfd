package domain

// Category is one of the fixed query classification labels
type Category string

const (
	CategoryAccountAccess Category = "Account Access Issue"
	CategoryBilling       Category = "Billing / Invoice Query"
	CategoryTechnical     Category = "Technical / System Support"
	CategoryFeature       Category = "Feature Request"
	CategoryFeedback      Category = "General Feedback"
)

// Categories returns the closed category set in its fixed label order.
// The order is the one handed to the semantic classifier.
func Categories() []Category {
	return []Category{
		CategoryAccountAccess,
		CategoryBilling,
		CategoryTechnical,
		CategoryFeature,
		CategoryFeedback,
	}
}

// ParseCategory returns the category whose label equals s
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c belongs to the closed category set
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// CategoryLabels returns the category labels as plain strings, preserving order
func CategoryLabels(categories []Category) []string {
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = string(c)
	}
	return labels
}
