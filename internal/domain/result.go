package domain

import "time"

// Handler is a client handler eligible to receive routed queries
type Handler struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Load  int    `json:"load"`
}

// ClassificationPath records which classifier produced the category
type ClassificationPath string

const (
	// PathRule means a category rule matched the query
	PathRule ClassificationPath = "rule"

	// PathSemantic means the zero-shot classifier picked the category
	PathSemantic ClassificationPath = "semantic"
)

// RoutingResult is the decision produced for a single query.
// It is built once by the router and never mutated afterwards.
type RoutingResult struct {
	EmployeeName  string             `json:"employee_name"`
	EmployeeEmail string             `json:"employee_email"`
	Query         string             `json:"query"`
	Category      Category           `json:"category"`
	Team          string             `json:"team"`
	Handler       Handler            `json:"handler"`
	Timestamp     time.Time          `json:"timestamp"`
	Urgent        bool               `json:"urgent"`
	Suggestions   []string           `json:"suggestions"`
	Path          ClassificationPath `json:"path"`
	MatchedRule   int                `json:"matched_rule"` // -1 unless Path is PathRule
}
