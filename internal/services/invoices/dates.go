package invoices

import (
	"time"

	"invoice-management-backend/internal/schemas"
)

// ResolveDates fills in the dates a create request left out: the issue date
// defaults to today's UTC calendar date, the due date to the resolved issue
// date plus 15 days. Both come back as YYYY-MM-DD strings, which is how dates
// cross the store boundary.
func ResolveDates(issueDate, dueDate *string, now time.Time) (issue, due string) {
	if issueDate != nil && *issueDate != "" {
		issue = *issueDate
	} else {
		issue = now.UTC().Format(schemas.DateLayout)
	}

	if dueDate != nil && *dueDate != "" {
		due = *dueDate
		return issue, due
	}

	base, err := time.Parse(schemas.DateLayout, issue)
	if err != nil {
		// supplied dates are format-checked at the schema layer
		base = now.UTC()
	}
	due = base.AddDate(0, 0, 15).Format(schemas.DateLayout)
	return issue, due
}
