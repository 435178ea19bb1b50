package helpdesk

import "time"

// Applicant is a pending helpdesk helper application.
type Applicant struct {
	ID        string
	Name      string
	Email     string
	Message   string
	AppliedAt time.Time
}

// Helper is an accepted helpdesk staff member.
type Helper struct {
	ID       string
	Name     string
	Email    string
	Subjects []string
}

// Rosters is both flat collections, materialized in one load.
type Rosters struct {
	Applicants []Applicant
	Helpers    []Helper
}
