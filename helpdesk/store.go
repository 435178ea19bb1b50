package helpdesk

import "context"

// RosterStore is the document-store surface of the two helpdesk collections.
// Both reads are unconditional full-collection fetches; no filtering, no
// paging.
type RosterStore interface {
	ListApplicants(ctx context.Context) ([]Applicant, error)
	ListHelpers(ctx context.Context) ([]Helper, error)
}
