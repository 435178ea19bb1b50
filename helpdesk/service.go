package helpdesk

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/galaxylms/backend/session"
	"github.com/galaxylms/backend/srvcerror"
)

// Service loads the helpdesk rosters for admins. Non-admins never reach the
// store: the gate short-circuits before any read is issued.
type Service struct {
	logger *slog.Logger
	store  RosterStore
}

func NewService(store RosterStore) *Service {
	return &Service{
		logger: slog.Default().With("module", "helpdesk"),
		store:  store,
	}
}

// LoadRosters bulk-fetches both collections. The admin check happens first;
// without it, no store call is attempted at all.
func (s *Service) LoadRosters(ctx context.Context, sess session.Session) (*Rosters, error) {
	if !sess.Authenticated() {
		return nil, srvcerror.ErrUnauthenticated()
	}
	if !sess.IsAdmin {
		return nil, srvcerror.ErrAuthorizationDenied()
	}

	applicants, err := s.store.ListApplicants(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error listing helpdesk applicants: %w", err))
	}

	helpers, err := s.store.ListHelpers(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error listing helpdesk helpers: %w", err))
	}

	return &Rosters{
		Applicants: applicants,
		Helpers:    helpers,
	}, nil
}
