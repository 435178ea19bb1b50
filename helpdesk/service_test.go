package helpdesk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxylms/backend/helpdesk"
	"github.com/galaxylms/backend/session"
	"github.com/galaxylms/backend/srvcerror"
)

func TestLoadRostersGate(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated caller triggers no reads", func(t *testing.T) {
		store := helpdesk.NewMemRosterStore()
		svc := helpdesk.NewService(store)

		_, err := svc.LoadRosters(ctx, session.Session{})

		var srvcErr *srvcerror.Error
		require.ErrorAs(t, err, &srvcErr)
		assert.Equal(t, srvcerror.ErrCodeUnauthenticated, srvcErr.ErrorCode())
		assert.Zero(t, store.ListCalls)
	})

	t.Run("non-admin caller triggers no reads", func(t *testing.T) {
		store := helpdesk.NewMemRosterStore()
		svc := helpdesk.NewService(store)

		_, err := svc.LoadRosters(ctx, session.Session{UserID: "u1", IsTutor: true})

		var srvcErr *srvcerror.Error
		require.ErrorAs(t, err, &srvcErr)
		assert.Equal(t, srvcerror.ErrCodeAuthorizationDenied, srvcErr.ErrorCode())
		assert.Zero(t, store.ListCalls)
	})
}

func TestLoadRosters(t *testing.T) {
	ctx := context.Background()
	store := helpdesk.NewMemRosterStore()
	store.Applicants = []helpdesk.Applicant{
		{ID: "a1", Name: "Alice", Email: "alice@example.com"},
		{ID: "a2", Name: "Bob", Email: "bob@example.com"},
	}
	store.Helpers = []helpdesk.Helper{
		{ID: "h1", Name: "Cleo", Email: "cleo@example.com", Subjects: []string{"maths"}},
	}
	svc := helpdesk.NewService(store)

	rosters, err := svc.LoadRosters(ctx, session.Session{UserID: "admin", IsAdmin: true})
	require.NoError(t, err)
	assert.Len(t, rosters.Applicants, 2)
	assert.Len(t, rosters.Helpers, 1)
	assert.Equal(t, 2, store.ListCalls)
}
