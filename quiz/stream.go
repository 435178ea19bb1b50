package quiz

import (
	"context"
	"fmt"

	"github.com/galaxylms/backend/session"
	"github.com/galaxylms/backend/srvcerror"
)

// catalogListener is one standing catalog subscription. The session it was
// opened with decides which filter it re-evaluates on every change.
type catalogListener struct {
	sess session.Session
	ch   chan []Quiz
}

// WatchCatalog opens exactly one standing catalog subscription for the
// caller. The current snapshot is delivered immediately, then the full
// matching result set is re-delivered wholesale after every quiz change.
// Cancelling ctx removes the listener and closes the channel; that is the
// only way to unsubscribe.
func (s *Service) WatchCatalog(ctx context.Context, sess session.Session) (<-chan []Quiz, error) {
	snapshot, err := s.catalogSnapshot(ctx, sess)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error loading initial catalog snapshot: %w", err))
	}

	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()

	ch := make(chan []Quiz, 1)
	ch <- snapshot

	listener := &catalogListener{sess: sess, ch: ch}
	s.catalogSubs = append(s.catalogSubs, listener)

	go func() {
		<-ctx.Done()
		s.listenerLock.Lock()
		defer s.listenerLock.Unlock()
		for i, l := range s.catalogSubs {
			if l == listener {
				s.catalogSubs = append(s.catalogSubs[:i], s.catalogSubs[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch, nil
}

// broadcastCatalog re-evaluates every standing subscription and pushes the
// fresh snapshot. A listener that has not consumed the previous snapshot gets
// it replaced; only the latest result set matters.
func (s *Service) broadcastCatalog(ctx context.Context) {
	// The mutating request may be cancelled as soon as its response is
	// written; that must not abort the refresh for the other listeners.
	ctx = context.WithoutCancel(ctx)

	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()

	for _, listener := range s.catalogSubs {
		snapshot, err := s.catalogSnapshot(ctx, listener.sess)
		if err != nil {
			s.logger.Error("failed to refresh catalog snapshot for listener",
				"user_id", listener.sess.UserID, "error", err)
			continue
		}

		select {
		case <-listener.ch:
			// dropped the stale pending snapshot
		default:
		}

		select {
		case listener.ch <- snapshot:
		default:
			s.logger.Error("failed to send catalog snapshot to listener",
				"user_id", listener.sess.UserID)
		}
	}
}
