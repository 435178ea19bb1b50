package session

import (
	"context"
	"errors"
)

// ErrVersionConflict is returned by Put when the stored record changed since
// the caller read it.
var ErrVersionConflict = errors.New("profile version conflict")

// ProfileStore is the document-store surface the resolver needs: get-by-id,
// bulk list, create. Get returns (nil, nil) when no record exists. Put writes
// with optimistic locking: the profile's Version must match the stored record
// (a record that does not exist yet accepts any version) and is advanced on
// success.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Put(ctx context.Context, profile *Profile) error
}
