package resource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxylms/backend/session"
	"github.com/galaxylms/backend/srvcerror"
)

func newTestService(t *testing.T) (*Service, *MemResourceStore, *MemBlobStore, *session.MemProfileStore) {
	t.Helper()
	store := NewMemResourceStore()
	blobs := NewMemBlobStore()
	profiles := session.NewMemProfileStore()
	svc := NewService(store, blobs, profiles)
	return svc, store, blobs, profiles
}

func validInput() PublishInput {
	return PublishInput{
		Title:       "Algebra notes",
		Description: "Chapter 3 summary",
		Subject:     "Mathematics",
		FileName:    "notes.pdf",
		FileType:    "application/pdf",
		Content:     []byte("%PDF-1.4 ..."),
	}
}

func TestPublishRequiresSession(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs, _ := newTestService(t)

	_, err := svc.Publish(ctx, session.Session{}, validInput())

	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, ErrCodeSignInRequired, srvcErr.ErrorCode())
	assert.Zero(t, blobs.UploadCalls)
	assert.Zero(t, store.PutCalls)
}

func TestPublishValidation(t *testing.T) {
	ctx := context.Background()
	sess := session.Session{UserID: "u1", Email: "u1@example.com"}

	broken := map[string]func(*PublishInput){
		"empty title":       func(in *PublishInput) { in.Title = "" },
		"empty description": func(in *PublishInput) { in.Description = "" },
		"empty subject":     func(in *PublishInput) { in.Subject = "" },
		"no file selected":  func(in *PublishInput) { in.FileName = ""; in.Content = nil },
	}

	for name, mutate := range broken {
		t.Run(name, func(t *testing.T) {
			svc, store, blobs, _ := newTestService(t)
			input := validInput()
			mutate(&input)

			_, err := svc.Publish(ctx, sess, input)

			var srvcErr *srvcerror.Error
			require.ErrorAs(t, err, &srvcErr)
			assert.Equal(t, ErrCodeMissingFields, srvcErr.ErrorCode())
			// validation must short-circuit before any network call
			assert.Zero(t, blobs.UploadCalls)
			assert.Zero(t, store.PutCalls)
		})
	}
}

func TestPublishStorageKeyAndRecord(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs, profiles := newTestService(t)

	uploadedAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	svc.now = func() time.Time { return uploadedAt }

	require.NoError(t, profiles.Put(ctx, &session.Profile{
		ID: "u1", FullName: "Tina Tutor", Email: "tina@example.com",
	}))

	input := validInput()
	input.Content = bytes.Repeat([]byte{0x25}, 2*1024*1024) // 2MB file
	input.FileSize = 0                                      // force derivation from content

	sess := session.Session{UserID: "u1", Email: "tina@example.com"}
	published, err := svc.Publish(ctx, sess, input)
	require.NoError(t, err)

	wantPath := fmt.Sprintf("resources/%d_notes.pdf", uploadedAt.UnixMilli())
	assert.Equal(t, wantPath, published.StoragePath)
	assert.Equal(t, int64(2097152), published.FileSize)
	assert.Equal(t, "application/pdf", published.FileType)
	assert.Equal(t, "notes.pdf", published.FileName)
	assert.Equal(t, "u1", published.UploadedBy)
	assert.Equal(t, "Tina Tutor", published.UploadedByName)
	assert.Equal(t, uploadedAt, published.UploadedAt)
	assert.Zero(t, published.Likes)
	assert.Zero(t, published.Downloads)
	assert.Equal(t, "https://blobs.test/"+wantPath, published.DownloadURL)

	assert.True(t, blobs.Has(wantPath))
	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *published, records[0])
}

func TestPublishCompensatingDelete(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs, _ := newTestService(t)
	store.FailWith = errors.New("write throttled")

	sess := session.Session{UserID: "u1", Email: "u1@example.com"}
	_, err := svc.Publish(ctx, sess, validInput())

	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, srvcerror.ErrCodeInternalServerError, srvcErr.ErrorCode())

	// the uploaded blob must not be left behind as an orphan
	assert.Equal(t, 1, blobs.UploadCalls)
	assert.Equal(t, 1, blobs.DeleteCalls)
}

func TestUploaderNameFallbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("account display name when no profile", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		sess := session.Session{UserID: "u1", Email: "u1@example.com", DisplayName: "U. One"}
		published, err := svc.Publish(ctx, sess, validInput())
		require.NoError(t, err)
		assert.Equal(t, "U. One", published.UploadedByName)
	})

	t.Run("email when no display name", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		sess := session.Session{UserID: "u1", Email: "u1@example.com"}
		published, err := svc.Publish(ctx, sess, validInput())
		require.NoError(t, err)
		assert.Equal(t, "u1@example.com", published.UploadedByName)
	})

	t.Run("lookup failure does not abort the upload", func(t *testing.T) {
		svc, _, _, profiles := newTestService(t)
		profiles.FailWith = errors.New("table unavailable")
		sess := session.Session{UserID: "u1"}
		published, err := svc.Publish(ctx, sess, validInput())
		require.NoError(t, err)
		assert.Equal(t, "User", published.UploadedByName)
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, _, err := svc.Download(ctx, "nope")
		var srvcErr *srvcerror.Error
		require.ErrorAs(t, err, &srvcErr)
		assert.Equal(t, ErrCodeResourceNotFound, srvcErr.ErrorCode())
	})

	t.Run("blob gone behind the record", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)
		require.NoError(t, store.Put(ctx, &Resource{ID: "r1", StoragePath: "resources/1_gone.pdf"}))

		_, _, err := svc.Download(ctx, "r1")
		var srvcErr *srvcerror.Error
		require.ErrorAs(t, err, &srvcErr)
		assert.Equal(t, ErrCodeResourceFileMissing, srvcErr.ErrorCode())
	})

	t.Run("download returns content and counts", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)
		sess := session.Session{UserID: "u1", Email: "u1@example.com"}
		published, err := svc.Publish(ctx, sess, validInput())
		require.NoError(t, err)

		downloaded, content, err := svc.Download(ctx, published.ID)
		require.NoError(t, err)
		assert.Equal(t, validInput().Content, content)
		assert.Equal(t, 1, downloaded.Downloads)

		stored, err := store.Get(ctx, published.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 1, stored.Downloads)
	})
}

func TestSweepOrphans(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs, _ := newTestService(t)

	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	oldOrphan := fmt.Sprintf("resources/%d_old.pdf", now.Add(-2*time.Hour).UnixMilli())
	freshOrphan := fmt.Sprintf("resources/%d_fresh.pdf", now.Add(-time.Minute).UnixMilli())
	referenced := fmt.Sprintf("resources/%d_kept.pdf", now.Add(-3*time.Hour).UnixMilli())
	oddLayout := "resources/odd-layout.pdf"
	for _, key := range []string{oldOrphan, freshOrphan, referenced, oddLayout} {
		_, err := blobs.Upload(ctx, []byte("x"), key, "application/pdf", nil)
		require.NoError(t, err)
	}
	require.NoError(t, store.Put(ctx, &Resource{ID: "r1", StoragePath: referenced}))

	removed, err := svc.SweepOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, blobs.Has(oldOrphan))
	assert.True(t, blobs.Has(freshOrphan))
	assert.True(t, blobs.Has(referenced))
	assert.True(t, blobs.Has(oddLayout))
}

func TestDetectsContentTypeWhenMissing(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	input := validInput()
	input.FileType = ""
	input.Content = []byte("%PDF-1.4\n1 0 obj\n")

	sess := session.Session{UserID: "u1", Email: "u1@example.com"}
	published, err := svc.Publish(ctx, sess, input)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", published.FileType)
}
