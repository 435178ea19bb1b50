package resource

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/galaxylms/backend/session"
	"github.com/galaxylms/backend/srvcerror"
)

// Service publishes learning resources: a blob upload followed by a metadata
// record that references it. The two steps have no transaction linking them,
// so a failed metadata write triggers a compensating delete of the blob.
type Service struct {
	logger *slog.Logger

	store    ResourceStore
	blobs    BlobStore
	profiles session.ProfileStore

	validate *validator.Validate
	now      func() time.Time
}

func NewService(store ResourceStore, blobs BlobStore, profiles session.ProfileStore) *Service {
	return &Service{
		logger:   slog.Default().With("module", "resource"),
		store:    store,
		blobs:    blobs,
		profiles: profiles,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// Publish validates the input, uploads the blob, and writes the metadata
// record. Validation failures and missing sessions return before any network
// call. On any later failure a single error is reported; partial state is
// cleaned up best-effort.
func (s *Service) Publish(ctx context.Context, sess session.Session, input PublishInput) (*Resource, error) {
	if !sess.Authenticated() {
		return nil, newErrSignInRequired()
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, newErrMissingFields()
	}

	uploadedAt := s.now().UTC()
	fileName := fmt.Sprintf("%d_%s", uploadedAt.UnixMilli(), input.FileName)
	storagePath := storagePrefix + fileName

	fileType := input.FileType
	if fileType == "" {
		fileType = mimetype.Detect(input.Content).String()
	}
	fileSize := input.FileSize
	if fileSize == 0 {
		fileSize = int64(len(input.Content))
	}

	downloadURL, err := s.blobs.Upload(ctx, input.Content, storagePath, fileType, map[string]string{
		"original-name": input.FileName,
		"uploaded-by":   sess.UserID,
	})
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error uploading resource blob: %w", err))
	}

	resource := &Resource{
		ID:             uuid.New().String(),
		Title:          input.Title,
		Description:    input.Description,
		Subject:        input.Subject,
		FileName:       input.FileName,
		FileSize:       fileSize,
		FileType:       fileType,
		DownloadURL:    downloadURL,
		UploadedBy:     sess.UserID,
		UploadedByName: s.uploaderName(ctx, sess),
		UploadedAt:     uploadedAt,
		StoragePath:    storagePath,
	}

	if err := s.store.Put(ctx, resource); err != nil {
		// Compensate so the blob does not become an orphan.
		if delErr := s.blobs.Delete(ctx, storagePath); delErr != nil {
			s.logger.Error("failed to delete blob after metadata write failure",
				"storage_path", storagePath, "error", delErr)
		}
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error storing resource record: %w", err))
	}

	return resource, nil
}

// uploaderName resolves the display name to stamp on the record. A failed
// profile lookup must not abort the upload, so it only ever upgrades the
// fallback chain of account display name, then email, then "User".
func (s *Service) uploaderName(ctx context.Context, sess session.Session) string {
	name := sess.DisplayName
	if name == "" {
		name = sess.Email
	}
	if name == "" {
		name = "User"
	}

	profile, err := s.profiles.Get(ctx, sess.UserID)
	if err != nil {
		s.logger.Warn("uploader profile lookup failed", "user_id", sess.UserID, "error", err)
		return name
	}
	if profile != nil && profile.FullName != "" {
		name = profile.FullName
	}
	return name
}

// List bulk-reads the resources collection, newest first.
func (s *Service) List(ctx context.Context) ([]Resource, error) {
	resources, err := s.store.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error listing resources: %w", err))
	}
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].UploadedAt.After(resources[j].UploadedAt)
	})
	return resources, nil
}

// Download fetches a stored resource file and counts the download. The
// counter write is best-effort; a failed count must not fail the download.
func (s *Service) Download(ctx context.Context, id string) (*Resource, []byte, error) {
	resource, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error reading resource %s: %w", id, err))
	}
	if resource == nil {
		return nil, nil, newErrResourceNotFound()
	}

	exists, err := s.blobs.Exists(ctx, resource.StoragePath)
	if err != nil {
		return nil, nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error checking blob %s: %w", resource.StoragePath, err))
	}
	if !exists {
		return nil, nil, newErrResourceFileMissing()
	}

	content, err := s.blobs.Download(ctx, resource.StoragePath)
	if err != nil {
		return nil, nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error downloading blob %s: %w", resource.StoragePath, err))
	}

	resource.Downloads++
	if err := s.store.Put(ctx, resource); err != nil {
		s.logger.Warn("failed to count resource download",
			"resource_id", resource.ID, "error", err)
	}

	return resource, content, nil
}

const storagePrefix = "resources/"

// orphanGrace keeps freshly uploaded blobs out of the sweep; their metadata
// write may still be in flight.
const orphanGrace = time.Hour

// SweepOrphans deletes blobs no metadata record references. It returns how
// many blobs it removed. Keys that do not follow the upload key layout are
// left alone.
func (s *Service) SweepOrphans(ctx context.Context) (int, error) {
	keys, err := s.blobs.ListKeys(ctx, storagePrefix)
	if err != nil {
		return 0, fmt.Errorf("error listing blobs: %w", err)
	}
	resources, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing resources: %w", err)
	}

	referenced := make(map[string]bool, len(resources))
	for _, resource := range resources {
		referenced[resource.StoragePath] = true
	}

	cutoff := s.now().UTC().Add(-orphanGrace)
	removed := 0
	for _, key := range keys {
		if referenced[key] {
			continue
		}
		uploadedAt, ok := uploadTimeFromKey(key)
		if !ok || uploadedAt.After(cutoff) {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete orphan blob", "key", key, "error", err)
			continue
		}
		s.logger.Info("orphan blob deleted", "key", key)
		removed++
	}
	return removed, nil
}

// uploadTimeFromKey recovers the upload time from the {unixMillis}_{name}
// key layout.
func uploadTimeFromKey(key string) (time.Time, bool) {
	base := strings.TrimPrefix(key, storagePrefix)
	millisStr, _, found := strings.Cut(base, "_")
	if !found {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(millisStr, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis).UTC(), true
}
