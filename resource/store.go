package resource

import "context"

// ResourceStore is the document-store surface of the resources collection.
// Get returns (nil, nil) when no record exists.
type ResourceStore interface {
	Get(ctx context.Context, id string) (*Resource, error)
	Put(ctx context.Context, resource *Resource) error
	List(ctx context.Context) ([]Resource, error)
}

// BlobStore is the blob-storage surface the publisher needs. Upload returns
// the durable download URL of the stored object. Satisfied by
// *s3bucket.S3Bucket.
type BlobStore interface {
	Upload(ctx context.Context, content []byte, key string, mediaType string, metadata map[string]string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}
