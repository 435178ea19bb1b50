package resource

import "time"

// Resource is the metadata record that references an uploaded blob. Field
// names mirror what the mobile clients already read.
type Resource struct {
	ID             string
	Title          string
	Description    string
	Subject        string
	FileName       string
	FileSize       int64
	FileType       string
	DownloadURL    string
	UploadedBy     string
	UploadedByName string
	UploadedAt     time.Time
	Likes          int
	Downloads      int
	StoragePath    string
}

// PublishInput is everything a publish request carries. All four user-facing
// fields plus the selected file are required; nothing is sent to the backend
// until they validate.
type PublishInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Subject     string `validate:"required"`
	FileName    string `validate:"required"`
	FileType    string
	FileSize    int64
	Content     []byte `validate:"required"`
}
