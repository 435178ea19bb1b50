package resource

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// ResourceRow is the DynamoDB shape of a resource metadata record.
type ResourceRow struct {
	ID             string    `dynamo:"id,hash"` // Primary key
	Title          string    `dynamo:"title"`
	Description    string    `dynamo:"description"`
	Subject        string    `dynamo:"subject"`
	FileName       string    `dynamo:"file_name"`
	FileSize       int64     `dynamo:"file_size"`
	FileType       string    `dynamo:"file_type"`
	DownloadURL    string    `dynamo:"download_url"`
	UploadedBy     string    `dynamo:"uploaded_by"`
	UploadedByName string    `dynamo:"uploaded_by_name"`
	UploadedAt     time.Time `dynamo:"uploaded_at"`
	Likes          int       `dynamo:"likes"`
	Downloads      int       `dynamo:"downloads"`
	StoragePath    string    `dynamo:"storage_path"`
}

// DdbResourceTable is the DynamoDB-backed ResourceStore.
type DdbResourceTable struct {
	ddbClient     *dynamodb.Client
	tableName     string
	resourceTable *dynamo.Table
}

func NewDdbResourceTable(ddbClient *dynamodb.Client, tableName string) *DdbResourceTable {
	ddb := &DdbResourceTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.resourceTable = &table

	return ddb
}

func (ddb *DdbResourceTable) Get(ctx context.Context, id string) (*Resource, error) {
	row := new(ResourceRow)

	err := ddb.resourceTable.Get("id", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // no resource record
		}
		return nil, err
	}

	resource := Resource(*row)
	return &resource, nil
}

func (ddb *DdbResourceTable) Put(ctx context.Context, resource *Resource) error {
	row := ResourceRow(*resource)
	return ddb.resourceTable.Put(&row).Run(ctx)
}

func (ddb *DdbResourceTable) List(ctx context.Context) ([]Resource, error) {
	var rows []ResourceRow
	err := ddb.resourceTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	resources := make([]Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, Resource(row))
	}
	return resources, nil
}
