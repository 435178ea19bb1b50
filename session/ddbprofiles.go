package session

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// ProfileRow is the DynamoDB shape of a user profile.
type ProfileRow struct {
	ID        string    `dynamo:"id,hash"` // Primary key, equals the account id
	FullName  string    `dynamo:"full_name"`
	Email     string    `dynamo:"email"`
	IsTutor   bool      `dynamo:"is_tutor"`
	IsAdmin   bool      `dynamo:"is_admin"`
	BcryptPwd []byte    `dynamo:"bcrypt_pwd,omitempty"`
	Version   int       `dynamo:"version"` // For optimistic locking
	CreatedAt time.Time `dynamo:"created_at"`
}

// DdbProfileTable is the DynamoDB-backed ProfileStore.
type DdbProfileTable struct {
	ddbClient     *dynamodb.Client
	tableName     string
	profilesTable *dynamo.Table
}

func NewDdbProfileTable(ddbClient *dynamodb.Client, tableName string) *DdbProfileTable {
	ddb := &DdbProfileTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.profilesTable = &table

	return ddb
}

func (ddb *DdbProfileTable) Get(ctx context.Context, id string) (*Profile, error) {
	row := new(ProfileRow)

	err := ddb.profilesTable.Get("id", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // no profile record
		}
		return nil, err
	}

	profile := row.toProfile()
	return &profile, nil
}

func (ddb *DdbProfileTable) List(ctx context.Context) ([]Profile, error) {
	var rows []ProfileRow
	err := ddb.profilesTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toProfile())
	}
	return profiles, nil
}

func (ddb *DdbProfileTable) Put(ctx context.Context, profile *Profile) error {
	row := ProfileRow{
		ID:        profile.ID,
		FullName:  profile.FullName,
		Email:     profile.Email,
		IsTutor:   profile.IsTutor,
		IsAdmin:   profile.IsAdmin,
		BcryptPwd: profile.BcryptPwd,
		Version:   profile.Version,
		CreatedAt: profile.CreatedAt,
	}

	// Increment the version number for optimistic locking
	row.Version++

	put := ddb.profilesTable.Put(&row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	if err := put.Run(ctx); err != nil {
		if dynamo.IsCondCheckFailed(err) {
			return ErrVersionConflict
		}
		return err
	}

	profile.Version = row.Version
	return nil
}

func (row *ProfileRow) toProfile() Profile {
	return Profile{
		ID:        row.ID,
		FullName:  row.FullName,
		Email:     row.Email,
		IsTutor:   row.IsTutor,
		IsAdmin:   row.IsAdmin,
		BcryptPwd: row.BcryptPwd,
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
	}
}
