package helpdesk

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

type ApplicantRow struct {
	ID        string    `dynamo:"id,hash"` // Primary key
	Name      string    `dynamo:"name"`
	Email     string    `dynamo:"email"`
	Message   string    `dynamo:"message"`
	AppliedAt time.Time `dynamo:"applied_at"`
}

type HelperRow struct {
	ID       string   `dynamo:"id,hash"` // Primary key
	Name     string   `dynamo:"name"`
	Email    string   `dynamo:"email"`
	Subjects []string `dynamo:"subjects,omitempty"`
}

// DdbRosterTables is the DynamoDB-backed RosterStore over the two flat
// helpdesk collections.
type DdbRosterTables struct {
	ddbClient       *dynamodb.Client
	applicantsTable *dynamo.Table
	helpersTable    *dynamo.Table
}

func NewDdbRosterTables(ddbClient *dynamodb.Client, applicantsTableName, helpersTableName string) *DdbRosterTables {
	ddb := &DdbRosterTables{
		ddbClient: ddbClient,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	applicants := db.Table(applicantsTableName)
	helpers := db.Table(helpersTableName)
	ddb.applicantsTable = &applicants
	ddb.helpersTable = &helpers

	return ddb
}

func (ddb *DdbRosterTables) ListApplicants(ctx context.Context) ([]Applicant, error) {
	var rows []ApplicantRow
	err := ddb.applicantsTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	applicants := make([]Applicant, 0, len(rows))
	for _, row := range rows {
		applicants = append(applicants, Applicant(row))
	}
	return applicants, nil
}

func (ddb *DdbRosterTables) ListHelpers(ctx context.Context) ([]Helper, error) {
	var rows []HelperRow
	err := ddb.helpersTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	helpers := make([]Helper, 0, len(rows))
	for _, row := range rows {
		helpers = append(helpers, Helper(row))
	}
	return helpers, nil
}
