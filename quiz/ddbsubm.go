package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// SubmissionRow is the DynamoDB shape of a submission. The table is keyed by
// quiz id so a quiz's submissions read as one query, mirroring the original
// subcollection layout.
type SubmissionRow struct {
	QuizID    string         `dynamo:"quiz_id,hash"` // Partition key
	ID        string         `dynamo:"id,range"`     // Sort key
	UserID    string         `dynamo:"user_id"`
	Score     int            `dynamo:"score"`
	Max       int            `dynamo:"max"`
	Answers   map[string]any `dynamo:"answers,omitempty"`
	CreatedAt time.Time      `dynamo:"created_at"`
}

// DdbSubmissionTable is the DynamoDB-backed SubmissionStore.
type DdbSubmissionTable struct {
	ddbClient *dynamodb.Client
	tableName string
	submTable *dynamo.Table
}

func NewDdbSubmissionTable(ddbClient *dynamodb.Client, tableName string) *DdbSubmissionTable {
	ddb := &DdbSubmissionTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.submTable = &table

	return ddb
}

func (ddb *DdbSubmissionTable) ListByQuiz(ctx context.Context, quizID string) ([]Submission, error) {
	var rows []SubmissionRow
	err := ddb.submTable.Get("quiz_id", quizID).All(ctx, &rows)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	subms := make([]Submission, 0, len(rows))
	for _, row := range rows {
		subms = append(subms, Submission{
			ID:        row.ID,
			QuizID:    row.QuizID,
			UserID:    row.UserID,
			Score:     row.Score,
			Max:       row.Max,
			Answers:   row.Answers,
			CreatedAt: row.CreatedAt,
		})
	}
	return subms, nil
}

func (ddb *DdbSubmissionTable) Put(ctx context.Context, subm *Submission) error {
	row := SubmissionRow{
		QuizID:    subm.QuizID,
		ID:        subm.ID,
		UserID:    subm.UserID,
		Score:     subm.Score,
		Max:       subm.Max,
		Answers:   subm.Answers,
		CreatedAt: subm.CreatedAt,
	}
	// Submissions are immutable once created
	return ddb.submTable.Put(&row).If("attribute_not_exists(id)").Run(ctx)
}
