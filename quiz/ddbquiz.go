package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// QuizRow is the DynamoDB shape of a quiz record.
type QuizRow struct {
	ID          string           `dynamo:"id,hash"` // Primary key
	OwnerID     string           `dynamo:"owner_id"`
	Title       string           `dynamo:"title"`
	Description string           `dynamo:"description"`
	Published   bool             `dynamo:"published"`
	CreatedAt   time.Time        `dynamo:"created_at"`
	Questions   []map[string]any `dynamo:"questions,omitempty"`
}

// DdbQuizTable is the DynamoDB-backed QuizStore.
type DdbQuizTable struct {
	ddbClient *dynamodb.Client
	tableName string
	quizTable *dynamo.Table
}

func NewDdbQuizTable(ddbClient *dynamodb.Client, tableName string) *DdbQuizTable {
	ddb := &DdbQuizTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.quizTable = &table

	return ddb
}

func (ddb *DdbQuizTable) Get(ctx context.Context, id string) (*Quiz, error) {
	row := new(QuizRow)

	err := ddb.quizTable.Get("id", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	quiz := row.toQuiz()
	return &quiz, nil
}

func (ddb *DdbQuizTable) ListByOwner(ctx context.Context, ownerID string) ([]Quiz, error) {
	var rows []QuizRow
	err := ddb.quizTable.Scan().Filter("'owner_id' = ?", ownerID).All(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rowsToQuizzes(rows), nil
}

func (ddb *DdbQuizTable) ListPublished(ctx context.Context) ([]Quiz, error) {
	var rows []QuizRow
	err := ddb.quizTable.Scan().Filter("'published' = ?", true).All(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rowsToQuizzes(rows), nil
}

func (ddb *DdbQuizTable) Put(ctx context.Context, quiz *Quiz) error {
	row := QuizRow{
		ID:          quiz.ID,
		OwnerID:     quiz.OwnerID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Published:   quiz.Published,
		CreatedAt:   quiz.CreatedAt,
		Questions:   quiz.Questions,
	}
	return ddb.quizTable.Put(&row).Run(ctx)
}

func (ddb *DdbQuizTable) Delete(ctx context.Context, id string) error {
	return ddb.quizTable.Delete("id", id).Run(ctx)
}

func (row *QuizRow) toQuiz() Quiz {
	return Quiz{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Title:       row.Title,
		Description: row.Description,
		Published:   row.Published,
		CreatedAt:   row.CreatedAt,
		Questions:   row.Questions,
	}
}

func rowsToQuizzes(rows []QuizRow) []Quiz {
	quizzes := make([]Quiz, 0, len(rows))
	for _, row := range rows {
		quizzes = append(quizzes, row.toQuiz())
	}
	return quizzes
}
