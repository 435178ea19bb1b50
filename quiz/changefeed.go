package quiz

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// ChangeEvent is what external writers (the learner app's submission
// pipeline, admin consoles) publish to the change-feed queue whenever they
// touch a document this backend did not write itself.
type ChangeEvent struct {
	Collection string `json:"collection"`
	DocID      string `json:"doc_id"`
}

// ChangeFeed polls the SQS change-feed queue and turns quiz-collection events
// into catalog re-broadcasts, so standing subscriptions also observe writes
// that bypassed this process.
type ChangeFeed struct {
	sqsClient *sqs.Client
	queueURL  string
	svc       *Service
	logger    *slog.Logger
}

func NewChangeFeed(sqsClient *sqs.Client, queueURL string, svc *Service) *ChangeFeed {
	return &ChangeFeed{
		sqsClient: sqsClient,
		queueURL:  queueURL,
		svc:       svc,
		logger:    slog.Default().With("module", "quiz-changefeed"),
	}
}

// Run polls until ctx is cancelled. Each received event is acknowledged by
// deleting the message after the broadcast went out.
func (f *ChangeFeed) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		output, err := f.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(f.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     10,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			f.logger.Error("failed to receive change-feed messages", "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range output.Messages {
			var event ChangeEvent
			if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &event); err != nil {
				f.logger.Error("failed to parse change-feed message",
					"body", aws.ToString(msg.Body), "error", err)
			} else if event.Collection == "quizzes" {
				f.svc.broadcastCatalog(ctx)
			}

			_, err := f.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(f.queueURL),
				ReceiptHandle: msg.ReceiptHandle,
			})
			if err != nil {
				f.logger.Error("failed to ack change-feed message", "error", err)
			}
		}
	}
}
