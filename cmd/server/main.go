package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/galaxylms/backend/conf"
	"github.com/galaxylms/backend/helpdesk"
	galaxyhttp "github.com/galaxylms/backend/http"
	"github.com/galaxylms/backend/quiz"
	"github.com/galaxylms/backend/resource"
	"github.com/galaxylms/backend/s3bucket"
	"github.com/galaxylms/backend/session"
)

func main() {
	// .env is optional; deployments set real env vars
	_ = godotenv.Load()

	cfg, err := conf.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		slog.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	ddbClient := dynamodb.NewFromConfig(awsCfg)

	resourceBucket, err := s3bucket.NewS3Bucket(ctx, cfg.AWSRegion, cfg.ResourceBucket)
	if err != nil {
		slog.Error("failed to create resource bucket", "error", err)
		os.Exit(1)
	}

	profiles := session.NewDdbProfileTable(ddbClient, cfg.UsersTable)
	resolver := session.NewResolver(profiles)

	quizSrvc := quiz.NewService(
		quiz.NewDdbQuizTable(ddbClient, cfg.QuizzesTable),
		quiz.NewDdbSubmissionTable(ddbClient, cfg.SubmissionsTable),
		resolver,
	)

	resourceSrvc := resource.NewService(
		resource.NewDdbResourceTable(ddbClient, cfg.ResourcesTable),
		resourceBucket,
		profiles,
	)

	helpdeskSrvc := helpdesk.NewService(
		helpdesk.NewDdbRosterTables(ddbClient,
			cfg.HelpdeskApplicantsTable, cfg.HelpdeskHelpersTable),
	)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			removed, err := resourceSrvc.SweepOrphans(ctx)
			if err != nil {
				slog.Error("orphan blob sweep failed", "error", err)
			} else if removed > 0 {
				slog.Info("orphan blobs removed", "count", removed)
			}
			<-ticker.C
		}
	}()

	if cfg.ChangeFeedQueueURL != "" {
		feed := quiz.NewChangeFeed(sqs.NewFromConfig(awsCfg), cfg.ChangeFeedQueueURL, quizSrvc)
		go feed.Run(ctx)
	} else {
		slog.Warn("CHANGE_FEED_QUEUE_URL not set, external quiz changes will not be streamed")
	}

	httpServer := galaxyhttp.NewHttpServer(
		resolver, quizSrvc, resourceSrvc, helpdeskSrvc, []byte(cfg.JWTKey))

	log.Printf("Starting server on %s", cfg.ListenAddr)
	err = httpServer.Start(cfg.ListenAddr)
	log.Printf("Server stopped with error: %v", err)
}
