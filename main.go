package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/kobbyjust/feedback-ingest/config"
	"github.com/kobbyjust/feedback-ingest/handlers"
	"github.com/kobbyjust/feedback-ingest/logger"
	"github.com/kobbyjust/feedback-ingest/services"
	"github.com/kobbyjust/feedback-ingest/store/dynamo"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// One shared AWS config; credentials come from the Lambda execution role.
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	feedbackStore := dynamo.NewFeedbackStore(dynamodb.NewFromConfig(awsCfg), cfg.Storage.TableName)
	attachments := services.NewS3AttachmentStorage(s3.NewFromConfig(awsCfg), cfg.Storage.BucketName)

	var notifier services.Notifier
	switch cfg.Email.Provider {
	case config.ProviderResend:
		notifier = services.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.AdminAddress)
	default:
		notifier = services.NewSESEmailService(ses.NewFromConfig(awsCfg), cfg.Email.AdminAddress)
	}

	handler := handlers.NewFeedbackHandler(feedbackStore, attachments, notifier)

	lambda.Start(handler.HandleRequest)
}
