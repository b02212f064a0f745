// Package dynamo implements the feedback store on DynamoDB.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/kobbyjust/feedback-ingest/logger"
	"github.com/kobbyjust/feedback-ingest/types"
)

// PutItemAPI is the subset of the DynamoDB client used by the store.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// FeedbackStore writes feedback records to a DynamoDB table keyed by
// feedback_id. A nil AttachmentLink is stored as an explicit NULL attribute
// so the record round-trips field for field.
type FeedbackStore struct {
	client    PutItemAPI
	tableName string
}

// NewFeedbackStore creates a DynamoDB-backed feedback store.
func NewFeedbackStore(client PutItemAPI, tableName string) *FeedbackStore {
	return &FeedbackStore{
		client:    client,
		tableName: tableName,
	}
}

// SaveFeedback writes the record as a single PutItem. The key is always
// fresh, so this is always an insert and no condition expression is needed.
func (s *FeedbackStore) SaveFeedback(ctx context.Context, record *types.FeedbackRecord) error {
	log := logger.GetLogger()

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		log.Errorw("DynamoDB put failed",
			"table", s.tableName,
			"feedbackId", record.FeedbackID,
			"error", err)
		return fmt.Errorf("dynamodb put item failed: %w", err)
	}

	log.Infow("Feedback record persisted",
		"table", s.tableName,
		"feedbackId", record.FeedbackID)
	return nil
}
