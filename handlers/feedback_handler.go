// Package handlers contains the Lambda entrypoint for feedback ingestion.
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	apperrors "github.com/kobbyjust/feedback-ingest/errors"
	"github.com/kobbyjust/feedback-ingest/logger"
	"github.com/kobbyjust/feedback-ingest/services"
	"github.com/kobbyjust/feedback-ingest/store"
	"github.com/kobbyjust/feedback-ingest/types"
)

const attachmentContentType = "application/pdf"

// FeedbackHandler processes one feedback submission per invocation:
// normalize, optionally store the attachment, persist the record, notify the
// admin, respond. All three collaborators are injected so tests can
// substitute fakes.
type FeedbackHandler struct {
	feedbackStore store.FeedbackStore
	attachments   services.AttachmentStorage
	notifier      services.Notifier
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackStore store.FeedbackStore, attachments services.AttachmentStorage, notifier services.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackStore: feedbackStore,
		attachments:   attachments,
		notifier:      notifier,
	}
}

// HandleRequest is the Lambda entrypoint. It accepts the raw event so both
// the API Gateway shape and the direct-invocation shape can be normalized.
// Failures are encoded in the response; the returned error is always nil so
// the platform never retries.
func (h *FeedbackHandler) HandleRequest(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	log := logger.GetLogger()
	log.Infow("Event received", "bytes", len(raw))

	env, appErr := normalizeEvent(raw)
	if appErr != nil {
		log.Warnw("Request rejected during normalization",
			"type", appErr.Type, "error", appErr.Error())
		return errorResponse(appErr), nil
	}

	if env.kind == preflightRequest {
		return preflightResponse(), nil
	}

	record, appErr := h.process(ctx, env.submission)
	if appErr != nil {
		log.Errorw("Submission processing failed",
			"type", appErr.Type, "error", appErr.Error())
		return errorResponse(appErr), nil
	}

	log.Infow("Feedback submission completed",
		"feedbackId", record.FeedbackID,
		"email", logger.MaskEmail(record.Email),
		"hasAttachment", record.AttachmentLink != nil)

	return successResponse(), nil
}

// process runs the submission pipeline strictly sequentially: attachment
// (when supplied), record, notification. No retries, no rollback; the first
// failure aborts with its stage classification.
func (h *FeedbackHandler) process(ctx context.Context, sub types.FeedbackSubmission) (*types.FeedbackRecord, *apperrors.AppError) {
	log := logger.GetLogger()
	feedbackID := uuid.NewString()

	var attachmentLink *string
	if sub.FileBase64 != "" {
		key := feedbackID + ".pdf"

		data, err := decodeAttachment(sub.FileBase64)
		if err != nil {
			return nil, apperrors.NewDecodeError(err)
		}
		if err := h.attachments.Save(ctx, key, data, attachmentContentType); err != nil {
			return nil, apperrors.NewBlobError(err)
		}
		url, err := h.attachments.GetURL(ctx, key)
		if err != nil {
			return nil, apperrors.NewBlobError(err)
		}
		attachmentLink = &url
	}

	record := &types.FeedbackRecord{
		FeedbackID:     feedbackID,
		Name:           sub.Name,
		Email:          sub.Email,
		Message:        sub.Message,
		AttachmentLink: attachmentLink,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.feedbackStore.SaveFeedback(ctx, record); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	if err := h.notifier.SendFeedbackNotification(ctx, record); err != nil {
		// The record stays persisted; the caller still sees a 500.
		log.Warnw("Record persisted but notification failed",
			"feedbackId", record.FeedbackID)
		return nil, apperrors.NewNotificationError(err)
	}

	return record, nil
}

// decodeAttachment decodes the submitted attachment payload. Everything up
// to and including the last comma is discarded, so both raw base64 and
// data-URI strings (data:application/pdf;base64,...) are accepted.
func decodeAttachment(payload string) ([]byte, error) {
	if idx := strings.LastIndex(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
}

// fullCORSHeaders are returned on success and preflight responses.
func fullCORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "*",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
	}
}

// minimalCORSHeaders are returned on the error paths.
func minimalCORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin": "*",
	}
}

func preflightResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    fullCORSHeaders(),
	}
}

func successResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    fullCORSHeaders(),
		Body:       marshalBody(types.SubmitResponse{Message: types.MsgSubmitted}),
	}
}

// errorResponse collapses a stage-classified error to the uniform external
// contract: 400 with a fixed message, or 500 carrying the raw error text.
func errorResponse(appErr *apperrors.AppError) events.APIGatewayProxyResponse {
	body := types.SubmitResponse{Message: types.MsgInternalError, Error: appErr.RawText()}
	if appErr.HTTPStatus == http.StatusBadRequest {
		body = types.SubmitResponse{Message: types.MsgInvalidRequest}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: appErr.HTTPStatus,
		Headers:    minimalCORSHeaders(),
		Body:       marshalBody(body),
	}
}

func marshalBody(resp types.SubmitResponse) string {
	b, err := json.Marshal(resp)
	if err != nil {
		// SubmitResponse contains only strings; this cannot happen.
		return `{"message":"Internal server error"}`
	}
	return string(b)
}
