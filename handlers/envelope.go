package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/kobbyjust/feedback-ingest/errors"
	"github.com/kobbyjust/feedback-ingest/types"
)

// requestKind tags the recognized inbound event shapes.
type requestKind int

const (
	// preflightRequest is a CORS OPTIONS probe; acknowledged with headers only.
	preflightRequest requestKind = iota
	// submissionRequest carries a feedback payload, either as a serialized
	// gateway body or as top-level fields on a direct invocation event.
	submissionRequest
)

// requestEnvelope is the result of normalizing the raw event exactly once.
// All downstream code works from the tagged variant instead of re-probing
// the event shape.
type requestEnvelope struct {
	kind       requestKind
	submission types.FeedbackSubmission
}

// eventProbe captures just enough of the raw event to classify its shape.
// Raw messages distinguish absent fields from null ones, matching the
// presence semantics of the original contract.
type eventProbe struct {
	HTTPMethod string          `json:"httpMethod"`
	Body       json.RawMessage `json:"body"`
	Name       json.RawMessage `json:"name"`
	Email      json.RawMessage `json:"email"`
}

// normalizeEvent resolves the raw Lambda event into a requestEnvelope.
//
// Classification order: OPTIONS preflight, then gateway shape (a "body"
// field holding a JSON-serialized submission), then direct shape (top-level
// "name" and "email" fields), then a 400 for anything else. A body that is
// present but fails to decode is a post-parse failure and surfaces as a 500,
// not a 400.
func normalizeEvent(raw json.RawMessage) (*requestEnvelope, *apperrors.AppError) {
	var probe eventProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, apperrors.ValidationFailed("invalid request format")
	}

	if probe.HTTPMethod == http.MethodOptions {
		return &requestEnvelope{kind: preflightRequest}, nil
	}

	env := &requestEnvelope{kind: submissionRequest}

	switch {
	case probe.Body != nil:
		var body string
		if err := json.Unmarshal(probe.Body, &body); err != nil {
			return nil, apperrors.NewDecodeError(err)
		}
		if err := json.Unmarshal([]byte(body), &env.submission); err != nil {
			return nil, apperrors.NewDecodeError(err)
		}
	case probe.Name != nil && probe.Email != nil:
		if err := json.Unmarshal(raw, &env.submission); err != nil {
			return nil, apperrors.NewDecodeError(err)
		}
	default:
		return nil, apperrors.ValidationFailed("invalid request format")
	}

	return env, nil
}
