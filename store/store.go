// Package store defines the persistence interface for feedback records.
package store

import (
	"context"

	"github.com/kobbyjust/feedback-ingest/types"
)

// FeedbackStore persists feedback records. Implementations must treat every
// call as an insert: feedback IDs are freshly generated per submission, so a
// put can never overwrite prior state.
type FeedbackStore interface {
	SaveFeedback(ctx context.Context, record *types.FeedbackRecord) error
}
