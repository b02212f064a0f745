package types

// FeedbackRecord is the single item written to the feedback table per
// submission. It is immutable after creation; there is no update or delete
// path anywhere in this system.
type FeedbackRecord struct {
	FeedbackID     string  `json:"feedback_id" dynamodbav:"feedback_id"`
	Name           string  `json:"name" dynamodbav:"name"`
	Email          string  `json:"email" dynamodbav:"email"`
	Message        string  `json:"message" dynamodbav:"message"`
	AttachmentLink *string `json:"attachment_link" dynamodbav:"attachment_link"`
	CreatedAt      string  `json:"created_at" dynamodbav:"created_at"`
}

// FeedbackSubmission is the caller-supplied payload, accepted either as a
// JSON request body or as top-level fields on a direct invocation event.
// FileBase64 may be raw base64 or a data-URI string.
type FeedbackSubmission struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	FileBase64 string `json:"file_base64,omitempty"`
}
