package types

// SubmitResponse is the JSON body returned to the caller. Error carries the
// raw collaborator error text on the 500 path and is omitted otherwise.
type SubmitResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Fixed response messages. These are part of the external contract.
const (
	MsgSubmitted      = "Feedback submitted successfully"
	MsgInvalidRequest = "Invalid request format."
	MsgInternalError  = "Internal server error"
)
