// Package chat holds the in-memory conversation shown by the chatbot and
// replayed to the remote model on every request.
package chat

// Role identifies the author of a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Placeholder is the text of the transient turn shown while a request is in flight.
const Placeholder = "Thinking..."

// Turn represents a single message in a conversation
type Turn struct {
	Role Role   `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// UserTurn returns a turn authored by the user.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

// ModelTurn returns a turn authored by the model.
func ModelTurn(text string) Turn {
	return Turn{Role: RoleModel, Text: text}
}

// PlaceholderTurn returns the in-flight marker turn.
func PlaceholderTurn() Turn {
	return ModelTurn(Placeholder)
}

// IsPlaceholder reports whether the turn is treated as the in-flight marker.
// Only the text is compared, so a real reply reading exactly "Thinking..."
// is indistinguishable from the marker.
func (t Turn) IsPlaceholder() bool {
	return t.Text == Placeholder
}

// Result is the outcome of one fetch: a model turn, or the error that
// prevented one.
type Result struct {
	Turn Turn
	Err  error
}

// OK reports whether the result carries a turn.
func (r Result) OK() bool {
	return r.Err == nil
}
