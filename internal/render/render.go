// Package render prints a conversation to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/longkey1/chatbot/internal/chat"
)

// Greeting is shown once when a chat starts. It is not part of the conversation.
const Greeting = "Hey There!\nHow can I help you today?"

const (
	userLabel  = "You"
	modelLabel = "Bot"
)

// Label returns the prompt label for a role
func Label(role chat.Role) string {
	if role == chat.RoleUser {
		return userLabel
	}
	return modelLabel
}

// Turn writes a single turn as "Label> text". Continuation lines are indented
// under the label.
func Turn(w io.Writer, t chat.Turn) {
	label := Label(t.Role)
	indent := strings.Repeat(" ", len(label)+2)
	text := strings.ReplaceAll(t.Text, "\n", "\n"+indent)
	fmt.Fprintf(w, "%s> %s\n", label, text)
}

// Conversation writes every turn in order.
func Conversation(w io.Writer, turns []chat.Turn) {
	for _, t := range turns {
		Turn(w, t)
	}
}

// GreetingTurn writes the greeting as a model turn.
func GreetingTurn(w io.Writer) {
	Turn(w, chat.ModelTurn(Greeting))
}

// InFlight reports whether any turn is a placeholder.
func InFlight(turns []chat.Turn) bool {
	for _, t := range turns {
		if t.IsPlaceholder() {
			return true
		}
	}
	return false
}
