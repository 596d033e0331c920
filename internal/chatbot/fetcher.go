package chatbot

//go:generate mockgen -destination=./fetcher_mock_test.go -package=chatbot -source=fetcher.go

import (
	"context"

	"github.com/longkey1/chatbot/internal/chat"
)

// Fetcher produces the next model turn for a conversation.
// *gemini.Client implements it.
type Fetcher interface {
	// Fetch sends the turns and returns the model's reply.
	Fetch(ctx context.Context, turns []chat.Turn) (chat.Turn, error)
}
