// Package chatbot drives a chat session: it records user input, marks the
// request in flight, asks the Fetcher for a reply and settles the result in
// the conversation.
package chatbot

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/longkey1/chatbot/internal/chat"
	"github.com/longkey1/chatbot/internal/gemini"
	"github.com/sirupsen/logrus"
)

// ErrEmptyInput is returned by Submit for blank messages.
var ErrEmptyInput = errors.New("message is empty")

// ErrorTurnText is shown in place of a reply when SurfaceErrors is enabled.
const ErrorTurnText = "Sorry, something went wrong. Please try again."

// Options tune how a session talks to the model
type Options struct {
	// IncludePlaceholder sends the "Thinking..." turn to the model as part of
	// the history. Off by default.
	IncludePlaceholder bool
	// SerializeRequests runs submissions one at a time in submission order.
	// Otherwise overlapping submissions run concurrently and may settle out
	// of order.
	SerializeRequests bool
	// SurfaceErrors appends a visible model turn when a request fails.
	// Otherwise a failure only removes the placeholder.
	SurfaceErrors bool
}

// Session represents one chat session. The conversation lives only as long
// as the session does.
type Session struct {
	ID           string
	Conversation *chat.Conversation

	fetcher Fetcher
	opts    Options
	logger  logrus.FieldLogger

	mu   sync.Mutex
	tail chan struct{} // closed when the last queued submission settles
	wg   sync.WaitGroup
}

// NewSession creates a new session with an empty conversation
func NewSession(fetcher Fetcher, opts Options, logger logrus.FieldLogger) *Session {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.New().String()
	return &Session{
		ID:           id,
		Conversation: chat.NewConversation(),
		fetcher:      fetcher,
		opts:         opts,
		logger:       logger.WithField("session", shortID(id)),
	}
}

// GetShortID returns the shortened session ID (first 8 characters)
func (s *Session) GetShortID() string {
	return shortID(s.ID)
}

// Options returns the session's options.
func (s *Session) Options() Options {
	return s.opts
}

// Submit records the user's message, marks a request in flight and fetches
// the reply in the background. The returned channel yields exactly one
// Result once the conversation has been updated, then closes.
func (s *Session) Submit(ctx context.Context, text string) (<-chan chat.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	done := make(chan chat.Result, 1)
	s.wg.Add(1)

	if s.opts.SerializeRequests {
		s.mu.Lock()
		prev := s.tail
		next := make(chan struct{})
		s.tail = next
		s.mu.Unlock()

		go func() {
			defer s.wg.Done()
			defer close(done)
			defer close(next)
			if prev != nil {
				<-prev
			}
			history := s.begin(text)
			done <- s.resolve(ctx, history)
		}()
		return done, nil
	}

	history := s.begin(text)
	go func() {
		defer s.wg.Done()
		defer close(done)
		done <- s.resolve(ctx, history)
	}()
	return done, nil
}

// Ask submits a message and waits for its result.
func (s *Session) Ask(ctx context.Context, text string) (chat.Result, error) {
	done, err := s.Submit(ctx, text)
	if err != nil {
		return chat.Result{}, err
	}
	return <-done, nil
}

// Wait blocks until every submitted request has settled. In-flight requests
// are never cancelled.
func (s *Session) Wait() {
	s.wg.Wait()
}

// begin appends the user turn and the placeholder and returns the history to
// send.
func (s *Session) begin(text string) []chat.Turn {
	s.Conversation.Append(chat.UserTurn(text))
	s.Conversation.Append(chat.PlaceholderTurn())
	return OutboundHistory(s.Conversation.Turns(), s.opts.IncludePlaceholder)
}

// resolve performs the fetch and settles the result in the conversation.
func (s *Session) resolve(ctx context.Context, history []chat.Turn) chat.Result {
	requestID := uuid.New().String()
	log := s.logger.WithFields(logrus.Fields{
		"request": shortID(requestID),
		"turns":   len(history),
	})
	log.Debug("sending request")

	turn, err := s.fetcher.Fetch(ctx, history)
	res := chat.Result{Turn: turn, Err: err}
	s.Conversation.ResolvePlaceholder(res)

	if err != nil {
		log.WithFields(logrus.Fields{
			"kind":  ErrorKind(err),
			"error": err.Error(),
		}).Error("request failed")
		if s.opts.SurfaceErrors {
			s.Conversation.Append(chat.ModelTurn(ErrorTurnText))
		}
		return res
	}

	log.WithField("chars", len(turn.Text)).Debug("request resolved")
	return res
}

// OutboundHistory returns the turns to send to the model. Placeholder turns
// are dropped unless includePlaceholder is set.
func OutboundHistory(turns []chat.Turn, includePlaceholder bool) []chat.Turn {
	if includePlaceholder {
		return turns
	}
	out := make([]chat.Turn, 0, len(turns))
	for _, t := range turns {
		if t.IsPlaceholder() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ErrorKind classifies a fetch error for logging
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, gemini.ErrTransport):
		return "transport"
	case errors.Is(err, gemini.ErrFormat):
		return "format"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
