package chat

import "sync"

// Conversation is the ordered history of turns for one chat session.
// Insertion order is significant: it is replayed verbatim to the model.
// A Conversation is safe for concurrent use.
type Conversation struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewConversation creates an empty conversation
func NewConversation() *Conversation {
	return &Conversation{turns: []Turn{}}
}

// Append adds a turn at the end of the conversation.
func (c *Conversation) Append(turn Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, turn)
}

// Turns returns a copy of the turns in order.
func (c *Conversation) Turns() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}

// HasPlaceholder reports whether a request is still in flight.
func (c *Conversation) HasPlaceholder() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.turns {
		if t.IsPlaceholder() {
			return true
		}
	}
	return false
}

// RemovePlaceholders drops every placeholder turn and returns how many were removed.
func (c *Conversation) RemovePlaceholders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removePlaceholdersLocked()
}

func (c *Conversation) removePlaceholdersLocked() int {
	kept := c.turns[:0]
	removed := 0
	for _, t := range c.turns {
		if t.IsPlaceholder() {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	c.turns = kept
	return removed
}

// ResolvePlaceholder settles an in-flight request. Every placeholder turn is
// removed and, if the result succeeded, its turn is appended. Both steps
// happen under one lock so renderers never observe the intermediate state.
func (c *Conversation) ResolvePlaceholder(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removePlaceholdersLocked()
	if res.OK() {
		c.turns = append(c.turns, res.Turn)
	}
}

// Clear removes all turns.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = []Turn{}
}
