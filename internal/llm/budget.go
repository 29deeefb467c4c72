package llm

import (
	"errors"
	"sync"
	"time"
)

// ErrBudgetExceeded is returned when a call would exceed the token budget.
var ErrBudgetExceeded = errors.New("daily token budget exceeded")

type tokenRecord struct {
	timestamp time.Time
	tokens    int32
}

// TokenBudget tracks token usage within a sliding window and enforces a limit.
type TokenBudget struct {
	mu      sync.Mutex
	records []tokenRecord
	window  time.Duration
	limit   int32
	now     func() time.Time
}

// NewTokenBudget creates a budget of limit tokens per window. A limit of 0
// disables the budget.
func NewTokenBudget(window time.Duration, limit int32) *TokenBudget {
	return &TokenBudget{window: window, limit: limit, now: time.Now}
}

// prune drops records outside the window. Must be called with mu held.
func (b *TokenBudget) prune() {
	cutoff := b.now().Add(-b.window)
	i := 0
	for i < len(b.records) && b.records[i].timestamp.Before(cutoff) {
		i++
	}
	b.records = b.records[i:]
}

func (b *TokenBudget) usage() int32 {
	b.prune()
	var total int32
	for _, r := range b.records {
		total += r.tokens
	}
	return total
}

// Usage returns the tokens used within the current window.
func (b *TokenBudget) Usage() int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.usage()
}

// Check returns ErrBudgetExceeded if spending tokens would go over the limit.
func (b *TokenBudget) Check(tokens int32) error {
	if b == nil || b.limit <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.usage()+tokens > b.limit {
		return ErrBudgetExceeded
	}
	return nil
}

// Record adds a usage entry at the current time.
func (b *TokenBudget) Record(tokens int32) {
	if b == nil || tokens <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, tokenRecord{timestamp: b.now(), tokens: tokens})
}
