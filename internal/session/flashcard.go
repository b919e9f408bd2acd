package session

import (
	"sync"
	"time"

	"github.com/learnsphere/assessment-engine/internal/models"
)

// Direction is a flashcard navigation request.
type Direction string

const (
	Next     Direction = "next"
	Previous Direction = "previous"
)

// FlashcardSession traverses a card list as a closed loop: navigation wraps
// at both ends, each card can be flipped to its back, and every card gets a
// known/unknown mark. Durable state is the results map; the flip state and
// the in-flight settle delay are presentation only.
type FlashcardSession struct {
	mu sync.Mutex

	cards       []models.Card
	cardIndex   int
	revealed    bool
	results     map[string]bool
	settleDelay time.Duration

	pending *Delay
	closed  bool
}

func newFlashcardSession(cards []models.Card, settleDelay time.Duration) *FlashcardSession {
	return &FlashcardSession{
		cards:       cards,
		results:     make(map[string]bool),
		settleDelay: settleDelay,
	}
}

// Count returns the number of cards in the loop.
func (f *FlashcardSession) Count() int {
	return len(f.cards)
}

// Current returns the card under review.
func (f *FlashcardSession) Current() (models.Card, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.cards) == 0 {
		return models.Card{}, false
	}
	return f.cards[f.cardIndex], true
}

// CurrentIndex returns the position of the card under review.
func (f *FlashcardSession) CurrentIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cardIndex
}

// Flip toggles whether the current card shows its back. Display state only.
func (f *FlashcardSession) Flip() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.revealed = !f.revealed
}

// IsRevealed reports whether the current card shows its back.
func (f *FlashcardSession) IsRevealed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revealed
}

// Navigate un-reveals the current card, then advances after the settle delay
// so the card visually resets to its front before new content appears. The
// index wraps at both ends. A navigation scheduled before Close or a newer
// Navigate is cancelled rather than left to mutate stale state.
func (f *FlashcardSession) Navigate(direction Direction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || len(f.cards) == 0 {
		return
	}
	f.revealed = false
	if f.pending != nil {
		f.pending.Cancel()
		f.pending = nil
	}
	if f.settleDelay <= 0 {
		f.advanceLocked(direction)
		return
	}
	f.pending = After(f.settleDelay, func() {
		f.advance(direction)
	})
}

func (f *FlashcardSession) advance(direction Direction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.advanceLocked(direction)
}

func (f *FlashcardSession) advanceLocked(direction Direction) {
	n := len(f.cards)
	if n == 0 {
		return
	}
	if direction == Previous {
		f.cardIndex = (f.cardIndex - 1 + n) % n
	} else {
		f.cardIndex = (f.cardIndex + 1) % n
	}
}

// MarkKnown records the known/unknown verdict for the current card and moves
// on to the next one. Re-marking a card overwrites its previous verdict.
func (f *FlashcardSession) MarkKnown(known bool) {
	f.mu.Lock()
	if f.closed || len(f.cards) == 0 {
		f.mu.Unlock()
		return
	}
	f.results[f.cards[f.cardIndex].ID] = known
	f.mu.Unlock()

	f.Navigate(Next)
}

// Complete reports whether every card has a recorded verdict.
func (f *FlashcardSession) Complete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.results) == len(f.cards)
}

// Results returns a snapshot copy of the per-card verdicts.
func (f *FlashcardSession) Results() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := make(map[string]bool, len(f.results))
	for id, known := range f.results {
		snapshot[id] = known
	}
	return snapshot
}

// Tally derives the known/unknown counts from the recorded verdicts.
func (f *FlashcardSession) Tally() models.FlashcardTally {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.NewFlashcardTally(f.results)
}

// Close cancels any in-flight settle navigation and freezes the session.
func (f *FlashcardSession) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.pending != nil {
		f.pending.Cancel()
		f.pending = nil
	}
}
