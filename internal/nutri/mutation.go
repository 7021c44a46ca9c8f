package nutri

import (
	"context"
	"fmt"

	"nutrilog/internal/achievement"
)

// MutationResult reports the achievements unlocked by a successful mutation.
type MutationResult struct {
	// NewlyUnlocked lists IDs that went from locked to unlocked, in
	// catalogue order.
	NewlyUnlocked []achievement.ID

	// Celebrate is the first newly unlocked achievement, if any. Hosts show
	// a single celebration per mutation.
	Celebrate *achievement.ID
}

// pendingChange is one mutation in flight: the committed state it started
// from and the working copy it will replace it with.
type pendingChange struct {
	prev *AppState
	next *AppState
}

func beginChange(current *AppState) *pendingChange {
	return &pendingChange{prev: current, next: current.Clone()}
}

func (c *pendingChange) result() MutationResult {
	ids := achievement.NewlyUnlocked(c.prev.Achievements, c.next.Achievements)
	res := MutationResult{NewlyUnlocked: ids}
	if len(ids) > 0 {
		first := ids[0]
		res.Celebrate = &first
	}
	return res
}

// mutate runs one state change through the apply, commit, revert protocol.
//
// apply edits a working copy and may reject the change, in which case the
// committed state is never touched. Otherwise the working copy becomes the
// current state and is handed to the store. If the store fails, the previous
// state is restored and the error is returned wrapping ErrPersistence.
func (t *Tracker) mutate(ctx context.Context, op string, apply func(s *AppState) error) (MutationResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	change := beginChange(t.state)
	if err := apply(change.next); err != nil {
		return MutationResult{}, err
	}

	t.state = change.next
	if err := t.store.SaveState(ctx, t.state); err != nil {
		t.state = change.prev
		t.logger.Error("state change reverted", "op", op, "error", err)
		return MutationResult{}, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}

	res := change.result()
	for _, id := range res.NewlyUnlocked {
		t.logger.Info("achievement unlocked", "op", op, "achievement", id.String())
	}
	return res, nil
}
