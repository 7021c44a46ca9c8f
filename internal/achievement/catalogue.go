// Package achievement evaluates the fixed catalogue of unlockable badges.
// Unlocking is one-way: Evaluate never locks an achievement again.
package achievement

import (
	"encoding/json"
	"fmt"
)

// ID identifies an achievement. The set is closed; iterate with
// `for id := ID(0); id < NumIDs; id++`.
type ID int

// Catalogue order. NewlyUnlocked reports achievements in this order.
const (
	FirstMeal ID = iota
	Streak3
	Streak7
	Streak30
	Meals10
	Meals50
	Meals100
	WaterGoal
	CalorieGoal
	WeightLogged

	NumIDs
)

var idNames = [NumIDs]string{
	FirstMeal:    "first_meal",
	Streak3:      "streak_3",
	Streak7:      "streak_7",
	Streak30:     "streak_30",
	Meals10:      "meals_10",
	Meals50:      "meals_50",
	Meals100:     "meals_100",
	WaterGoal:    "water_goal",
	CalorieGoal:  "calorie_goal",
	WeightLogged: "weight_logged",
}

func (id ID) String() string {
	if id < 0 || id >= NumIDs {
		return fmt.Sprintf("achievement(%d)", int(id))
	}
	return idNames[id]
}

// ParseID maps a catalogue id such as "streak_7" to its ID.
func ParseID(s string) (ID, error) {
	for id := ID(0); id < NumIDs; id++ {
		if idNames[id] == s {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown achievement %q", s)
}

func (id ID) MarshalText() ([]byte, error) {
	if id < 0 || id >= NumIDs {
		return nil, fmt.Errorf("invalid achievement id %d", int(id))
	}
	return []byte(idNames[id]), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Definition is the display data of an achievement.
type Definition struct {
	ID          ID
	Title       string
	Description string
	Icon        string
}

var catalogue = [NumIDs]Definition{
	FirstMeal:    {FirstMeal, "First Bite", "Log your first meal", "🍽️"},
	Streak3:      {Streak3, "On a Roll", "Log meals 3 days in a row", "🔥"},
	Streak7:      {Streak7, "Week Warrior", "Log meals 7 days in a row", "⚡"},
	Streak30:     {Streak30, "Habit Master", "Log meals 30 days in a row", "👑"},
	Meals10:      {Meals10, "Getting Started", "Log 10 meals", "🥗"},
	Meals50:      {Meals50, "Dedicated Logger", "Log 50 meals", "📒"},
	Meals100:     {Meals100, "Centurion", "Log 100 meals", "💯"},
	WaterGoal:    {WaterGoal, "Hydrated", "Reach your daily water goal", "💧"},
	CalorieGoal:  {CalorieGoal, "Right on Target", "Finish a day within 100 kcal of your goal", "🎯"},
	WeightLogged: {WeightLogged, "Weigh In", "Log your weight", "⚖️"},
}

// Lookup returns the catalogue entry for id.
func Lookup(id ID) Definition {
	return catalogue[id]
}

// Catalogue returns every definition in catalogue order.
func Catalogue() []Definition {
	out := make([]Definition, NumIDs)
	copy(out, catalogue[:])
	return out
}

// State is the lock status of one achievement.
type State struct {
	IsUnlocked bool   `json:"isUnlocked"`
	UnlockedAt *int64 `json:"unlockedAt,omitempty"` // epoch milliseconds
}

// Snapshot is the state of the whole catalogue at one evaluation point.
// It is a value type: assigning a Snapshot copies it.
type Snapshot [NumIDs]State

type snapshotEntry struct {
	ID ID `json:"id"`
	State
}

// MarshalJSON writes the snapshot as a list of {id, isUnlocked, unlockedAt}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	entries := make([]snapshotEntry, 0, NumIDs)
	for id := ID(0); id < NumIDs; id++ {
		entries = append(entries, snapshotEntry{ID: id, State: s[id]})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON reads the list form. Ids missing from the list stay locked
// and unknown ids are skipped, so older and newer blobs both load.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var raw []struct {
		ID         string `json:"id"`
		IsUnlocked bool   `json:"isUnlocked"`
		UnlockedAt *int64 `json:"unlockedAt,omitempty"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decoding achievements: %w", err)
	}

	var next Snapshot
	for _, r := range raw {
		id, err := ParseID(r.ID)
		if err != nil {
			continue
		}
		next[id] = State{IsUnlocked: r.IsUnlocked, UnlockedAt: r.UnlockedAt}
	}
	*s = next
	return nil
}

// Unlocked returns the unlocked ids in catalogue order.
func (s Snapshot) Unlocked() []ID {
	var ids []ID
	for id := ID(0); id < NumIDs; id++ {
		if s[id].IsUnlocked {
			ids = append(ids, id)
		}
	}
	return ids
}
