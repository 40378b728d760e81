package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mood is the closed set of moods a thought can be tagged with
type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNeutral  Mood = "neutral"
	MoodNegative Mood = "negative"
)

// Moods lists every valid mood in display order
var Moods = []Mood{MoodPositive, MoodNeutral, MoodNegative}

// ParseMood converts user input into a Mood
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("invalid mood: %q (must be: positive, neutral, negative)", s)
}

// Valid reports whether m is one of the known moods
func (m Mood) Valid() bool {
	switch m {
	case MoodPositive, MoodNeutral, MoodNegative:
		return true
	default:
		return false
	}
}

// MaxGrowthStage is the terminal stage for watering
const MaxGrowthStage = 3

// ErrFullyGrown is returned when watering a thought that is already flowering
var ErrFullyGrown = errors.New("thought is fully grown")

var stageNames = [...]string{"Seed", "Sprout", "Growing", "Flowering"}

// StageName returns the display name of a growth stage
func StageName(stage int) string {
	if stage < 0 || stage >= len(stageNames) {
		return "Unknown"
	}
	return stageNames[stage]
}

// Thought represents a mood-tagged journal entry and its plant
type Thought struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id,omitempty"`
	Content       string    `json:"content"`
	Mood          Mood      `json:"mood"`
	GrowthStage   int       `json:"growth_stage"`
	CreatedAt     time.Time `json:"created_at"`
	LastWateredAt time.Time `json:"last_watered_at"`
}

// CanWater reports whether the thought can still grow
func (t Thought) CanWater() bool {
	return t.GrowthStage < MaxGrowthStage
}

// Watered returns the thought as it looks after one watering at now.
// The stage is capped at MaxGrowthStage.
func (t Thought) Watered(now time.Time) Thought {
	t.GrowthStage = min(t.GrowthStage+1, MaxGrowthStage)
	if t.GrowthStage < 0 {
		t.GrowthStage = 0
	}
	t.LastWateredAt = now
	return t
}

// ThoughtCreate is the payload for planting a new thought
type ThoughtCreate struct {
	Content string `json:"content"`
	Mood    Mood   `json:"mood"`
}

// Validate checks the payload before it is sent
func (p ThoughtCreate) Validate() error {
	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("content cannot be empty")
	}
	if !p.Mood.Valid() {
		return fmt.Errorf("invalid mood: %q", p.Mood)
	}
	return nil
}
