package views

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/pders01/neuronest/internal/models"
	"github.com/pders01/neuronest/internal/timer"
)

// NewInsights creates the growth insights resource for the last periodDays days
func NewInsights(svc InsightsService, periodDays int) *Resource[*models.GrowthInsights] {
	return NewResource(func(ctx context.Context) (*models.GrowthInsights, error) {
		return svc.GrowthInsights(ctx, periodDays)
	})
}

// Journal is the wellness journal page
type Journal struct {
	Summary *Resource[*models.JournalSummary]
	Period  string
}

// NewJournal creates the journal page for period
func NewJournal(svc JournalService, period string) *Journal {
	if period == "" {
		period = models.DefaultJournalPeriod
	}
	j := &Journal{Period: period}
	j.Summary = NewResource(func(ctx context.Context) (*models.JournalSummary, error) {
		return svc.JournalSummary(ctx, j.Period)
	})
	return j
}

// Generate asks the server for a summary
func (j *Journal) Generate(ctx context.Context) error {
	return j.Summary.Load(ctx)
}

// ErrEmptyMood is returned when no mood was given
var ErrEmptyMood = errors.New("mood cannot be empty")

// Mindspace is the meditation and mindfulness page
type Mindspace struct {
	Recommendations *Resource[[]models.Practice]

	mu   sync.Mutex
	mood string
}

// NewMindspace creates the mindspace page
func NewMindspace(svc MindspaceService) *Mindspace {
	m := &Mindspace{}
	m.Recommendations = NewResource(func(ctx context.Context) ([]models.Practice, error) {
		return svc.Recommendations(ctx, m.Mood())
	})
	return m
}

// SelectMood normalizes mood and fetches matching practices
func (m *Mindspace) SelectMood(ctx context.Context, mood string) error {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" {
		return ErrEmptyMood
	}
	m.mu.Lock()
	m.mood = mood
	m.mu.Unlock()
	return m.Recommendations.Load(ctx)
}

// Mood returns the selected mood
func (m *Mindspace) Mood() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mood
}

// Practice is a running practice session
type Practice struct {
	models.Practice
	*timer.Session
}

// StartPractice starts the timer for p. The caller must Stop it.
func (m *Mindspace) StartPractice(ctx context.Context, p models.Practice, tick time.Duration) *Practice {
	return &Practice{Practice: p, Session: timer.Start(ctx, tick)}
}

// Target is the intended length of the practice, zero when unknown
func (p *Practice) Target() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}

// Complete reports whether the practice has run for its full duration
func (p *Practice) Complete() bool {
	return p.Target() > 0 && p.Elapsed() >= p.Target()
}
