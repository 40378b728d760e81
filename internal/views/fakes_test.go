package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pders01/neuronest/internal/api"
	"github.com/pders01/neuronest/internal/models"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

// fakeThoughts is an in-memory ThoughtService
type fakeThoughts struct {
	mu         sync.Mutex
	thoughts   []models.Thought
	nextID     int64
	waterErr   error
	listErr    error
	waterCalls int
	// block, when set, holds WaterThought until closed
	block chan struct{}
	// entered is signalled when WaterThought starts
	entered chan struct{}
}

func newFakeThoughts(thoughts ...models.Thought) *fakeThoughts {
	return &fakeThoughts{thoughts: thoughts, nextID: int64(len(thoughts)) + 1}
}

func (f *fakeThoughts) ListThoughts(ctx context.Context) ([]models.Thought, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Thought, len(f.thoughts))
	copy(out, f.thoughts)
	return out, nil
}

func (f *fakeThoughts) CreateThought(ctx context.Context, p models.ThoughtCreate) (*models.Thought, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := models.Thought{
		ID:            f.nextID,
		UserID:        1,
		Content:       p.Content,
		Mood:          p.Mood,
		CreatedAt:     testNow,
		LastWateredAt: testNow,
	}
	f.nextID++
	f.thoughts = append(f.thoughts, t)
	return &t, nil
}

func (f *fakeThoughts) WaterThought(ctx context.Context, id int64) (*models.Thought, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.waterCalls++
	if f.waterErr != nil {
		return nil, f.waterErr
	}
	for i := range f.thoughts {
		if f.thoughts[i].ID == id {
			f.thoughts[i] = f.thoughts[i].Watered(time.Now())
			t := f.thoughts[i]
			return &t, nil
		}
	}
	return nil, &api.ServerError{Status: 404, Detail: "Thought not found"}
}

func (f *fakeThoughts) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.waterCalls
}

type fakeInsights struct {
	days int
	err  error
}

func (f *fakeInsights) GrowthInsights(ctx context.Context, periodDays int) (*models.GrowthInsights, error) {
	f.days = periodDays
	if f.err != nil {
		return nil, f.err
	}
	return &models.GrowthInsights{
		TotalThoughts:     2,
		MoodDistribution:  map[string]int{"neutral": 2},
		RecentGrowthTrend: "stable",
	}, nil
}

type fakeJournal struct {
	period string
}

func (f *fakeJournal) JournalSummary(ctx context.Context, period string) (*models.JournalSummary, error) {
	f.period = period
	return &models.JournalSummary{Summary: "A calm week", Highlights: []models.Highlight{{Date: "2026-10-12", Entry: "walk", Comment: "nice"}}}, nil
}

type fakeMindspace struct {
	mood string
}

func (f *fakeMindspace) Recommendations(ctx context.Context, mood string) ([]models.Practice, error) {
	f.mood = mood
	if mood == "numb" {
		return nil, &api.ServerError{Status: 503, Detail: "AI Service Unavailable: Client not configured."}
	}
	return []models.Practice{{ID: "deep_breathing", Title: "Deep Breathing", DurationMinutes: 5}}, nil
}

// fakeSession is an in-memory Session
type fakeSession struct {
	user      *models.User
	loginErr  error
	signupErr error
	logins    int
}

func (f *fakeSession) Login(ctx context.Context, creds models.Credentials) error {
	f.logins++
	if f.loginErr != nil {
		return f.loginErr
	}
	f.user = &models.User{ID: 1, Username: creds.Username}
	return nil
}

func (f *fakeSession) Signup(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &models.User{ID: 2, Username: creds.Username}, nil
}

func (f *fakeSession) Logout() error {
	f.user = nil
	return nil
}

func (f *fakeSession) IsAuthenticated() bool { return f.user != nil }

func (f *fakeSession) User() *models.User { return f.user }

var errNetwork = &api.NetworkError{Op: "PUT /thoughts/1/water", Err: errors.New("connection refused")}

func seedThought(id int64, stage int) models.Thought {
	created := testNow.Add(-72 * time.Hour)
	return models.Thought{
		ID:            id,
		UserID:        1,
		Content:       "thought",
		Mood:          models.MoodNeutral,
		GrowthStage:   stage,
		CreatedAt:     created,
		LastWateredAt: created,
	}
}
