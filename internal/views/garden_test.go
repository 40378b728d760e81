package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pders01/neuronest/internal/models"
)

func loadedGarden(t *testing.T, svc *fakeThoughts, insights *fakeInsights) *Garden {
	t.Helper()
	g := NewGarden(svc, insights, 14)
	g.w.now = func() time.Time { return testNow }
	if err := g.Load(context.Background()); err != nil {
		t.Fatalf("failed to load garden: %v", err)
	}
	return g
}

func TestGardenLoad(t *testing.T) {
	insights := &fakeInsights{}
	g := loadedGarden(t, newFakeThoughts(seedThought(1, 0), seedThought(2, 2)), insights)

	if len(g.List()) != 2 {
		t.Errorf("expected 2 plants, got %d", len(g.List()))
	}
	if insights.days != 14 {
		t.Errorf("expected period 14, got %d", insights.days)
	}
	if g.Insights.Data().TotalThoughts != 2 {
		t.Errorf("expected 2 total thoughts, got %d", g.Insights.Data().TotalThoughts)
	}
}

func TestGardenLoadPartialFailure(t *testing.T) {
	boom := errors.New("insights down")
	g := NewGarden(newFakeThoughts(seedThought(1, 0)), &fakeInsights{err: boom}, 30)

	err := g.Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected insights error, got %v", err)
	}
	if len(g.List()) != 1 {
		t.Error("expected plants to load despite the insights failure")
	}
	if g.Insights.ErrMessage() == "" {
		t.Error("expected insights error message")
	}
	if g.Thoughts.Err() != nil {
		t.Errorf("expected no thoughts error, got %v", g.Thoughts.Err())
	}
}

func TestGardenSelect(t *testing.T) {
	g := loadedGarden(t, newFakeThoughts(seedThought(1, 0)), &fakeInsights{})

	if g.Selected() != nil {
		t.Error("expected nothing selected")
	}
	if err := g.Select(7); !errors.Is(err, ErrThoughtNotFound) {
		t.Errorf("expected ErrThoughtNotFound, got %v", err)
	}
	if err := g.Select(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Selected().ID != 1 {
		t.Errorf("expected #1 selected, got #%d", g.Selected().ID)
	}
	g.CloseDetail()
	if g.Selected() != nil {
		t.Error("expected detail to be closed")
	}
}

func TestGardenWaterUpdatesBothCopies(t *testing.T) {
	g := loadedGarden(t, newFakeThoughts(seedThought(1, 1)), &fakeInsights{})
	if err := g.Select(1); err != nil {
		t.Fatal(err)
	}

	if err := g.Water(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.List()[0].GrowthStage != 2 {
		t.Errorf("expected list copy at stage 2, got %d", g.List()[0].GrowthStage)
	}
	if g.Selected().GrowthStage != 2 {
		t.Errorf("expected detail copy at stage 2, got %d", g.Selected().GrowthStage)
	}
}

func TestGardenWaterFailureRestoresBothCopies(t *testing.T) {
	original := seedThought(1, 2)
	svc := newFakeThoughts(original)
	g := loadedGarden(t, svc, &fakeInsights{})
	if err := g.Select(1); err != nil {
		t.Fatal(err)
	}
	svc.waterErr = errNetwork

	if err := g.Water(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if g.List()[0] != original {
		t.Errorf("expected list copy restored, got %+v", g.List()[0])
	}
	if *g.Selected() != original {
		t.Errorf("expected detail copy restored, got %+v", *g.Selected())
	}
	if g.WaterError(1) == "" {
		t.Error("expected a water error message")
	}
	if g.isWatering(1) {
		t.Error("expected in-flight marker to be cleared")
	}
}

func TestGardenWaterSelectedFullyGrown(t *testing.T) {
	svc := newFakeThoughts(seedThought(1, models.MaxGrowthStage))
	g := loadedGarden(t, svc, &fakeInsights{})
	if err := g.Select(1); err != nil {
		t.Fatal(err)
	}

	if err := g.Water(context.Background(), 1); !errors.Is(err, models.ErrFullyGrown) {
		t.Errorf("expected ErrFullyGrown, got %v", err)
	}
	if svc.calls() != 0 {
		t.Errorf("expected no request, got %d", svc.calls())
	}
}
