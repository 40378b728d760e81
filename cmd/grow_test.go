package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/pders01/neuronest/internal/models"
	"github.com/pders01/neuronest/internal/session"
	"github.com/pders01/neuronest/internal/testutil"
)

func TestGrowRequiresLogin(t *testing.T) {
	setupCmdTest(t)

	if err := runGrow(nil, []string{}); !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestGrowCommand(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")
	srv.SeedThought("alice", "went for a walk", models.MoodPositive, 2)

	if err := runGrow(nil, []string{}); err != nil {
		t.Fatalf("grow command failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "went for a walk") || !strings.Contains(output, "Growing") {
		t.Errorf("expected thought in output, got: %s", output)
	}
}

func TestGrowEmpty(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")

	if err := runGrow(nil, []string{}); err != nil {
		t.Fatalf("grow command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing planted yet") {
		t.Errorf("expected empty state, got: %s", buf.String())
	}
}

func TestPlantCommand(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")
	defer func() { plantMood = "" }()

	if err := runPlant(nil, []string{"test"}); err != nil {
		t.Fatalf("plant command failed: %v", err)
	}

	thoughts := srv.Thoughts("alice")
	if len(thoughts) != 1 {
		t.Fatalf("expected 1 thought, got %d", len(thoughts))
	}
	got := thoughts[0]
	if got.Content != "test" || got.Mood != models.MoodNeutral || got.GrowthStage != 0 {
		t.Errorf("unexpected thought %+v", got)
	}
	if !got.LastWateredAt.Equal(got.CreatedAt) {
		t.Errorf("expected last watered to equal created, got %v and %v", got.LastWateredAt, got.CreatedAt)
	}
	if !strings.Contains(buf.String(), "Planted thought #1") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}
}

func TestPlantWithMood(t *testing.T) {
	srv, _ := setupCmdTest(t)
	loginAs(t, srv, "alice")
	defer func() { plantMood = "" }()

	plantMood = "Positive"
	if err := runPlant(nil, []string{"good day"}); err != nil {
		t.Fatalf("plant command failed: %v", err)
	}
	if srv.Thoughts("alice")[0].Mood != models.MoodPositive {
		t.Errorf("expected positive mood, got %s", srv.Thoughts("alice")[0].Mood)
	}
}

func TestPlantInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		mood string
		args []string
	}{
		{"bad mood", "ecstatic", []string{"hello"}},
		{"no content headless", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := setupCmdTest(t)
			loginAs(t, srv, "alice")
			defer func() { plantMood = "" }()

			plantMood = tt.mood
			if err := runPlant(nil, tt.args); err == nil {
				t.Error("expected plant to fail")
			}
			if srv.Calls(testutil.RoutePlant) != 0 {
				t.Error("expected no request")
			}
		})
	}
}

func TestWaterCommand(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")
	seeded := srv.SeedThought("alice", "seed", models.MoodNeutral, 0)

	if err := runWater(nil, []string{"1"}); err != nil {
		t.Fatalf("water command failed: %v", err)
	}

	got := srv.Thoughts("alice")[0]
	if got.GrowthStage != 1 {
		t.Errorf("expected stage 1, got %d", got.GrowthStage)
	}
	if !got.LastWateredAt.After(seeded.LastWateredAt) {
		t.Error("expected last watered to advance")
	}
	if !strings.Contains(buf.String(), "Sprout") {
		t.Errorf("expected new stage in output, got: %s", buf.String())
	}
}

func TestWaterFailure(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")
	srv.SeedThought("alice", "seed", models.MoodNeutral, 0)
	srv.Fail(testutil.RouteWater, 500, "Could not water thought due to a server error.")

	err := runWater(nil, []string{"1"})
	if err == nil {
		t.Fatal("expected water to fail")
	}
	if !strings.Contains(buf.String(), "Could not water thought due to a server error.") {
		t.Errorf("expected server message, got: %s", buf.String())
	}
	if srv.Thoughts("alice")[0].GrowthStage != 0 {
		t.Error("expected server thought to be unchanged")
	}

	srv.Recover(testutil.RouteWater)
	if err := runWater(nil, []string{"1"}); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if srv.Thoughts("alice")[0].GrowthStage != 1 {
		t.Error("expected retry to water the same thought")
	}
}

func TestWaterFullyGrown(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")
	srv.SeedThought("alice", "bloom", models.MoodPositive, models.MaxGrowthStage)

	if err := runWater(nil, []string{"1"}); err != nil {
		t.Fatalf("water command failed: %v", err)
	}
	if srv.Calls(testutil.RouteWater) != 0 {
		t.Errorf("expected no water request, got %d", srv.Calls(testutil.RouteWater))
	}
	if !strings.Contains(buf.String(), "fully grown") {
		t.Errorf("expected fully grown message, got: %s", buf.String())
	}
}

func TestWaterInvalidID(t *testing.T) {
	srv, _ := setupCmdTest(t)
	loginAs(t, srv, "alice")

	tests := []string{"abc", "0", "-2"}
	for _, arg := range tests {
		if err := runWater(nil, []string{arg}); err == nil {
			t.Errorf("expected error for %q", arg)
		}
	}

	if err := runWater(nil, []string{"#42"}); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestPlantNoContent(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")
	srv.NoContent(testutil.RoutePlant)

	if err := runPlant(nil, []string{"test"}); err != nil {
		t.Fatalf("plant command failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Planted") || !strings.Contains(output, "neuronest grow") {
		t.Errorf("expected planted notice, got: %s", output)
	}
}

func TestWaterFailureShownWithThought(t *testing.T) {
	srv, buf := setupCmdTest(t)
	loginAs(t, srv, "alice")
	srv.SeedThought("alice", "morning pages", models.MoodNeutral, 0)
	srv.Fail(testutil.RouteWater, 404, "Thought not found")

	if err := runWater(nil, []string{"1"}); err == nil {
		t.Fatal("expected water to fail")
	}

	output := buf.String()
	for _, want := range []string{"Thought not found", "#1", "morning pages", "Seed"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}
