package views

import (
	"context"
	"errors"
	"slices"

	"github.com/pders01/neuronest/internal/models"
	"github.com/sourcegraph/conc"
)

// Garden shows every plant, one selected plant in detail, and growth insights
type Garden struct {
	Thoughts *Resource[[]models.Thought]
	Insights *Resource[*models.GrowthInsights]

	w *waterer
	// selected is a separate copy of one thought, guarded by Thoughts.mu
	selected *models.Thought
}

// NewGarden creates the garden page
func NewGarden(thoughts ThoughtService, insights InsightsService, periodDays int) *Garden {
	return &Garden{
		Thoughts: NewResource(thoughts.ListThoughts),
		Insights: NewResource(func(ctx context.Context) (*models.GrowthInsights, error) {
			return insights.GrowthInsights(ctx, periodDays)
		}),
		w: newWaterer(thoughts),
	}
}

// Load fetches the plants and the insights concurrently
func (g *Garden) Load(ctx context.Context) error {
	var thoughtsErr, insightsErr error

	var wg conc.WaitGroup
	wg.Go(func() { thoughtsErr = g.Thoughts.Load(ctx) })
	wg.Go(func() { insightsErr = g.Insights.Load(ctx) })
	wg.Wait()

	return errors.Join(thoughtsErr, insightsErr)
}

// List returns a copy of the plants
func (g *Garden) List() []models.Thought {
	return slices.Clone(g.Thoughts.Data())
}

// Select opens the detail view of id
func (g *Garden) Select(id int64) error {
	g.Thoughts.mu.Lock()
	defer g.Thoughts.mu.Unlock()

	t := findThought(g.Thoughts.data, id)
	if t == nil {
		return ErrThoughtNotFound
	}
	detail := *t
	g.selected = &detail
	return nil
}

// Selected returns the detail copy, or nil
func (g *Garden) Selected() *models.Thought {
	g.Thoughts.mu.Lock()
	defer g.Thoughts.mu.Unlock()
	if g.selected == nil {
		return nil
	}
	t := *g.selected
	return &t
}

// CloseDetail closes the detail view
func (g *Garden) CloseDetail() {
	g.Thoughts.mu.Lock()
	g.selected = nil
	g.Thoughts.mu.Unlock()
}

// Water waters id in the list and, if it is open, in the detail view
func (g *Garden) Water(ctx context.Context, id int64) error {
	return g.w.water(ctx, id, &g.Thoughts.mu, func() []*models.Thought {
		var detail *models.Thought
		if g.selected != nil && g.selected.ID == id {
			detail = g.selected
		}
		return []*models.Thought{findThought(g.Thoughts.data, id), detail}
	})
}

// RetryWater repeats a failed watering of id
func (g *Garden) RetryWater(ctx context.Context, id int64) error {
	return g.Water(ctx, id)
}

// isWatering reports whether id has a watering outstanding
func (g *Garden) isWatering(id int64) bool {
	return g.w.watering(id)
}

// WaterError is the message of the last failed watering of id
func (g *Garden) WaterError(id int64) string {
	return g.w.errFor(id)
}
