package views

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/pders01/neuronest/internal/models"
)

// Growth is the growth space: the thought list, the new-thought form and watering
type Growth struct {
	Thoughts *Resource[[]models.Thought]

	svc ThoughtService
	w   *waterer

	submitMu   sync.Mutex
	submitting bool
}

// NewGrowth creates the growth page
func NewGrowth(svc ThoughtService) *Growth {
	return &Growth{
		Thoughts: NewResource(svc.ListThoughts),
		svc:      svc,
		w:        newWaterer(svc),
	}
}

// Load fetches the thought list
func (g *Growth) Load(ctx context.Context) error {
	return g.Thoughts.Load(ctx)
}

// List returns a copy of the thoughts currently on the page
func (g *Growth) List() []models.Thought {
	return slices.Clone(g.Thoughts.Data())
}

// Plant submits a new thought and puts it at the top of the list
func (g *Growth) Plant(ctx context.Context, content string, mood models.Mood) (*models.Thought, error) {
	payload := models.ThoughtCreate{Content: strings.TrimSpace(content), Mood: mood}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	g.submitMu.Lock()
	if g.submitting {
		g.submitMu.Unlock()
		return nil, ErrBusy
	}
	g.submitting = true
	g.submitMu.Unlock()

	defer func() {
		g.submitMu.Lock()
		g.submitting = false
		g.submitMu.Unlock()
	}()

	created, err := g.svc.CreateThought(ctx, payload)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, nil
	}

	g.Thoughts.mu.Lock()
	g.Thoughts.data = append([]models.Thought{*created}, g.Thoughts.data...)
	g.Thoughts.loaded = true
	g.Thoughts.mu.Unlock()

	return created, nil
}

// isSubmitting reports an outstanding Plant
func (g *Growth) isSubmitting() bool {
	g.submitMu.Lock()
	defer g.submitMu.Unlock()
	return g.submitting
}

// Water advances thought id one stage, optimistically
func (g *Growth) Water(ctx context.Context, id int64) error {
	return g.w.water(ctx, id, &g.Thoughts.mu, func() []*models.Thought {
		return []*models.Thought{findThought(g.Thoughts.data, id)}
	})
}

// RetryWater repeats a failed watering of id
func (g *Growth) RetryWater(ctx context.Context, id int64) error {
	return g.Water(ctx, id)
}

// isWatering reports whether id has a watering outstanding
func (g *Growth) isWatering(id int64) bool {
	return g.w.watering(id)
}

// WaterError is the message of the last failed watering of id
func (g *Growth) WaterError(id int64) string {
	return g.w.errFor(id)
}
