package views

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pders01/neuronest/internal/api"
	"github.com/pders01/neuronest/internal/models"
	"github.com/pders01/neuronest/internal/optimistic"
)

// ErrInFlight is returned when the same thought is already being watered
var ErrInFlight = errors.New("thought is already being watered")

// ErrThoughtNotFound is returned for ids that are not on the page
var ErrThoughtNotFound = errors.New("thought not found")

// waterer is the watering behavior shared by every page that shows thoughts
type waterer struct {
	svc ThoughtService
	now func() time.Time

	inFlight optimistic.InFlight[int64]

	mu   sync.Mutex
	errs map[int64]string
}

func newWaterer(svc ThoughtService) *waterer {
	return &waterer{svc: svc, now: time.Now, errs: make(map[int64]string)}
}

// water runs the optimistic watering of id. locate is called with mu held,
// before the change and again on rollback, and returns every local copy of the
// thought at a fixed position each. Absent copies are nil.
func (w *waterer) water(ctx context.Context, id int64, mu *sync.Mutex, locate func() []*models.Thought) error {
	mu.Lock()
	found := firstThought(locate())
	var current models.Thought
	if found != nil {
		current = *found
	}
	mu.Unlock()

	if found == nil {
		return fmt.Errorf("%w: #%d", ErrThoughtNotFound, id)
	}
	if !current.CanWater() {
		return models.ErrFullyGrown
	}
	if !w.inFlight.Begin(id) {
		return ErrInFlight
	}
	defer w.inFlight.End(id)

	w.setErr(id, "")
	now := w.now()

	return optimistic.Mutation[models.Thought]{
		Locate: locate,
		Transform: func(t models.Thought) models.Thought {
			return t.Watered(now)
		},
		Commit: func(ctx context.Context) error {
			_, err := w.svc.WaterThought(ctx, id)
			return err
		},
		OnRestore: func(err error) {
			w.setErr(id, api.Message(err))
		},
		Locker: mu,
	}.Run(ctx)
}

func (w *waterer) watering(id int64) bool {
	return w.inFlight.Active(id)
}

func (w *waterer) errFor(id int64) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs[id]
}

func (w *waterer) setErr(id int64, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if msg == "" {
		delete(w.errs, id)
		return
	}
	w.errs[id] = msg
}

func firstThought(copies []*models.Thought) *models.Thought {
	for _, c := range copies {
		if c != nil {
			return c
		}
	}
	return nil
}

// findThought returns a pointer to the entry with id, or nil
func findThought(list []models.Thought, id int64) *models.Thought {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
