package views

import (
	"context"

	"github.com/pders01/neuronest/internal/models"
)

// ThoughtService is the thought part of the API
type ThoughtService interface {
	ListThoughts(ctx context.Context) ([]models.Thought, error)
	CreateThought(ctx context.Context, payload models.ThoughtCreate) (*models.Thought, error)
	WaterThought(ctx context.Context, id int64) (*models.Thought, error)
}

// InsightsService serves growth insights
type InsightsService interface {
	GrowthInsights(ctx context.Context, periodDays int) (*models.GrowthInsights, error)
}

// JournalService serves journal summaries
type JournalService interface {
	JournalSummary(ctx context.Context, period string) (*models.JournalSummary, error)
}

// MindspaceService serves practice recommendations
type MindspaceService interface {
	Recommendations(ctx context.Context, mood string) ([]models.Practice, error)
}

// Session is what pages need from the auth session
type Session interface {
	Login(ctx context.Context, creds models.Credentials) error
	Signup(ctx context.Context, creds models.Credentials) (*models.User, error)
	Logout() error
	IsAuthenticated() bool
	User() *models.User
}
