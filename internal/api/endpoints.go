package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pders01/neuronest/internal/models"
)

// ListThoughts returns every thought of the current user
func (c *Client) ListThoughts(ctx context.Context) ([]models.Thought, error) {
	out, err := do[[]models.Thought](ctx, c, request{method: http.MethodGet, path: "/thoughts"})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

// CreateThought plants a new thought
func (c *Client) CreateThought(ctx context.Context, payload models.ThoughtCreate) (*models.Thought, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	return do[models.Thought](ctx, c, request{
		method:      http.MethodPost,
		path:        "/thoughts",
		body:        body,
		contentType: "application/json",
	})
}

// WaterThought advances a thought's growth stage on the server
func (c *Client) WaterThought(ctx context.Context, id int64) (*models.Thought, error) {
	return do[models.Thought](ctx, c, request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/thoughts/%d/water", id),
	})
}

// JournalSummary asks the server to summarize a period
func (c *Client) JournalSummary(ctx context.Context, period string) (*models.JournalSummary, error) {
	if period == "" {
		period = models.DefaultJournalPeriod
	}
	body, err := jsonBody(models.JournalSummaryRequest{Period: period})
	if err != nil {
		return nil, err
	}
	return do[models.JournalSummary](ctx, c, request{
		method:      http.MethodPost,
		path:        "/journal/summary",
		body:        body,
		contentType: "application/json",
	})
}

// GrowthInsights returns mood statistics for the last periodDays days
func (c *Client) GrowthInsights(ctx context.Context, periodDays int) (*models.GrowthInsights, error) {
	if periodDays <= 0 {
		periodDays = models.DefaultInsightsPeriodDays
	}
	return do[models.GrowthInsights](ctx, c, request{
		method: http.MethodGet,
		path:   "/insights",
		query:  url.Values{"period_days": {strconv.Itoa(periodDays)}},
	})
}

// Recommendations returns practices suited to mood
func (c *Client) Recommendations(ctx context.Context, mood string) ([]models.Practice, error) {
	body, err := jsonBody(models.RecommendationRequest{Mood: mood})
	if err != nil {
		return nil, err
	}
	out, err := do[models.RecommendationResponse](ctx, c, request{
		method:      http.MethodPost,
		path:        "/mindspace/recommendations",
		body:        body,
		contentType: "application/json",
	})
	if err != nil || out == nil {
		return nil, err
	}
	return out.Recommendations, nil
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.Token, error) {
	form := url.Values{
		"username": {creds.Username},
		"password": {creds.Password},
	}
	tok, err := do[models.Token](ctx, c, request{
		method:      http.MethodPost,
		path:        "/auth/token",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		noAuth:      true,
	})
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, fmt.Errorf("login response did not include an access token")
	}
	return tok, nil
}

// Signup creates an account. It does not log the user in.
func (c *Client) Signup(ctx context.Context, creds models.Credentials) (*models.User, error) {
	body, err := jsonBody(creds)
	if err != nil {
		return nil, err
	}
	return do[models.User](ctx, c, request{
		method:      http.MethodPost,
		path:        "/users",
		body:        body,
		contentType: "application/json",
		noAuth:      true,
	})
}

// CurrentUser fetches the profile belonging to token
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}
	user, err := do[models.User](ctx, c, request{
		method: http.MethodGet,
		path:   "/users/me",
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("empty profile response")
	}
	return user, nil
}
