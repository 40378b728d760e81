package models

// DefaultJournalPeriod is the period sent when none is configured
const DefaultJournalPeriod = "past week"

// DefaultInsightsPeriodDays is the insights window when none is configured
const DefaultInsightsPeriodDays = 30

// JournalSummaryRequest asks the server to summarize a period
type JournalSummaryRequest struct {
	Period string `json:"period"`
}

// Highlight is a single notable entry in a journal summary
type Highlight struct {
	Date    string `json:"date"`
	Entry   string `json:"entry"`
	Comment string `json:"comment"`
}

// JournalSummary is the server-generated weekly summary
type JournalSummary struct {
	Summary        string      `json:"summary"`
	Insight        string      `json:"insight"`
	Recommendation string      `json:"recommendation"`
	Highlights     []Highlight `json:"highlights"`
}

// GrowthInsights is a read-only snapshot of mood statistics
type GrowthInsights struct {
	TotalThoughts     int            `json:"total_thoughts"`
	MoodDistribution  map[string]int `json:"mood_distribution"`
	RecentGrowthTrend string         `json:"recent_growth_trend"`
}

// RecommendationRequest asks for practices matching a mood
type RecommendationRequest struct {
	Mood string `json:"mood"`
}

// Practice is a mindfulness exercise suggestion
type Practice struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Description     string `json:"description"`
}

// RecommendationResponse wraps the recommended practices
type RecommendationResponse struct {
	Recommendations []Practice `json:"recommendations"`
}
