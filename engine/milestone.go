package engine

// MilestoneMetric names the UserStats figure a milestone measures.
type MilestoneMetric string

const (
	MetricLongestStreak MilestoneMetric = "longest_ever_streak"
	MetricActiveStreaks MilestoneMetric = "active_streaks"
	MetricDaysLogged    MilestoneMetric = "total_days_logged"
)

// Milestone is one fixed achievement definition. The catalog is static;
// what varies per user is whether the metric has reached the target.
type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Metric      MilestoneMetric `json:"metric"`
	Target      int             `json:"target"`
}

// MilestoneStatus pairs a milestone with a user's progress toward it.
type MilestoneStatus struct {
	Milestone
	Progress int  `json:"progress"`
	Achieved bool `json:"achieved"`
}

var catalog = []Milestone{
	{ID: "first-step", Title: "First Step", Description: "Complete your first habit day", Icon: "✨", Metric: MetricLongestStreak, Target: 1},
	{ID: "three-in-a-row", Title: "Three in a Row", Description: "Hold a three day streak", Icon: "🎯", Metric: MetricLongestStreak, Target: 3},
	{ID: "week-warrior", Title: "Week Warrior", Description: "Hold a seven day streak", Icon: "🔥", Metric: MetricLongestStreak, Target: 7},
	{ID: "fortnight-strong", Title: "Fortnight Strong", Description: "Hold a fourteen day streak", Icon: "⚡", Metric: MetricLongestStreak, Target: 14},
	{ID: "monthly-master", Title: "Monthly Master", Description: "Hold a thirty day streak", Icon: "🏆", Metric: MetricLongestStreak, Target: 30},
	{ID: "legendary", Title: "Legendary", Description: "Hold a hundred day streak", Icon: "👑", Metric: MetricLongestStreak, Target: 100},
	{ID: "habit-juggler", Title: "Habit Juggler", Description: "Keep three streaks alive at once", Icon: "🤹", Metric: MetricActiveStreaks, Target: 3},
	{ID: "steady-logger", Title: "Steady Logger", Description: "Log thirty days in total", Icon: "📅", Metric: MetricDaysLogged, Target: 30},
	{ID: "century-club", Title: "Century Club", Description: "Log a hundred days in total", Icon: "💯", Metric: MetricDaysLogged, Target: 100},
}

// Catalog returns the fixed milestone definitions in display order.
func Catalog() []Milestone {
	out := make([]Milestone, len(catalog))
	copy(out, catalog)
	return out
}

// EvaluateMilestones marks each catalog entry achieved when the user's
// aggregated stats meet its target. Evaluation is pure; no achieved state
// is stored, so milestones can regress if history is edited.
func EvaluateMilestones(stats UserStats) []MilestoneStatus {
	out := make([]MilestoneStatus, 0, len(catalog))
	for _, m := range catalog {
		value := metricValue(stats, m.Metric)
		out = append(out, MilestoneStatus{
			Milestone: m,
			Progress:  value,
			Achieved:  value >= m.Target,
		})
	}
	return out
}

func metricValue(stats UserStats, metric MilestoneMetric) int {
	switch metric {
	case MetricActiveStreaks:
		return stats.ActiveStreaks
	case MetricDaysLogged:
		return stats.TotalDaysLogged
	default:
		return stats.LongestEverStreak
	}
}
