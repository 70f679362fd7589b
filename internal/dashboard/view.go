package dashboard

// View is a dashboard tab.
type View int

const (
	ViewEvaluation View = iota
	ViewResults
	ViewSystem
	viewCount
)

// Views lists the tabs in display order.
var Views = []View{ViewEvaluation, ViewResults, ViewSystem}

// TitleKey returns the navigation message key of the view.
func (v View) TitleKey() string {
	switch v {
	case ViewResults:
		return "nav_results"
	case ViewSystem:
		return "nav_system"
	default:
		return "nav_dashboard"
	}
}

// String returns a stable lowercase name.
func (v View) String() string {
	switch v {
	case ViewEvaluation:
		return "evaluation"
	case ViewResults:
		return "results"
	case ViewSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Next cycles to the following tab.
func (v View) Next() View {
	return (v + 1) % viewCount
}

// Feed is a stream of backend data that a view displays.
type Feed int

const (
	FeedRecent Feed = iota
	FeedTasks
	FeedDetail
	FeedSystem
	FeedDatasets
	feedCount
)

// feedsOf lists the feeds invalidated when a view is left.
func feedsOf(v View) []Feed {
	switch v {
	case ViewResults:
		return []Feed{FeedTasks, FeedDetail}
	case ViewSystem:
		return []Feed{FeedSystem}
	default:
		return nil
	}
}
