package hunt

import "time"

// 📦 Candidate is one extracted invite code with its provenance. A
// candidate is immutable once created; its code never appears twice
// across the lifetime of the process.
type Candidate struct {
	Code         string    `json:"code"`
	ExampleText  string    `json:"example_text"`
	SourceTitle  string    `json:"source_title"`
	URL          string    `json:"url"`
	DiscoveredAt time.Time `json:"discovered_at"`
	Confidence   float64   `json:"confidence_score"`
	SourceType   string    `json:"source_type"`
}

// Activity log levels
const (
	LevelInfo    = "info"
	LevelDebug   = "debug"
	LevelSuccess = "success"
	LevelError   = "error"
)

// 📝 Entry is one activity log line
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// 🕐 PollStatus records when the last cycle started, or why it wholly
// failed. A cycle where every attempted source failed is a degraded
// state, not a crash; the marker carries the diagnostic.
type PollStatus struct {
	At    time.Time
	Error string
}

// Marker renders the status the way the dashboard shows it: an RFC 3339
// timestamp, an error string, or "" before the first cycle.
func (p PollStatus) Marker() string {
	if p.Error != "" {
		return "error: " + p.Error
	}
	if p.At.IsZero() {
		return ""
	}
	return p.At.UTC().Format(time.RFC3339)
}

// 📸 Snapshot is the immutable published view of the hunt. A new value
// replaces the old one wholesale after every cycle; readers never see a
// half-updated mix of two cycles.
type Snapshot struct {
	LastPoll    PollStatus
	Candidates  []Candidate // Newest first, capped at MaxCandidates
	UniqueCodes int         // Lifetime size of the dedup set
	Successes   int         // Lifetime successful source fetches
	Errors      int         // Lifetime failed source fetches
	Activity    []Entry     // Newest first, capped at MaxLogEntries
}
