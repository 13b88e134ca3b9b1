// Package browser is the view-state coordinator of the job browser. It turns
// user actions into state changes plus tea.Cmd suspensions, and applies the
// results of those suspensions under staleness rules so that overlapping
// fetches, searches, favorite mutations and user switches converge on one
// consistent view.
package browser

import (
	"github.com/blockedby/starred-jobs/internal/models"
)

// ViewMode is the display context. Exactly one is active.
type ViewMode int

const (
	ModeBrowsing ViewMode = iota
	ModeSearching
	ModeFavoritesOnly
)

func (m ViewMode) String() string {
	switch m {
	case ModeSearching:
		return "searching"
	case ModeFavoritesOnly:
		return "favorites"
	default:
		return "browsing"
	}
}

// SearchPhase is the search state machine's state.
type SearchPhase int

const (
	PhaseIdle SearchPhase = iota
	PhaseBelowThreshold
	PhaseSearching
	PhaseResults
)

func (p SearchPhase) String() string {
	switch p {
	case PhaseBelowThreshold:
		return "below_threshold"
	case PhaseSearching:
		return "searching"
	case PhaseResults:
		return "results"
	default:
		return "idle"
	}
}

// Search limits.
const (
	MinSearchLength  = 2
	MaxSearchResults = 20
)

// SearchToken identifies the most recently issued search.
type SearchToken uint64

// ViewSnapshot is a saved copy of the browsing view.
type ViewSnapshot struct {
	Jobs       []models.Job
	Pagination models.Pagination
}

// Notice is a dismissible error shown to the user.
type Notice struct {
	ID      uint64
	Code    string
	Message string
}

// State is everything the coordinator owns. It is mutated only inside
// Coordinator methods, never while a suspension is outstanding.
type State struct {
	Mode       ViewMode
	Jobs       []models.Job
	Pagination models.Pagination

	// search
	Phase      SearchPhase
	Query      string
	Token      SearchToken
	QueryEpoch uint64 // bumped whenever the coordinator clears the query

	// view-mode cache
	Snapshot *ViewSnapshot
	leftMode ViewMode // mode active before entering favorites-only

	// request sequencing
	pageSeq     uint64
	favJobsSeq  uint64
	favLoadSeq  uint64
	loadingPage bool
	loadingFavs bool

	// users
	UserID    int
	session   uint64 // bumped on every user switch
	Users     []models.User
	Favorites *FavoriteSet

	Notice   *Notice
	noticeID uint64
}

func copyJobs(jobs []models.Job) []models.Job {
	out := make([]models.Job, len(jobs))
	copy(out, jobs)
	return out
}
