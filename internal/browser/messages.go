package browser

import (
	"github.com/blockedby/starred-jobs/internal/catalog"
	"github.com/blockedby/starred-jobs/internal/models"
)

// PageLoadedMsg carries the result of a browsing page fetch.
type PageLoadedMsg struct {
	Seq  uint64
	Page *catalog.JobsPage
	Err  error
}

// SearchResultMsg carries the result of a search tagged with its token.
type SearchResultMsg struct {
	Token SearchToken
	Query string
	Jobs  []models.Job
	Err   error
}

// FavoriteJobsMsg carries the jobs shown in favorites-only mode.
type FavoriteJobsMsg struct {
	Seq  uint64
	Jobs []models.Job
	Err  error
}

// FavoritesLoadedMsg carries a user's favorited job ids.
type FavoritesLoadedMsg struct {
	UserID int
	Seq    uint64
	JobIDs []int
	Err    error
}

// FavoriteMutatedMsg carries the outcome of an add or remove.
// Target is the membership the mutation tried to establish. Session identifies
// the user session the mutation was issued in.
type FavoriteMutatedMsg struct {
	UserID  int
	Session uint64
	JobID   int
	Target  bool
	Err     error
}

// UsersLoadedMsg carries the user list.
type UsersLoadedMsg struct {
	Users []models.User
	Err   error
}
