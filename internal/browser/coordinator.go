package browser

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blockedby/starred-jobs/internal/apperror"
	"github.com/blockedby/starred-jobs/internal/catalog"
	"github.com/blockedby/starred-jobs/internal/models"
)

// Catalog is the read side of the job catalog.
type Catalog interface {
	ListJobs(ctx context.Context, page int) (*catalog.JobsPage, error)
	GetJobs(ctx context.Context, ids []int) ([]models.Job, error)
	Search(ctx context.Context, query string) ([]models.Job, error)
}

// FavoritesStore persists favorites for a user.
type FavoritesStore interface {
	Favorites(ctx context.Context, userID int) ([]int, error)
	AddFavorite(ctx context.Context, userID, jobID int) error
	RemoveFavorite(ctx context.Context, userID, jobID int) error
}

// UserDirectory lists selectable users.
type UserDirectory interface {
	Users(ctx context.Context) ([]models.User, error)
}

// Deps are the coordinator's collaborators.
type Deps struct {
	Catalog   Catalog
	Favorites FavoritesStore
	Users     UserDirectory
}

// Coordinator owns the browser State. All methods must be called from the
// Bubble Tea update loop; the returned Cmds run elsewhere and report back
// through Update.
type Coordinator struct {
	ctx   context.Context
	deps  Deps
	state State
}

// New creates a coordinator for userID. ctx bounds every request it issues.
func New(ctx context.Context, deps Deps, userID int) *Coordinator {
	if ctx == nil {
		ctx = context.Background()
	}
	if userID <= 0 {
		userID = 1
	}
	return &Coordinator{
		ctx:  ctx,
		deps: deps,
		state: State{
			Mode:       ModeBrowsing,
			Pagination: models.Pagination{CurrentPage: 1},
			UserID:     userID,
			Favorites:  NewFavoriteSet(nil),
		},
	}
}

// Init loads users, the active user's favorites and the first page.
func (c *Coordinator) Init() tea.Cmd {
	return tea.Batch(
		c.loadUsers(),
		c.loadFavorites(),
		c.fetchPage(1),
	)
}

// Update applies a result message. Messages it does not own return nil.
func (c *Coordinator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		return c.applyPage(msg)
	case SearchResultMsg:
		return c.applySearch(msg)
	case FavoriteJobsMsg:
		return c.applyFavoriteJobs(msg)
	case FavoritesLoadedMsg:
		return c.applyFavoritesLoaded(msg)
	case FavoriteMutatedMsg:
		return c.applyFavoriteMutated(msg)
	case UsersLoadedMsg:
		return c.applyUsers(msg)
	}
	return nil
}

// State returns a copy of the current state. Slices are shared; treat them
// as read-only.
func (c *Coordinator) State() State { return c.state }

func (c *Coordinator) Mode() ViewMode                { return c.state.Mode }
func (c *Coordinator) Phase() SearchPhase            { return c.state.Phase }
func (c *Coordinator) Query() string                 { return c.state.Query }
func (c *Coordinator) QueryEpoch() uint64            { return c.state.QueryEpoch }
func (c *Coordinator) Jobs() []models.Job            { return c.state.Jobs }
func (c *Coordinator) Pagination() models.Pagination { return c.state.Pagination }
func (c *Coordinator) UserID() int                   { return c.state.UserID }
func (c *Coordinator) Users() []models.User          { return c.state.Users }
func (c *Coordinator) Notice() *Notice               { return c.state.Notice }
func (c *Coordinator) Favorites() *FavoriteSet       { return c.state.Favorites }

// Loading reports whether the visible view is waiting on a request.
func (c *Coordinator) Loading() bool {
	switch c.state.Mode {
	case ModeSearching:
		return c.state.Phase == PhaseSearching
	case ModeFavoritesOnly:
		return c.state.loadingFavs
	default:
		return c.state.loadingPage
	}
}

// DismissError clears the notice if id is still the one shown. id 0 clears
// whatever is shown.
func (c *Coordinator) DismissError(id uint64) {
	if c.state.Notice == nil {
		return
	}
	if id == 0 || c.state.Notice.ID == id {
		c.state.Notice = nil
	}
}

func (c *Coordinator) fail(err error) {
	kind := apperror.KindOf(err)
	msg := kind.DefaultMessage()
	if e, ok := apperror.As(err); ok {
		msg = e.UserMessage()
	}
	c.state.noticeID++
	c.state.Notice = &Notice{ID: c.state.noticeID, Code: kind.Code(), Message: msg}
}
