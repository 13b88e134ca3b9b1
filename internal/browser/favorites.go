package browser

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blockedby/starred-jobs/internal/logger"
	"github.com/blockedby/starred-jobs/internal/models"
)

// FavoriteSet tracks favorite membership as the last acknowledged server
// state overlaid by pending optimistic edits.
type FavoriteSet struct {
	shown   map[int]bool
	acked   map[int]bool
	pending map[int]int  // in-flight mutations per job
	latest  map[int]bool // target of the newest in-flight mutation per job
	order   map[int]uint64
	next    uint64
}

// NewFavoriteSet returns a set holding ids as acknowledged members.
func NewFavoriteSet(ids []int) *FavoriteSet {
	s := &FavoriteSet{
		shown:   make(map[int]bool),
		acked:   make(map[int]bool),
		pending: make(map[int]int),
		latest:  make(map[int]bool),
		order:   make(map[int]uint64),
	}
	s.reset(ids)
	return s
}

func (s *FavoriteSet) reset(ids []int) {
	s.acked = make(map[int]bool, len(ids))
	s.shown = make(map[int]bool, len(ids))
	s.order = make(map[int]uint64, len(ids))
	s.next = 0
	for _, id := range ids {
		s.acked[id] = true
		s.add(id)
	}
	for id, n := range s.pending {
		if n == 0 {
			continue
		}
		if s.latest[id] {
			s.add(id)
		} else {
			delete(s.shown, id)
		}
	}
}

func (s *FavoriteSet) add(id int) {
	if !s.shown[id] {
		s.next++
		s.order[id] = s.next
	}
	s.shown[id] = true
}

// Has reports optimistic membership.
func (s *FavoriteSet) Has(id int) bool { return s.shown[id] }

// Acknowledged reports membership as last confirmed by the server.
func (s *FavoriteSet) Acknowledged(id int) bool { return s.acked[id] }

// Pending reports whether a mutation for id is in flight.
func (s *FavoriteSet) Pending(id int) bool { return s.pending[id] > 0 }

// Len is the optimistic member count.
func (s *FavoriteSet) Len() int { return len(s.shown) }

// IDs returns members in the order they joined the set.
func (s *FavoriteSet) IDs() []int {
	ids := make([]int, 0, len(s.shown))
	for id := range s.shown {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return s.order[ids[i]] < s.order[ids[j]] })
	return ids
}

// begin flips id optimistically and returns the new target membership.
func (s *FavoriteSet) begin(id int) bool {
	target := !s.shown[id]
	if target {
		s.add(id)
	} else {
		delete(s.shown, id)
	}
	s.pending[id]++
	s.latest[id] = target
	return target
}

// settle records the outcome of a mutation. A failed mutation is rolled back
// only when the optimistic membership still equals its target; otherwise a
// newer toggle owns the state. It reports whether a rollback happened.
func (s *FavoriteSet) settle(id int, target bool, failed bool) bool {
	if s.pending[id] > 0 {
		s.pending[id]--
	}
	if s.pending[id] == 0 {
		delete(s.pending, id)
		delete(s.latest, id)
	}

	if !failed {
		if target {
			s.acked[id] = true
		} else {
			delete(s.acked, id)
		}
		return false
	}

	if s.shown[id] != target {
		return false
	}
	if target {
		delete(s.shown, id)
	} else {
		s.add(id)
	}
	return true
}

// IsFavorited reports the optimistic membership of jobID for the active user.
func (c *Coordinator) IsFavorited(jobID int) bool {
	return c.state.Favorites.Has(jobID)
}

// ToggleFavorite flips jobID immediately and sends the matching mutation.
func (c *Coordinator) ToggleFavorite(jobID int) tea.Cmd {
	if jobID <= 0 {
		return nil
	}
	target := c.state.Favorites.begin(jobID)
	userID := c.state.UserID
	session := c.state.session
	store := c.deps.Favorites
	ctx := c.ctx

	return func() tea.Msg {
		var err error
		if target {
			err = store.AddFavorite(ctx, userID, jobID)
		} else {
			err = store.RemoveFavorite(ctx, userID, jobID)
		}
		return FavoriteMutatedMsg{UserID: userID, Session: session, JobID: jobID, Target: target, Err: err}
	}
}

func (c *Coordinator) applyFavoriteMutated(msg FavoriteMutatedMsg) tea.Cmd {
	if msg.UserID != c.state.UserID || msg.Session != c.state.session {
		return nil
	}
	rolledBack := c.state.Favorites.settle(msg.JobID, msg.Target, msg.Err != nil)
	if msg.Err != nil {
		logger.Component("browser").Warn().Err(msg.Err).
			Int("user_id", msg.UserID).
			Int("job_id", msg.JobID).
			Bool("target", msg.Target).
			Bool("rolled_back", rolledBack).
			Msg("favorite mutation failed")
		c.fail(msg.Err)
	}
	return nil
}

func (c *Coordinator) loadFavorites() tea.Cmd {
	c.state.favLoadSeq++
	seq := c.state.favLoadSeq
	userID := c.state.UserID
	store := c.deps.Favorites
	ctx := c.ctx

	return func() tea.Msg {
		ids, err := store.Favorites(ctx, userID)
		return FavoritesLoadedMsg{UserID: userID, Seq: seq, JobIDs: ids, Err: err}
	}
}

func (c *Coordinator) applyFavoritesLoaded(msg FavoritesLoadedMsg) tea.Cmd {
	if msg.UserID != c.state.UserID || msg.Seq != c.state.favLoadSeq {
		return nil
	}
	if msg.Err != nil {
		c.state.Favorites.reset(nil)
		c.fail(msg.Err)
		return nil
	}
	c.state.Favorites.reset(msg.JobIDs)

	// favorites-only entered before the set arrived shows the real set now
	if c.state.Mode == ModeFavoritesOnly {
		return c.fetchFavoriteJobs()
	}
	return nil
}

func (c *Coordinator) fetchFavoriteJobs() tea.Cmd {
	c.state.favJobsSeq++
	ids := c.state.Favorites.IDs()
	c.state.Pagination = models.SinglePage
	if len(ids) == 0 {
		c.state.Jobs = nil
		c.state.loadingFavs = false
		return nil
	}

	seq := c.state.favJobsSeq
	c.state.loadingFavs = true
	cat := c.deps.Catalog
	ctx := c.ctx

	return func() tea.Msg {
		jobs, err := cat.GetJobs(ctx, ids)
		return FavoriteJobsMsg{Seq: seq, Jobs: jobs, Err: err}
	}
}

func (c *Coordinator) applyFavoriteJobs(msg FavoriteJobsMsg) tea.Cmd {
	if msg.Seq != c.state.favJobsSeq {
		return nil
	}
	c.state.loadingFavs = false
	if c.state.Mode != ModeFavoritesOnly {
		return nil
	}
	if msg.Err != nil {
		c.state.Jobs = nil
		c.fail(msg.Err)
		return nil
	}
	c.state.Jobs = copyJobs(msg.Jobs)
	return nil
}
