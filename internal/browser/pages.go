package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blockedby/starred-jobs/internal/logger"
)

// GoToPage loads page n of the feed. It does nothing outside browsing mode
// or when n is out of range or already shown.
func (c *Coordinator) GoToPage(n int) tea.Cmd {
	if c.state.Mode != ModeBrowsing {
		return nil
	}
	p := c.state.Pagination
	if n < 1 || n == p.CurrentPage {
		return nil
	}
	if p.TotalPages > 0 && n > p.TotalPages {
		return nil
	}
	return c.fetchPage(n)
}

// NextPage and PrevPage step through the feed.
func (c *Coordinator) NextPage() tea.Cmd { return c.GoToPage(c.state.Pagination.CurrentPage + 1) }

func (c *Coordinator) PrevPage() tea.Cmd { return c.GoToPage(c.state.Pagination.CurrentPage - 1) }

func (c *Coordinator) fetchPage(n int) tea.Cmd {
	c.state.pageSeq++
	seq := c.state.pageSeq
	c.state.loadingPage = true

	cat := c.deps.Catalog
	ctx := c.ctx
	return func() tea.Msg {
		page, err := cat.ListJobs(ctx, n)
		return PageLoadedMsg{Seq: seq, Page: page, Err: err}
	}
}

func (c *Coordinator) applyPage(msg PageLoadedMsg) tea.Cmd {
	if msg.Seq != c.state.pageSeq {
		return nil
	}
	c.state.loadingPage = false
	if c.state.Mode == ModeFavoritesOnly && c.state.leftMode == ModeBrowsing {
		c.refreshSnapshot(msg)
		return nil
	}
	if c.state.Mode != ModeBrowsing {
		logger.Component("browser").Debug().Str("mode", c.state.Mode.String()).Msg("dropping page result outside browsing")
		return nil
	}
	if msg.Err != nil {
		c.fail(msg.Err)
		return nil
	}

	c.state.Jobs = copyJobs(msg.Page.Jobs)
	c.state.Pagination = msg.Page.Pagination
	c.state.Snapshot = &ViewSnapshot{
		Jobs:       copyJobs(msg.Page.Jobs),
		Pagination: msg.Page.Pagination,
	}
	return nil
}

// refreshSnapshot stores a page that landed after the browsing view was
// hidden behind favorites-only. A failure discards the snapshot so leaving
// favorites-only fetches page 1 again.
func (c *Coordinator) refreshSnapshot(msg PageLoadedMsg) {
	if msg.Err != nil {
		c.state.Snapshot = nil
		c.fail(msg.Err)
		return
	}
	c.state.Snapshot = &ViewSnapshot{
		Jobs:       copyJobs(msg.Page.Jobs),
		Pagination: msg.Page.Pagination,
	}
}

// SetFavoritesOnly enters or leaves the favorites-only view.
func (c *Coordinator) SetFavoritesOnly(on bool) tea.Cmd {
	if on {
		return c.enterFavoritesOnly()
	}
	return c.exitFavoritesOnly()
}

// ToggleFavoritesOnly flips the favorites-only view.
func (c *Coordinator) ToggleFavoritesOnly() tea.Cmd {
	return c.SetFavoritesOnly(c.state.Mode != ModeFavoritesOnly)
}

func (c *Coordinator) enterFavoritesOnly() tea.Cmd {
	if c.state.Mode == ModeFavoritesOnly {
		return nil
	}
	if c.state.Mode == ModeBrowsing {
		c.state.Snapshot = &ViewSnapshot{
			Jobs:       copyJobs(c.state.Jobs),
			Pagination: c.state.Pagination,
		}
	}
	c.state.leftMode = c.state.Mode
	c.state.Mode = ModeFavoritesOnly
	return c.fetchFavoriteJobs()
}

func (c *Coordinator) exitFavoritesOnly() tea.Cmd {
	if c.state.Mode != ModeFavoritesOnly {
		return nil
	}
	c.state.favJobsSeq++
	c.state.loadingFavs = false
	c.state.Mode = ModeBrowsing

	if snap := c.state.Snapshot; snap != nil && c.state.leftMode == ModeBrowsing {
		c.state.Jobs = copyJobs(snap.Jobs)
		c.state.Pagination = snap.Pagination
		return nil
	}

	c.resetSearch()
	c.state.Pagination.CurrentPage = 1
	return c.fetchPage(1)
}
