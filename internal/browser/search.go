package browser

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blockedby/starred-jobs/internal/logger"
	"github.com/blockedby/starred-jobs/internal/models"
)

// Settle feeds a debounced query into the search state machine.
func (c *Coordinator) Settle(query string) tea.Cmd {
	q := strings.TrimSpace(query)
	c.state.Query = q

	switch {
	case q == "":
		c.state.Phase = PhaseIdle
		c.state.Token++
		switch {
		case c.state.Mode == ModeSearching:
			c.state.Mode = ModeBrowsing
			return c.fetchPage(1)
		case c.state.Mode == ModeFavoritesOnly && c.state.leftMode == ModeSearching:
			// the search ended underneath favorites-only
			c.state.leftMode = ModeBrowsing
		}
		return nil

	case utf8.RuneCountInString(q) < MinSearchLength:
		c.state.Phase = PhaseBelowThreshold
		return nil
	}

	c.state.Token++
	token := c.state.Token
	c.state.Phase = PhaseSearching
	c.state.Mode = ModeSearching

	cat := c.deps.Catalog
	ctx := c.ctx
	return func() tea.Msg {
		jobs, err := cat.Search(ctx, q)
		return SearchResultMsg{Token: token, Query: q, Jobs: jobs, Err: err}
	}
}

// ClearSearch empties the query and always reloads the first page.
func (c *Coordinator) ClearSearch() tea.Cmd {
	c.resetSearch()
	c.state.Mode = ModeBrowsing
	c.state.Pagination.CurrentPage = 1
	return c.fetchPage(1)
}

func (c *Coordinator) resetSearch() {
	c.state.Query = ""
	c.state.Phase = PhaseIdle
	c.state.Token++
	c.state.QueryEpoch++
}

func (c *Coordinator) applySearch(msg SearchResultMsg) tea.Cmd {
	if msg.Token != c.state.Token || c.state.Mode != ModeSearching {
		logger.Component("browser").Debug().Str("query", msg.Query).Msg("dropping stale search result")
		return nil
	}
	if c.state.Phase == PhaseSearching {
		c.state.Phase = PhaseResults
	}
	c.state.Pagination = models.SinglePage

	if msg.Err != nil {
		c.state.Jobs = nil
		c.fail(msg.Err)
		return nil
	}

	jobs := msg.Jobs
	if len(jobs) > MaxSearchResults {
		jobs = jobs[:MaxSearchResults]
	}
	c.state.Jobs = copyJobs(jobs)
	c.state.Notice = nil
	return nil
}
