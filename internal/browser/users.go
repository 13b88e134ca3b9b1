package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blockedby/starred-jobs/internal/models"
)

// SwitchUser makes id the active user. Everything derived from the previous
// user is dropped before the new user's favorites and first page are fetched
// concurrently.
func (c *Coordinator) SwitchUser(id int) tea.Cmd {
	if id <= 0 || id == c.state.UserID {
		return nil
	}
	c.state.UserID = id
	c.state.session++
	c.state.Mode = ModeBrowsing
	c.state.Snapshot = nil
	c.state.favJobsSeq++
	c.state.loadingFavs = false
	c.resetSearch()
	c.state.Favorites = NewFavoriteSet(nil)
	c.state.Pagination.CurrentPage = 1

	return tea.Batch(c.loadFavorites(), c.fetchPage(1))
}

// NextUser switches to the user after the active one in the user list.
func (c *Coordinator) NextUser() tea.Cmd {
	users := c.state.Users
	if len(users) == 0 {
		return nil
	}
	next := users[0].ID
	for i, u := range users {
		if u.ID == c.state.UserID {
			next = users[(i+1)%len(users)].ID
			break
		}
	}
	return c.SwitchUser(next)
}

// ActiveUser returns the active user if it is in the loaded list.
func (c *Coordinator) ActiveUser() (models.User, bool) {
	for _, u := range c.state.Users {
		if u.ID == c.state.UserID {
			return u, true
		}
	}
	return models.User{}, false
}

func (c *Coordinator) loadUsers() tea.Cmd {
	dir := c.deps.Users
	if dir == nil {
		return nil
	}
	ctx := c.ctx
	return func() tea.Msg {
		users, err := dir.Users(ctx)
		return UsersLoadedMsg{Users: users, Err: err}
	}
}

func (c *Coordinator) applyUsers(msg UsersLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		c.state.Users = []models.User{}
		c.fail(msg.Err)
		return nil
	}
	c.state.Users = msg.Users
	return nil
}
