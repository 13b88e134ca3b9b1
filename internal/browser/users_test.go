package browser

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/starred-jobs/internal/apperror"
)

func TestSwitchUser_Isolation(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())
	h.run(h.c.GoToPage(3))
	h.run(h.c.SetFavoritesOnly(true))
	staleMutation := single(t, h.c.ToggleFavorite(31))
	staleSearch := single(t, h.c.Settle("golang"))

	cmd := h.c.SwitchUser(2)
	require.NotNil(t, cmd)

	assert.Equal(t, 2, h.c.UserID())
	assert.Equal(t, ModeBrowsing, h.c.Mode())
	assert.Nil(t, h.c.State().Snapshot)
	assert.Equal(t, PhaseIdle, h.c.Phase())
	assert.Equal(t, "", h.c.Query())
	assert.Equal(t, 0, h.c.Favorites().Len())

	msgs := collect(cmd)
	require.Len(t, msgs, 2)
	h.deliver(msgs...)
	h.deliver(staleMutation, staleSearch)

	assert.True(t, h.c.IsFavorited(21))
	assert.False(t, h.c.IsFavorited(11))
	assert.False(t, h.c.IsFavorited(31))
	assert.Equal(t, []int{11, 12}, ids(h.c.Jobs()))
	assert.Equal(t, 1, h.c.Pagination().CurrentPage)
}

func TestSwitchUser_ResultsApplyIndependently(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())

	msgs := collect(h.c.SwitchUser(2))
	require.Len(t, msgs, 2)

	var favs, page tea.Msg
	for _, m := range msgs {
		switch m.(type) {
		case FavoritesLoadedMsg:
			favs = m
		case PageLoadedMsg:
			page = m
		}
	}
	require.NotNil(t, favs)
	require.NotNil(t, page)

	h.deliver(page)
	assert.Equal(t, 0, h.c.Favorites().Len())
	assert.Len(t, h.c.Jobs(), 2)

	h.deliver(favs)
	assert.True(t, h.c.IsFavorited(21))
}

func TestSwitchUser_StaleFavoritesDiscarded(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())

	toTwo := collect(h.c.SwitchUser(2))
	h.run(h.c.SwitchUser(1))
	h.deliver(toTwo...)

	assert.Equal(t, 1, h.c.UserID())
	assert.True(t, h.c.IsFavorited(11))
	assert.False(t, h.c.IsFavorited(21))
}

func TestSwitchUser_FavoritesFailure(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())
	h.store.loadErr = apperror.Wrap(apperror.KindNetwork, "", assert.AnError)

	h.run(h.c.SwitchUser(2))

	assert.Equal(t, 0, h.c.Favorites().Len())
	require.NotNil(t, h.c.Notice())
	assert.Equal(t, "network_error", h.c.Notice().Code)
	assert.Len(t, h.c.Jobs(), 2, "page result still applies")
}

func TestSwitchUser_JobsFailureKeepsFavorites(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())
	h.cat.listErr = apperror.Wrap(apperror.KindFetch, "", assert.AnError)

	h.run(h.c.SwitchUser(2))

	assert.True(t, h.c.IsFavorited(21))
	require.NotNil(t, h.c.Notice())
	assert.Equal(t, "fetch_error", h.c.Notice().Code)
}

func TestSwitchUser_SameUserIsNoop(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.c.SwitchUser(1))
	assert.Nil(t, h.c.SwitchUser(0))
}

func TestNextUser(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.c.NextUser(), "no users loaded")

	h.run(h.c.Init())
	h.run(h.c.NextUser())
	assert.Equal(t, 2, h.c.UserID())
	u, ok := h.c.ActiveUser()
	require.True(t, ok)
	assert.Equal(t, "Alan", u.FirstName)

	h.run(h.c.NextUser())
	assert.Equal(t, 1, h.c.UserID())
}

func TestSwitchUser_MutationFromEarlierSessionDiscarded(t *testing.T) {
	tests := []struct {
		name   string
		addErr error
	}{
		{"late success", nil},
		{"late failure", apperror.New(apperror.KindNetwork, "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.run(h.c.Init())
			h.store.addErr = tt.addErr

			late := single(t, h.c.ToggleFavorite(31))
			h.run(h.c.SwitchUser(2))
			h.run(h.c.SwitchUser(1))
			h.deliver(late)

			assert.Equal(t, 1, h.c.UserID())
			assert.False(t, h.c.IsFavorited(31))
			assert.False(t, h.c.Favorites().Acknowledged(31))
			assert.True(t, h.c.IsFavorited(11))
			assert.Nil(t, h.c.Notice())
		})
	}
}
