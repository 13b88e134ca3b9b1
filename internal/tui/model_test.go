package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/starred-jobs/internal/browser"
	"github.com/blockedby/starred-jobs/internal/catalog"
	"github.com/blockedby/starred-jobs/internal/debounce"
	"github.com/blockedby/starred-jobs/internal/models"
)

type stubCatalog struct{}

func (stubCatalog) ListJobs(_ context.Context, page int) (*catalog.JobsPage, error) {
	return &catalog.JobsPage{
		Jobs: []models.Job{
			{ID: page*10 + 1, Title: "Go Engineer", Company: "Acme", Description: "Write Go\nand more"},
			{ID: page*10 + 2, Title: "SRE", Company: "Initech"},
		},
		Pagination: models.Pagination{CurrentPage: page, TotalPages: 3},
	}, nil
}

func (stubCatalog) GetJobs(_ context.Context, ids []int) ([]models.Job, error) {
	jobs := make([]models.Job, 0, len(ids))
	for _, id := range ids {
		jobs = append(jobs, models.Job{ID: id, Title: "Starred role", Company: "Acme"})
	}
	return jobs, nil
}

func (stubCatalog) Search(_ context.Context, q string) ([]models.Job, error) {
	return []models.Job{{ID: 500, Title: "Result for " + q, Company: "Globex"}}, nil
}

type stubStore struct {
	mu   sync.Mutex
	favs map[int][]int
}

func (s *stubStore) Favorites(_ context.Context, userID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.favs[userID]...), nil
}

func (s *stubStore) AddFavorite(context.Context, int, int) error    { return nil }
func (s *stubStore) RemoveFavorite(context.Context, int, int) error { return nil }

type stubUsers struct{}

func (stubUsers) Users(context.Context) ([]models.User, error) {
	return []models.User{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace"},
		{ID: 2, FirstName: "Grace", LastName: "Hopper"},
	}, nil
}

type harness struct {
	m    *Model
	deb  *debounce.Debouncer
	msgs chan tea.Msg
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	deb := debounce.New(20 * time.Millisecond)
	coord := browser.New(context.Background(), browser.Deps{
		Catalog:   stubCatalog{},
		Favorites: &stubStore{favs: map[int][]int{2: {7}}},
		Users:     stubUsers{},
	}, 1)

	h := &harness{
		m:    NewModel(coord, deb),
		deb:  deb,
		msgs: make(chan tea.Msg, 256),
	}
	t.Cleanup(deb.Stop)

	h.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.start(h.m.Init())
	h.settle()
	return h
}

// start runs cmd in the background, the way the program loop would.
func (h *harness) start(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				h.start(c)
			}
			return
		}
		if msg != nil {
			h.msgs <- msg
		}
	}()
}

// settle feeds results back until nothing arrives for a while. Timer-driven
// messages such as spinner ticks and cursor blinks are dropped.
func (h *harness) settle() {
	for {
		select {
		case msg := <-h.msgs:
			switch msg.(type) {
			case settledMsg, browser.PageLoadedMsg, browser.SearchResultMsg,
				browser.FavoriteJobsMsg, browser.FavoritesLoadedMsg,
				browser.FavoriteMutatedMsg, browser.UsersLoadedMsg:
				_, cmd := h.m.Update(msg)
				h.start(cmd)
			}
		case <-time.After(150 * time.Millisecond):
			return
		}
	}
}

func (h *harness) press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		_, cmd := h.m.Update(k)
		h.start(cmd)
	}
}

func runes(s string) []tea.KeyMsg {
	out := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

var (
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyClear = tea.KeyMsg{Type: tea.KeyCtrlX}
)

func TestModel_InitialLoad(t *testing.T) {
	h := newHarness(t)

	view := h.m.View()
	assert.Contains(t, view, "Go Engineer")
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "page 1 of 3")
	assert.Contains(t, view, "Write Go")
	assert.NotContains(t, view, "and more")
}

func TestModel_SearchFlow(t *testing.T) {
	h := newHarness(t)

	h.press(runes("/go")...)
	assert.Equal(t, "go", h.m.input.Value())
	h.settle()

	assert.Equal(t, browser.ModeSearching, h.m.coord.Mode())
	assert.Contains(t, h.m.View(), "Result for go")
	assert.NotContains(t, h.m.View(), "page 1 of 3")

	h.press(keyClear)
	h.settle()
	assert.Equal(t, "", h.m.input.Value())
	assert.Equal(t, browser.ModeBrowsing, h.m.coord.Mode())
	assert.Contains(t, h.m.View(), "Go Engineer")
}

func TestModel_BelowThresholdHint(t *testing.T) {
	h := newHarness(t)

	h.press(runes("/g")...)
	h.settle()
	assert.Equal(t, browser.PhaseBelowThreshold, h.m.coord.Phase())
	assert.Contains(t, h.m.View(), "at least 2 characters")
}

func TestModel_StaleSettledValueIgnored(t *testing.T) {
	h := newHarness(t)

	_, cmd := h.m.Update(settledMsg{query: "rust"})
	h.start(cmd)
	h.settle()
	assert.Equal(t, browser.ModeBrowsing, h.m.coord.Mode())
}

func TestModel_FavoriteAndFavoritesOnly(t *testing.T) {
	h := newHarness(t)

	h.press(runes("jf")...)
	h.settle()
	assert.True(t, h.m.coord.IsFavorited(12))

	h.press(runes("F")...)
	h.settle()
	assert.Equal(t, browser.ModeFavoritesOnly, h.m.coord.Mode())
	assert.Contains(t, h.m.View(), "Starred role")

	h.press(runes("l")...)
	assert.Equal(t, 1, h.m.coord.Pagination().CurrentPage, "paging is locked in favorites-only")

	h.press(runes("F")...)
	h.settle()
	assert.Equal(t, browser.ModeBrowsing, h.m.coord.Mode())
	assert.Contains(t, h.m.View(), "Go Engineer")
}

func TestModel_UserSwitchResetsSearchBox(t *testing.T) {
	h := newHarness(t)

	h.press(runes("/golang")...)
	h.settle()
	h.press(keyEsc)
	require.False(t, h.m.input.Focused())

	h.press(runes("u")...)
	h.settle()

	assert.Equal(t, 2, h.m.coord.UserID())
	assert.Equal(t, "", h.m.input.Value())
	assert.Equal(t, browser.ModeBrowsing, h.m.coord.Mode())
	assert.True(t, h.m.coord.IsFavorited(7))
	assert.Contains(t, h.m.View(), "Grace Hopper")
}

func TestModel_Paging(t *testing.T) {
	h := newHarness(t)

	h.press(runes("l")...)
	h.settle()
	assert.Equal(t, 2, h.m.coord.Pagination().CurrentPage)
	assert.Contains(t, h.m.View(), "page 2 of 3")

	h.press(runes("h")...)
	h.settle()
	assert.Equal(t, 1, h.m.coord.Pagination().CurrentPage)
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)
	_, cmd := h.m.Update(runes("q")[0])
	require.NotNil(t, cmd)

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.Len(t, batch, 1)
		msg = batch[0]()
	}
	assert.Equal(t, tea.QuitMsg{}, msg)
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{1, 0, nil},
	}
	for _, tt := range tests {
		got := pageWindow(models.Pagination{CurrentPage: tt.current, TotalPages: tt.total}, maxVisiblePages)
		assert.Equal(t, tt.want, got, "page %d of %d", tt.current, tt.total)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "…", truncate("abc", 1))
}
