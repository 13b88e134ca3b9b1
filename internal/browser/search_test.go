package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/starred-jobs/internal/apperror"
	"github.com/blockedby/starred-jobs/internal/models"
)

func TestSettle_Thresholds(t *testing.T) {
	tests := []struct {
		name  string
		query string
		phase SearchPhase
		fetch bool
	}{
		{"empty", "", PhaseIdle, false},
		{"whitespace", "   ", PhaseIdle, false},
		{"one char", "g", PhaseBelowThreshold, false},
		{"one rune", "ж", PhaseBelowThreshold, false},
		{"padded one char", "  g ", PhaseBelowThreshold, false},
		{"two chars", "go", PhaseSearching, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			cmd := h.c.Settle(tt.query)
			assert.Equal(t, tt.phase, h.c.Phase())
			assert.Equal(t, tt.fetch, cmd != nil)
			h.run(cmd)
			assert.Empty(t, h.cat.listCalls)
		})
	}
}

func TestSettle_SearchResultsReplaceView(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())
	h.cat.searchN = 30

	h.run(h.c.Settle(" golang "))

	assert.Equal(t, []string{"golang"}, h.cat.searchCalls)
	assert.Equal(t, ModeSearching, h.c.Mode())
	assert.Equal(t, PhaseResults, h.c.Phase())
	assert.Len(t, h.c.Jobs(), MaxSearchResults)
	assert.Equal(t, models.SinglePage, h.c.Pagination())
}

func TestSettle_StaleSearchSuppressed(t *testing.T) {
	for _, order := range []string{"newest first", "oldest first"} {
		t.Run(order, func(t *testing.T) {
			h := newHarness(t)
			older := single(t, h.c.Settle("rust"))
			newer := single(t, h.c.Settle("golang"))

			if order == "newest first" {
				h.deliver(newer, older)
			} else {
				h.deliver(older, newer)
			}

			require.NotEmpty(t, h.c.Jobs())
			for _, j := range h.c.Jobs() {
				assert.Equal(t, "golang", j.Title)
			}
			assert.Equal(t, PhaseResults, h.c.Phase())
		})
	}
}

func TestSettle_BelowThresholdKeepsView(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Settle("golang"))
	before := h.c.Jobs()

	cmd := h.c.Settle("g")
	assert.Nil(t, cmd)
	assert.Equal(t, PhaseBelowThreshold, h.c.Phase())
	assert.Equal(t, before, h.c.Jobs())
	assert.Equal(t, ModeSearching, h.c.Mode())
}

func TestSettle_EmptyAfterSearchReturnsToBrowsing(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Settle("golang"))
	h.run(h.c.Settle("g"))

	h.run(h.c.Settle(""))

	assert.Equal(t, ModeBrowsing, h.c.Mode())
	assert.Equal(t, PhaseIdle, h.c.Phase())
	assert.Equal(t, []int{1}, h.cat.listCalls)
	assert.Equal(t, []int{11, 12}, ids(h.c.Jobs()))
}

func TestSettle_EmptyWhileBrowsingDoesNothing(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.c.Settle(""))
	assert.Nil(t, h.c.Settle("x"))
	assert.Nil(t, h.c.Settle(""))
}

func TestSearch_Failure(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())
	h.cat.searchErr = apperror.Wrap(apperror.KindSearch, "", assert.AnError)

	h.run(h.c.Settle("golang"))

	assert.Empty(t, h.c.Jobs())
	assert.Equal(t, PhaseResults, h.c.Phase())
	require.NotNil(t, h.c.Notice())
	assert.Equal(t, "search_error", h.c.Notice().Code)
	assert.Equal(t, "Search failed. Please try again.", h.c.Notice().Message)
	assert.Len(t, h.cat.searchCalls, 1, "no retry")
}

func TestSearch_SuccessClearsNotice(t *testing.T) {
	h := newHarness(t)
	h.c.fail(assert.AnError)

	h.run(h.c.Settle("golang"))
	assert.Nil(t, h.c.Notice())
}

func TestClearSearch_AlwaysFetchesFirstPage(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())
	h.run(h.c.GoToPage(3))

	cmd := h.c.ClearSearch()
	require.NotNil(t, cmd, "clear fetches even when no search was active")
	assert.Equal(t, 1, h.c.Pagination().CurrentPage)
	assert.Equal(t, "", h.c.Query())
	assert.Equal(t, PhaseIdle, h.c.Phase())
	h.run(cmd)
	assert.Equal(t, []int{1, 3, 1}, h.cat.listCalls)
	assert.Equal(t, []int{11, 12}, ids(h.c.Jobs()))
}

func TestClearSearch_InvalidatesInflightSearch(t *testing.T) {
	h := newHarness(t)
	h.run(h.c.Init())
	pending := single(t, h.c.Settle("golang"))
	epoch := h.c.QueryEpoch()

	h.run(h.c.ClearSearch())
	h.deliver(pending)

	assert.Equal(t, ModeBrowsing, h.c.Mode())
	assert.Equal(t, []int{11, 12}, ids(h.c.Jobs()))
	assert.Greater(t, h.c.QueryEpoch(), epoch)
}
