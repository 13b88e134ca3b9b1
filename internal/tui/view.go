package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blockedby/starred-jobs/internal/browser"
	"github.com/blockedby/starred-jobs/internal/models"
)

const maxVisiblePages = 5

// View renders the browser
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.styles.Search.Render(m.input.View()))
	b.WriteString("\n")

	if n := m.coord.Notice(); n != nil {
		b.WriteString(m.styles.Error.Render(n.Message + "  " + m.styles.Dim.Render("(x to dismiss)")))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderJobs())

	if footer := m.renderPagination(); footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return m.styles.Main.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render("★ Starred Jobs")

	who := fmt.Sprintf("user #%d", m.coord.UserID())
	if u, ok := m.coord.ActiveUser(); ok {
		who = u.DisplayName()
	}
	parts := []string{title, m.styles.User.Render(who)}

	favs := m.coord.Favorites().Len()
	parts = append(parts, m.styles.Dim.Render(fmt.Sprintf("%d favorites", favs)))

	if m.coord.Mode() != browser.ModeBrowsing {
		parts = append(parts, m.styles.Mode.Render("["+m.coord.Mode().String()+"]"))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderStatus() string {
	if m.coord.Loading() {
		label := "Loading jobs..."
		if m.coord.Mode() == browser.ModeSearching {
			label = fmt.Sprintf("Searching for %q...", m.coord.Query())
		}
		return m.styles.Loading.Render(m.spinner.View() + " " + label)
	}
	if m.coord.Phase() == browser.PhaseBelowThreshold {
		return m.styles.Dim.Render(fmt.Sprintf("Type at least %d characters to search", browser.MinSearchLength))
	}
	return ""
}

func (m *Model) renderJobs() string {
	jobs := m.coord.Jobs()
	if len(jobs) == 0 {
		if m.coord.Loading() {
			return ""
		}
		return m.styles.Dim.Render(m.emptyText())
	}

	width := m.width - 10
	if width < 20 {
		width = 80
	}

	var b strings.Builder
	for i, job := range jobs {
		b.WriteString(m.renderJob(job, i == m.selected, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) emptyText() string {
	switch m.coord.Mode() {
	case browser.ModeFavoritesOnly:
		return "No favorites yet. Press f on a job to star it."
	case browser.ModeSearching:
		return fmt.Sprintf("No jobs match %q.", m.coord.Query())
	default:
		return "No jobs found."
	}
}

func (m *Model) renderJob(job models.Job, selected bool, width int) string {
	star := "☆"
	if m.coord.IsFavorited(job.ID) {
		star = m.styles.Star.Render("★")
	}
	if m.coord.Favorites().Pending(job.ID) {
		star += m.styles.Pending.Render("…")
	} else {
		star += " "
	}

	cursor := "  "
	if selected {
		cursor = "> "
	}

	line := fmt.Sprintf("%s%s %s %s", cursor, star, job.Title, m.styles.Company.Render("· "+job.Company))
	if selected {
		line = m.styles.Selected.Render(line)
	}

	desc := firstLine(job.Description)
	if desc == "" {
		return line
	}
	return line + "\n      " + m.styles.Dim.Render(truncate(desc, width))
}

func (m *Model) renderPagination() string {
	if m.coord.Mode() != browser.ModeBrowsing {
		return ""
	}
	p := m.coord.Pagination()
	if p.TotalPages <= 1 {
		return ""
	}

	var parts []string
	prev := "‹ prev"
	if !p.HasPrev() {
		prev = m.styles.Dim.Render(prev)
	}
	parts = append(parts, prev)

	for _, n := range pageWindow(p, maxVisiblePages) {
		label := fmt.Sprintf("%d", n)
		if n == p.CurrentPage {
			parts = append(parts, m.styles.PageCurrent.Render("["+label+"]"))
		} else {
			parts = append(parts, m.styles.Page.Render(label))
		}
	}

	next := "next ›"
	if !p.HasNext() {
		next = m.styles.Dim.Render(next)
	}
	parts = append(parts, next)

	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, " "),
		m.styles.Dim.Render(fmt.Sprintf("   page %d of %d", p.CurrentPage, p.TotalPages)))
}

// pageWindow returns up to size page numbers centered on the current page.
func pageWindow(p models.Pagination, size int) []int {
	if p.TotalPages < 1 || size < 1 {
		return nil
	}
	half := size / 2
	start := max(1, p.CurrentPage-half)
	end := min(p.TotalPages, start+size-1)
	if end-start+1 < size {
		start = max(1, end-size+1)
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
