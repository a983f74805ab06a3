package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/mmcdole/syllabus/internal/tui/styles"
)

const progressBarWidth = 20

// View renders the application
func (m Model) View() string {
	if m.ShowHelp {
		return m.renderHelp()
	}

	sections := []string{m.renderTabs(), ""}
	switch m.Tab {
	case TabCourses:
		sections = append(sections, m.renderCourses())
	case TabWishlist:
		sections = append(sections, m.renderWishlist())
	default:
		sections = append(sections, m.renderCatalog())
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if toasts := m.renderToasts(); toasts != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", toasts)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.renderFooter())
}

func (m Model) renderTabs() string {
	snap := m.engine.Snapshot()
	counts := [tabCount]int{len(m.catalog.All()), len(snap.Enrolled), len(snap.Wishlist)}

	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%s (%d)", t, counts[t])
		if t == m.Tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderCatalog() string {
	var b strings.Builder
	if m.filter.Narrowed() {
		b.WriteString(m.filter.selectionView())
		b.WriteString("\n")
	}
	if m.filter.Editing() || m.filter.Query() != "" {
		b.WriteString(m.filter.view())
		b.WriteString("\n")
	}

	if len(m.filter.results) == 0 {
		b.WriteString(styles.DimStyle.Render("  No courses match"))
		return b.String()
	}

	for i, r := range m.filter.results {
		c := r.Course
		marker := " "
		switch {
		case m.engine.IsEnrolled(c.ID):
			marker = styles.EnrolledMark
		case m.engine.IsWishlisted(c.ID):
			marker = styles.WishlistedMark
		}
		title := styles.HighlightMatches(c.Title, r.MatchedIndexes)
		meta := styles.DimStyle.Render(fmt.Sprintf("%s · %s · %d lessons · %s",
			c.Category, c.Level, c.Lessons, c.PriceLabel()))
		b.WriteString(m.renderRow(i, marker+" "+title+"  "+meta, false))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderCourses() string {
	enrolled := m.engine.Snapshot().Enrolled
	if len(enrolled) == 0 {
		return styles.DimStyle.Render("  You are not enrolled in any courses yet")
	}

	var b strings.Builder
	for i, c := range enrolled {
		marker := styles.EnrolledMark
		if c.IsComplete() {
			marker = styles.CompleteMark
		}
		line := fmt.Sprintf("%s %s  %s %3d%%  %s  %s",
			marker,
			styles.Truncate(c.Title, 40),
			styles.RenderProgressBar(c.Progress, progressBarWidth),
			c.Progress,
			styles.DimStyle.Render(c.ProgressLabel()),
			styles.SubtitleStyle.Render(c.LastLesson))
		b.WriteString(m.renderRow(i, line, m.engine.HasPendingUnenroll(c.ID)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderWishlist() string {
	wishlist := m.engine.Snapshot().Wishlist
	if len(wishlist) == 0 {
		return styles.DimStyle.Render("  Your wishlist is empty")
	}

	var b strings.Builder
	for i, w := range wishlist {
		line := fmt.Sprintf("%s %s  %s", styles.WishlistedMark, styles.Truncate(w.Title, 40),
			styles.DimStyle.Render(fmt.Sprintf("%s · %s · %d lessons · $%.2f", w.Category, w.Level, w.Lessons, w.Price)))
		b.WriteString(m.renderRow(i, line, m.engine.HasPendingWishlistRemoval(w.ID)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderRow(i int, content string, pending bool) string {
	switch {
	case i == m.cursor[m.Tab]:
		return styles.SelectedItemStyle.Render(content)
	case pending:
		return styles.PendingItemStyle.Render(content)
	default:
		return styles.NormalItemStyle.Render(content)
	}
}

func (m Model) renderToasts() string {
	items := m.toasts.Items()
	if len(items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(items))
	for _, t := range items {
		style := styles.ToastStyle
		switch t.Level {
		case domain.LevelSuccess:
			style = styles.ToastSuccessStyle
		case domain.LevelWarning:
			style = styles.ToastWarningStyle
		}
		content := styles.TitleStyle.Render(t.Title)
		if t.Message != "" {
			content += "\n" + styles.SubtitleStyle.Render(t.Message)
		}
		if t.Action != nil {
			content += "\n" + styles.HelpKeyStyle.Render("u") + " " + styles.HelpDescStyle.Render(strings.ToLower(t.Action.Label))
		}
		rendered = append(rendered, style.Render(content))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.AccentStyle.Render(m.StatusMsg)
	}
	return m.help.ShortHelpView(Keys.ShortHelp())
}

func (m Model) renderHelp() string {
	title := styles.TitleStyle.Render("Keyboard shortcuts")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.help.FullHelpView(Keys.FullHelp()))
}
