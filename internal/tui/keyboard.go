package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/syllabus/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filter.Editing() {
		return m.handleFilterKey(msg)
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		m.Tab = (m.Tab + 1) % tabCount
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.PrevTab):
		m.Tab = (m.Tab + tabCount - 1) % tabCount
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.cursor[m.Tab] > 0 {
			m.cursor[m.Tab]--
		}
		return m, nil

	case key.Matches(msg, Keys.Down):
		if m.cursor[m.Tab] < m.rowCount()-1 {
			m.cursor[m.Tab]++
		}
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.cursor[m.Tab] = 0
		return m, nil

	case key.Matches(msg, Keys.End):
		m.cursor[m.Tab] = max(0, m.rowCount()-1)
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if m.Tab != TabCatalog {
			return m, nil
		}
		m.cursor[TabCatalog] = 0
		return m, m.filter.focus()

	case key.Matches(msg, Keys.CycleCategory):
		if m.Tab == TabCatalog {
			m.filter.cycleCategory()
			m.cursor[TabCatalog] = 0
		}
		return m, nil

	case key.Matches(msg, Keys.CycleLevel):
		if m.Tab == TabCatalog {
			m.filter.cycleLevel()
			m.cursor[TabCatalog] = 0
		}
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Tab == TabCatalog && m.filter.Query() != "" {
			m.filter.clear()
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, Keys.Undo):
		if !m.toasts.Undo() {
			return m.setStatus("Nothing to undo", false)
		}
		return m, nil

	case key.Matches(msg, Keys.Enroll):
		return m.enrollSelected()

	case key.Matches(msg, Keys.Unenroll):
		return m.unenrollSelected()

	case key.Matches(msg, Keys.ToggleWishlist):
		return m.toggleWishlistSelected()

	case key.Matches(msg, Keys.RemoveNow):
		return m.removeWishlistNow()
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filter.clear()
		m.clampCursor()
		return m, nil
	case tea.KeyEnter:
		m.filter.blur()
		return m, nil
	}

	cmd := m.filter.update(msg)
	m.cursor[TabCatalog] = 0
	return m, cmd
}

func (m Model) enrollSelected() (tea.Model, tea.Cmd) {
	course, ok := m.SelectedCourse()
	if !ok {
		return m, nil
	}
	err := m.engine.Enroll(course.Ref())
	m.clampCursor()
	return m.reportErr(err)
}

func (m Model) unenrollSelected() (tea.Model, tea.Cmd) {
	course, ok := m.SelectedCourse()
	if !ok {
		return m, nil
	}
	if !m.engine.IsEnrolled(course.ID) {
		return m.setStatus("Not enrolled in "+course.Title, false)
	}
	err := m.engine.Unenroll(course.ID)
	m.clampCursor()
	return m.reportErr(err)
}

func (m Model) toggleWishlistSelected() (tea.Model, tea.Cmd) {
	course, ok := m.SelectedCourse()
	if !ok {
		return m, nil
	}

	var err error
	switch {
	case m.engine.HasPendingWishlistRemoval(course.ID):
		err = m.engine.AddToWishlist(course.Ref())
	case m.engine.IsWishlisted(course.ID):
		err = m.engine.RemoveFromWishlist(course.ID, true)
	default:
		err = m.engine.AddToWishlist(course.Ref())
	}
	m.clampCursor()
	return m.reportErr(err)
}

func (m Model) removeWishlistNow() (tea.Model, tea.Cmd) {
	course, ok := m.SelectedCourse()
	if !ok || !m.engine.IsWishlisted(course.ID) {
		return m, nil
	}
	err := m.engine.RemoveFromWishlist(course.ID, false)
	m.clampCursor()
	return m.reportErr(err)
}

// reportErr surfaces a failed commit in the status bar. The change itself
// stays applied in memory.
func (m Model) reportErr(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		return m, nil
	}
	m.logger.Warn("action not saved", "error", err)
	if errors.Is(err, domain.ErrSnapshotNotSaved) {
		return m.setStatus("Changes not saved: "+err.Error(), true)
	}
	return m.setStatus(err.Error(), true)
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusDuration)
}
