package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/syllabus/internal/catalog"
	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/mmcdole/syllabus/internal/prefs"
	"github.com/mmcdole/syllabus/internal/scheduler"
)

// Enrollments is the engine surface the UI drives.
type Enrollments interface {
	Snapshot() domain.Snapshot
	IsEnrolled(id domain.CourseID) bool
	IsWishlisted(id domain.CourseID) bool
	HasPendingUnenroll(id domain.CourseID) bool
	HasPendingWishlistRemoval(id domain.CourseID) bool
	Enroll(ref domain.CourseRef) error
	Unenroll(id domain.CourseID) error
	AddToWishlist(ref domain.CourseRef) error
	RemoveFromWishlist(id domain.CourseID, withUndo bool) error
}

// TimerSource delivers fired scheduler tokens for dispatch on the event
// loop. *scheduler.Loop satisfies it.
type TimerSource interface {
	Fired() <-chan scheduler.Token
	Dispatch(tok scheduler.Token) bool
}

// Inbox records lesson completions while the terminal is unfocused.
type Inbox interface {
	SetAway(away bool)
	Drain() []domain.Notice
}

// Tab identifies a top-level view.
type Tab int

const (
	TabCatalog Tab = iota
	TabCourses
	TabWishlist
	tabCount
)

var tabTitles = [...]string{"Catalog", "My Courses", "Wishlist"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabTitles[t]
}

// PrefName returns the name stored in the prefs file.
func (t Tab) PrefName() string {
	switch t {
	case TabCourses:
		return prefs.TabCourses
	case TabWishlist:
		return prefs.TabWishlist
	default:
		return prefs.TabCatalog
	}
}

// TabFromPref maps a prefs tab name back to a Tab.
func TabFromPref(name string) Tab {
	switch name {
	case prefs.TabCourses:
		return TabCourses
	case prefs.TabWishlist:
		return TabWishlist
	default:
		return TabCatalog
	}
}

const (
	tickInterval   = 250 * time.Millisecond
	statusDuration = 4 * time.Second
)

// Options wires the model. Timers and Inbox may be nil.
type Options struct {
	Engine  Enrollments
	Catalog *catalog.Catalog
	Timers  TimerSource
	Inbox   Inbox
	Toasts  *Toasts
	Tab     Tab
	Logger  *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	engine  Enrollments
	catalog *catalog.Catalog
	timers  TimerSource
	inbox   Inbox
	toasts  *Toasts
	logger  *slog.Logger

	help   help.Model
	filter courseFilter

	Tab      Tab
	cursor   [tabCount]int
	ShowHelp bool

	StatusMsg   string
	StatusIsErr bool

	Width  int
	Height int
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	toasts := opts.Toasts
	if toasts == nil {
		toasts = NewToasts(0)
	}
	return Model{
		engine:  opts.Engine,
		catalog: opts.Catalog,
		timers:  opts.Timers,
		inbox:   opts.Inbox,
		toasts:  toasts,
		logger:  logger,
		help:    help.New(),
		filter:  newCourseFilter(opts.Catalog),
		Tab:     opts.Tab,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTimerCmd(m.timers),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TimerFiredMsg:
		m.timers.Dispatch(msg.Token)
		m.clampCursor()
		return m, WaitForTimerCmd(m.timers)

	case TimersClosedMsg:
		m.logger.Debug("timer source closed")
		return m, nil

	case TickMsg:
		m.toasts.Expire()
		return m, TickCmd(tickInterval)

	case tea.BlurMsg:
		if m.inbox != nil {
			m.inbox.SetAway(true)
			m.toasts.SetAway(true)
		}
		return m, nil

	case tea.FocusMsg:
		m.replayInbox()
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// replayInbox shows lesson completions recorded while unfocused.
func (m *Model) replayInbox() {
	if m.inbox == nil {
		return
	}
	m.toasts.SetAway(false)
	m.inbox.SetAway(false)
	notices := m.inbox.Drain()
	if len(notices) == 0 {
		return
	}
	m.logger.Debug("replaying notices", "count", len(notices))
	m.toasts.Notify(domain.Notification{
		Title:   "While you were away",
		Message: fmt.Sprintf("%d lesson update(s) arrived", len(notices)),
		Level:   domain.LevelSuccess,
	})
	for _, n := range notices {
		m.toasts.Notify(domain.Notification{
			Title:   n.Title,
			Message: n.Description,
			Level:   domain.LevelSuccess,
		})
	}
}

// SelectedCourse returns the course under the cursor of the current tab.
func (m Model) SelectedCourse() (catalog.Course, bool) {
	i := m.cursor[m.Tab]
	switch m.Tab {
	case TabCatalog:
		if i < len(m.filter.results) {
			return m.filter.results[i].Course, true
		}
	case TabCourses:
		enrolled := m.engine.Snapshot().Enrolled
		if i < len(enrolled) {
			return m.lookup(enrolled[i].ID, enrolled[i].Title), true
		}
	case TabWishlist:
		wishlist := m.engine.Snapshot().Wishlist
		if i < len(wishlist) {
			w := wishlist[i]
			c := m.lookup(w.ID, w.Title)
			if c.Lessons == 0 {
				c.Lessons = w.Lessons
				c.Price = w.Price
				c.Category = w.Category
				c.Level = w.Level
			}
			return c, true
		}
	}
	return catalog.Course{}, false
}

// lookup returns the catalog course for id, or a bare course when the
// catalog no longer lists it.
func (m Model) lookup(id domain.CourseID, title string) catalog.Course {
	if c, err := m.catalog.Get(id); err == nil {
		return c
	}
	return catalog.Course{ID: id, Title: title}
}

func (m Model) rowCount() int {
	switch m.Tab {
	case TabCourses:
		return len(m.engine.Snapshot().Enrolled)
	case TabWishlist:
		return len(m.engine.Snapshot().Wishlist)
	default:
		return len(m.filter.results)
	}
}

// clampCursor keeps every cursor inside its list after rows disappear.
func (m *Model) clampCursor() {
	current := m.Tab
	for t := Tab(0); t < tabCount; t++ {
		m.Tab = t
		n := m.rowCount()
		if m.cursor[t] >= n {
			m.cursor[t] = max(0, n-1)
		}
	}
	m.Tab = current
}
