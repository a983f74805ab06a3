package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/syllabus/internal/catalog"
	"github.com/mmcdole/syllabus/internal/tui/styles"
)

// courseFilter narrows the catalog tab as the user types.
type courseFilter struct {
	input    textinput.Model
	catalog  *catalog.Catalog
	category string // "" = all
	level    string // "" = all
	results  []catalog.FilterResult
}

func newCourseFilter(cat *catalog.Catalog) courseFilter {
	ti := textinput.New()
	ti.Placeholder = "filter courses..."
	ti.CharLimit = 50
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	f := courseFilter{input: ti, catalog: cat}
	f.apply()
	return f
}

// Editing reports whether keystrokes go to the filter input.
func (f courseFilter) Editing() bool {
	return f.input.Focused()
}

// Query returns the current filter text.
func (f courseFilter) Query() string {
	return f.input.Value()
}

func (f *courseFilter) focus() tea.Cmd {
	return f.input.Focus()
}

func (f *courseFilter) blur() {
	f.input.Blur()
}

func (f *courseFilter) clear() {
	f.input.SetValue("")
	f.input.Blur()
	f.apply()
}

// apply matches titles first; when no title matches, it falls back to the
// catalog search, which also looks at categories.
func (f *courseFilter) apply() {
	query := f.input.Value()
	f.results = catalog.Filter(query, f.narrow(f.catalog.All()))
	if len(f.results) > 0 {
		return
	}
	for _, c := range f.narrow(f.catalog.Search(query)) {
		f.results = append(f.results, catalog.FilterResult{Course: c})
	}
}

func (f courseFilter) narrow(courses []catalog.Course) []catalog.Course {
	return catalog.ByLevel(catalog.ByCategory(courses, f.category), f.level)
}

// cycleCategory steps through the catalog's categories, then back to all.
func (f *courseFilter) cycleCategory() {
	f.category = nextOption(f.catalog.Categories(), f.category)
	f.apply()
}

// cycleLevel steps through the catalog's levels, then back to all.
func (f *courseFilter) cycleLevel() {
	f.level = nextOption(f.catalog.Levels(), f.level)
	f.apply()
}

// Narrowed reports whether a category or level is selected.
func (f courseFilter) Narrowed() bool {
	return f.category != "" || f.level != ""
}

func nextOption(options []string, current string) string {
	if current == "" {
		if len(options) == 0 {
			return ""
		}
		return options[0]
	}
	for i, o := range options {
		if o == current && i+1 < len(options) {
			return options[i+1]
		}
	}
	return ""
}

// update feeds a key to the input and refilters when the text changed.
func (f *courseFilter) update(msg tea.Msg) tea.Cmd {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.apply()
	}
	return cmd
}

func (f courseFilter) view() string {
	return f.input.View()
}

func (f courseFilter) selectionView() string {
	category, level := f.category, f.level
	if category == "" {
		category = "All"
	}
	if level == "" {
		level = "All"
	}
	return styles.FilterPromptStyle.Render("Category: ") + category +
		styles.DimStyle.Render("  ·  ") +
		styles.FilterPromptStyle.Render("Level: ") + level
}
