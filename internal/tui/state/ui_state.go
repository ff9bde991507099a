package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// UIState holds view-only state: size, cursor, search input and toggles.
type UIState struct {
	viewport viewport.Model
	search   textinput.Model
	width    int
	height   int
	cursor   int

	searchMode    bool
	searchQuery   string
	hideDismissed bool
	toastsPaused  bool
	hoveredToast  string
	confirmClear  bool
	showHelp      bool
}

// NewUIState creates a UIState with default dimensions.
func NewUIState() *UIState {
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "search title, message, source"
	in.CharLimit = 256
	return &UIState{
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		search:   in,
		width:    defaultViewportWidth,
		height:   defaultViewportHeight,
	}
}

// SetSize updates the terminal dimensions.
func (u *UIState) SetSize(width, height int) {
	if width <= 0 {
		width = defaultViewportWidth
	}
	if height <= 0 {
		height = defaultViewportHeight
	}
	u.width = width
	u.height = height
	u.viewport.Width = width
	u.search.Width = width - 2
}

// Cursor returns the selected row.
func (u *UIState) Cursor() int {
	return u.cursor
}

// MoveCursor moves the cursor by delta within [0, count).
func (u *UIState) MoveCursor(delta, count int) {
	u.cursor += delta
	u.ClampCursor(count)
}

// ClampCursor keeps the cursor inside a list of count rows.
func (u *UIState) ClampCursor(count int) {
	if u.cursor >= count {
		u.cursor = count - 1
	}
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// EnsureCursorVisible scrolls the viewport so the cursor row is shown.
func (u *UIState) EnsureCursorVisible() {
	h := u.viewport.Height
	if h <= 0 {
		return
	}
	switch {
	case u.cursor < u.viewport.YOffset:
		u.viewport.SetYOffset(u.cursor)
	case u.cursor >= u.viewport.YOffset+h:
		u.viewport.SetYOffset(u.cursor - h + 1)
	}
}

// SearchQuery returns the applied search query.
func (u *UIState) SearchQuery() string {
	return u.searchQuery
}

// SearchMode reports whether the search input has focus.
func (u *UIState) SearchMode() bool {
	return u.searchMode
}
