// Package tui provides the workspace terminal UI that hosts the file finder.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/xfind/internal/core/action"
	"github.com/colonyops/xfind/internal/core/config"
	"github.com/colonyops/xfind/internal/core/logging"
	"github.com/colonyops/xfind/internal/core/project"
	"github.com/colonyops/xfind/internal/core/styles"
	"github.com/colonyops/xfind/internal/tui/finder"
)

const rescanTimeout = 30 * time.Second

// Deps holds the services the workspace needs.
type Deps struct {
	Config  *config.Config
	Project *project.Project
}

// Opts configures a single run of the workspace.
type Opts struct {
	// OpenFinder opens the file finder as soon as the program starts.
	OpenFinder bool
}

// rescanDoneMsg reports the end of a background project rescan.
type rescanDoneMsg struct {
	err error
}

// ProjectChangedMsg tells the workspace the project's paths changed outside
// the program, e.g. from a filesystem watcher.
type ProjectChangedMsg struct{}

// inputHost owns the query input widget and resolves finder element handles
// to it. It is shared by pointer so copies of Model see the same widget.
type inputHost struct {
	input    textinput.Model
	attached bool
	pending  []tea.Cmd
}

// Focus implements finder.Focuser.
func (h *inputHost) Focus(id finder.ElementID) error {
	if !h.attached || id != finder.InputID {
		return finder.ErrNoElement
	}
	h.pending = append(h.pending, h.input.Focus())
	return nil
}

func (h *inputHost) takeCmds() tea.Cmd {
	cmds := h.pending
	h.pending = nil
	return tea.Batch(cmds...)
}

// Model is the workspace: an empty surface with a toggleable file finder
// modal.
type Model struct {
	cfg     *config.Config
	project *project.Project
	store   *FinderStore
	keys    keyMap
	host    *inputHost
	finder  *finder.View
	log     zerolog.Logger

	initCmd  tea.Cmd
	status   string
	width    int
	height   int
	quitting bool
}

// New creates the workspace model.
func New(deps Deps, opts Opts) Model {
	limit := 0
	if deps.Config != nil {
		limit = deps.Config.Finder.MaxResults
	}

	var source Source
	if deps.Project != nil {
		source = deps.Project
	}

	m := Model{
		cfg:     deps.Config,
		project: deps.Project,
		store:   NewFinderStore(source, limit, logging.Component("finder-store")),
		keys:    defaultKeyMap(),
		host:    &inputHost{},
		log:     logging.Component("tui"),
		width:   80,
		height:  24,
	}

	if opts.OpenFinder {
		m.initCmd = m.openFinder()
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case rescanDoneMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("rescan failed")
			m.status = "rescan failed: " + msg.err.Error()
			return m, nil
		}
		m.refresh()
		return m, nil

	case ProjectChangedMsg:
		m.refresh()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Pastes, cursor blinks and the like belong to the input.
	if m.finder != nil {
		return m.updateInput(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.closeFinder()
		return m, tea.Quit
	}

	if a, ok := m.keys.actionFor(msg); ok {
		return m, m.dispatch(a)
	}

	if m.finder == nil {
		if key.Matches(msg, m.keys.Rescan) && m.project != nil {
			m.status = "scanning..."
			return m, m.rescanCmd()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Close) {
		m.closeFinder()
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput hands msg to the query input and reports any change of its
// text to the finder.
func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	before := m.host.input.Value()
	var cmd tea.Cmd
	m.host.input, cmd = m.host.input.Update(msg)

	if after := m.host.input.Value(); after != before {
		m.finder.QueryChanged(after)
		m.syncFinder()
	}

	return m, cmd
}

// dispatch applies a workspace action. Actions the workspace does not handle
// itself go to the finder store.
func (m *Model) dispatch(a action.Action) tea.Cmd {
	switch a.(type) {
	case action.ToggleFileFinder:
		if m.finder != nil {
			m.closeFinder()
			return nil
		}
		return m.openFinder()
	default:
		m.store.Dispatch(a)
		if m.finder != nil {
			m.syncFinder()
		}
		return nil
	}
}

// refresh recomputes the finder's items from the project.
func (m *Model) refresh() {
	m.store.Refresh()
	if m.project != nil {
		m.status = fmt.Sprintf("%d files", len(m.project.Paths()))
	}
	if m.finder != nil {
		m.syncFinder()
	}
}

// openFinder creates and mounts a fresh finder view. Nothing from a previous
// finder survives: the query starts empty.
func (m *Model) openFinder() tea.Cmd {
	m.store.Reset()

	m.host.input = m.newQueryInput()
	m.host.attached = true

	st := m.store.State()
	m.finder = finder.New(st.Query, st.Items, m.store.Dispatch)
	m.finder.Mount(m.host)

	m.log.Debug().Int("items", len(st.Items)).Msg("file finder opened")
	return m.host.takeCmds()
}

func (m *Model) closeFinder() {
	if m.finder == nil {
		return
	}
	m.finder.Unmount()
	m.finder = nil
	m.host.attached = false
	m.host.input.Blur()
	m.log.Debug().Msg("file finder closed")
}

// syncFinder pushes the store's snapshot into the view and, for a controlled
// input, makes the widget text match the store's query.
func (m *Model) syncFinder() {
	st := m.store.State()
	m.finder.SetState(st.Query, st.Items)

	if m.controlled() && m.host.input.Value() != st.Query {
		m.host.input.SetValue(st.Query)
	}
}

func (m Model) controlled() bool {
	return m.cfg == nil || !m.cfg.Finder.Uncontrolled
}

func (m Model) newQueryInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.SetWidth(max(m.width-12, 20))
	if m.cfg != nil {
		ti.Placeholder = m.cfg.Finder.Placeholder
	}

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)

	return ti
}

func (m Model) rescanCmd() tea.Cmd {
	p := m.project
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rescanTimeout)
		defer cancel()
		return rescanDoneMsg{err: p.Rescan(ctx)}
	}
}

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.quitting {
		return ""
	}

	var content string
	if m.finder != nil {
		content = finder.RenderString(m.finder.Render(), m.host.input.View(), min(m.width-4, 100), m.height-2)
	} else {
		content = m.renderHint()
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHint() string {
	parts := make([]string, 0, 3)
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}

	lines := []string{styles.HintStyle.Render(strings.Join(parts, " • "))}
	if m.status != "" {
		lines = append(lines, styles.HintStyle.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// FinderOpen reports whether the file finder modal is showing.
func (m Model) FinderOpen() bool {
	return m.finder != nil
}

// InputValue returns the text currently in the query input.
func (m Model) InputValue() string {
	return m.host.input.Value()
}

// InputFocused reports whether the query input has focus.
func (m Model) InputFocused() bool {
	return m.host.input.Focused()
}

// Store returns the finder store.
func (m Model) Store() *FinderStore {
	return m.store
}
