package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/mealplan/internal/logging"
	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/prefs"
	"github.com/five82/mealplan/internal/routes"
	"github.com/five82/mealplan/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    mealapi.API
	Store     *state.Store
	Resolver  *routes.Resolver[ScreenFactory]
	Log       logrus.FieldLogger
	PollTick  time.Duration
	ThemeName string
	// PrefsPath is where theme and last path are persisted; empty disables
	// persistence.
	PrefsPath string
	StartPath string
}

// Model is the root application state for Bubble Tea. All navigation happens
// inside Update, so there is exactly one current location at any time.
type Model struct {
	// Configuration
	ctx       context.Context
	client    mealapi.API
	store     *state.Store
	resolver  *routes.Resolver[ScreenFactory]
	log       logrus.FieldLogger
	prefsPath string
	pollTick  time.Duration
	startPath string

	// UI state
	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	// Navigation state
	hist   history
	seq    uint64
	loc    location
	screen screen
	cancel context.CancelFunc

	// Address bar
	address    textinput.Model
	addressing bool

	showHelp bool
	flash    flashMsg
	flashAt  time.Time

	// Data state
	snapshot state.Snapshot
	now      time.Time
}

// New creates the root model. The first location is shown once the program
// starts.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	start := strings.TrimSpace(opts.StartPath)
	if start == "" {
		start = "/"
	}

	address := textinput.New()
	address.Prompt = "go to: "
	address.Placeholder = "/saved-meals"
	address.CharLimit = 256

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     store,
		resolver:  opts.Resolver,
		log:       log,
		prefsPath: opts.PrefsPath,
		pollTick:  pollTick,
		startPath: start,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		address:   address,
		now:       time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.store),
		navigateTo(m.startPath),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s, ok := msg.(sequenced); ok && s.navSeq() != m.seq {
		m.log.WithFields(logrus.Fields{
			"msg_seq": s.navSeq(),
			"seq":     m.seq,
		}).Debug("dropping result for a superseded screen")
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case written:
		if report := msg.outcome(); report.text != "" {
			m.showFlash(report)
		}
		if msg.writeSeq() != m.seq {
			return m, nil
		}
		return m.forward(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.address.Width = max(m.width-len(m.address.Prompt)-2, 10)
		return m.forward(m.contentSize())

	case navigateMsg:
		mode := navPush
		if msg.Replace {
			mode = navReplace
		}
		return m.navigate(msg.Target, mode)

	case backMsg:
		target, ok := m.hist.goBack()
		if !ok {
			return m, nil
		}
		return m.navigate(target, navHistory)

	case forwardMsg:
		target, ok := m.hist.goForward()
		if !ok {
			return m, nil
		}
		return m.navigate(target, navHistory)

	case tickMsg:
		m.now = time.Time(msg)
		if !m.flashAt.IsZero() && m.now.Sub(m.flashAt) > flashDuration {
			m.flash = flashMsg{}
			m.flashAt = time.Time{}
		}
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m.forward(msg)

	case flashMsg:
		m.showFlash(msg)
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("save preferences failed")
		}
		return m, nil
	}

	return m.forward(msg)
}

func (m *Model) showFlash(f flashMsg) {
	m.flash = f
	m.flashAt = m.now
	if m.flashAt.IsZero() {
		m.flashAt = time.Now()
	}
}

// forward hands msg to the current screen.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.screen == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

// navigate resolves target and makes its screen current. The previous
// screen's context is cancelled and its pending results are dropped by
// sequence number.
func (m Model) navigate(target string, mode navMode) (tea.Model, tea.Cmd) {
	res := m.resolver.Resolve(target)
	loc := locationFrom(res)

	m.seq++
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel

	env := m.env(ctx)
	fields := logrus.Fields{
		"path": loc.Target,
		"seq":  m.seq,
	}
	var s screen
	if res.Found() && res.Entry.View != nil {
		fields["route"] = loc.Name
		m.log.WithFields(fields).Debug("navigate")
		s = res.Entry.View(env, loc)
	} else {
		m.log.WithFields(fields).Info("no route for path")
		s = newNotFoundScreen(env, loc)
	}

	switch mode {
	case navPush:
		m.hist.push(loc.Target)
	case navReplace:
		m.hist.replace(loc.Target)
	}
	m.loc = loc
	m.screen = s
	m.addressing = false
	m.address.Blur()

	cmds := []tea.Cmd{s.Init()}
	if m.ready {
		var cmd tea.Cmd
		m.screen, cmd = m.screen.Update(m.contentSize())
		cmds = append(cmds, cmd)
	}
	if loc.Found() {
		cmds = append(cmds, m.savePrefs())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) table() *routes.Table[ScreenFactory] {
	if m.resolver == nil {
		return nil
	}
	return m.resolver.Table()
}

func (m Model) env(ctx context.Context) screenEnv {
	return screenEnv{
		ctx:    ctx,
		appCtx: m.ctx,
		client: m.client,
		store:  m.store,
		table:  m.table(),
		log:    m.log,
		keys:   m.keys,
		seq:    m.seq,
	}
}

func locationFrom(res routes.Resolution[ScreenFactory]) location {
	loc := location{
		Name:   res.Name(),
		Params: res.Params,
		Query:  res.Query(),
		Path:   res.Path,
		Target: res.Target(),
	}
	if loc.Query == nil {
		loc.Query = url.Values{}
	}
	if res.Entry != nil {
		loc.Pattern = res.Entry.Pattern
	}
	return loc
}

// contentSizeMsg tells a screen how much room it has below the chrome.
type contentSizeMsg struct {
	width  int
	height int
}

func (m Model) contentSize() contentSizeMsg {
	return contentSizeMsg{width: m.width, height: max(m.height-chromeHeight, 3)}
}

// handleKey routes keyboard input: overlays first, then text capture, then
// global bindings, then the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.addressing {
		return m.handleAddressKey(msg)
	}

	if m.screen != nil && m.screen.Capturing() {
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, m.savePrefs()

	case key.Matches(msg, m.keys.Address):
		m.addressing = true
		m.address.SetValue(m.loc.Target)
		m.address.CursorEnd()
		return m, m.address.Focus()

	case key.Matches(msg, m.keys.Back):
		return m, goBack

	case key.Matches(msg, m.keys.Forward):
		return m, goForward

	case key.Matches(msg, m.keys.Jump):
		return m, m.jump(msg.String())
	}

	return m.forward(msg)
}

func (m Model) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.addressing = false
		m.address.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		target := strings.TrimSpace(m.address.Value())
		m.addressing = false
		m.address.Blur()
		if target == "" {
			return m, nil
		}
		return m, navigateTo(target)
	}
	var cmd tea.Cmd
	m.address, cmd = m.address.Update(msg)
	return m, cmd
}

// jump navigates to the nth parameterless location.
func (m Model) jump(digit string) tea.Cmd {
	n := int(digit[0] - '1')
	table := m.table()
	targets := jumpTargets(table)
	if n < 0 || n >= len(targets) {
		return nil
	}
	e := targets[n]
	path, err := table.Path(e.Name)
	if err != nil {
		m.log.WithError(err).WithField("route", e.Name).Warn("build jump path failed")
		return nil
	}
	return navigateTo(path)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderNavBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

func (m Model) renderContent() string {
	size := m.contentSize()
	if m.screen == nil {
		return m.theme.Styles().MutedText.Render("Loading...")
	}
	return m.screen.View(viewContext{
		theme:    m.theme,
		styles:   m.theme.Styles(),
		snapshot: m.snapshot,
		width:    size.width,
		height:   size.height,
	})
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type prefsSavedMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// savePrefs persists the theme and, when it matched a route, the current
// location.
func (m Model) savePrefs() tea.Cmd {
	if m.prefsPath == "" {
		return nil
	}
	p := prefs.Prefs{Theme: m.theme.Name}
	if m.loc.Found() {
		p.LastPath = m.loc.Target
	}
	path := m.prefsPath
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// CurrentTarget returns the target of the current location.
func (m Model) CurrentTarget() string {
	return m.loc.Target
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Resolver == nil {
		return fmt.Errorf("ui requires a route resolver")
	}
	if opts.Client == nil {
		return fmt.Errorf("ui requires a backend client")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
