package ui

import (
	"context"
	"net/url"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/routes"
	"github.com/five82/mealplan/internal/state"
)

// ScreenFactory builds the screen for a resolved location. It is the view
// binding of every route table entry.
type ScreenFactory func(env screenEnv, loc location) screen

// location is the resolved navigation target handed to a screen.
type location struct {
	Name    string // route name, empty when nothing matched
	Pattern string
	Params  routes.Params
	Query   url.Values
	Path    string // normalized path
	Target  string // path, query and fragment
}

func (l location) Found() bool { return l.Name != "" }

// queryInt reads a positive integer query value, falling back to def.
func (l location) queryInt(name string, def int) int {
	n, err := strconv.Atoi(l.Query.Get(name))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// screenEnv carries the collaborators shared by every screen.
type screenEnv struct {
	ctx    context.Context // cancelled when the screen is replaced
	appCtx context.Context // lives until the program exits
	client mealapi.API
	store  *state.Store
	table  *routes.Table[ScreenFactory]
	log    logrus.FieldLogger
	keys   keyMap
	seq    uint64
}

// pathFor builds a path for a route by name. Unknown routes fall back to "/".
func (e screenEnv) pathFor(name string, params ...routes.Param) string {
	if e.table == nil {
		return "/"
	}
	p, err := e.table.Path(name, params...)
	if err != nil {
		e.log.WithError(err).WithField("route", name).Warn("build path failed")
		return "/"
	}
	return p
}

// viewContext is what a screen needs to render one frame.
type viewContext struct {
	theme    Theme
	styles   Styles
	snapshot state.Snapshot
	width    int
	height   int
}

// screen is one navigable location.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View(v viewContext) string
	Title() string
	// Capturing reports whether a text field has focus, in which case global
	// single-letter keys go to the screen.
	Capturing() bool
	// Hints lists the screen's own key hints for the command bar.
	Hints() []hint
}

type hint struct{ key, desc string }

// sequenced messages belong to one navigation and are dropped once another
// navigation has happened.
type sequenced interface {
	navSeq() uint64
}

// resultMsg carries the outcome of an async backend call.
type resultMsg[T any] struct {
	seq   uint64
	op    string
	value T
	err   error
}

func (r resultMsg[T]) navSeq() uint64 { return r.seq }

// load runs fn off the event loop and reports the result tagged with the
// screen's navigation sequence.
func load[T any](env screenEnv, op string, fn func(ctx context.Context) (T, error)) tea.Cmd {
	seq := env.seq
	parent := env.ctx
	if parent == nil {
		parent = context.Background()
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, FetchTimeout)
		defer cancel()
		v, err := fn(ctx)
		return resultMsg[T]{seq: seq, op: op, value: v, err: err}
	}
}

// refreshStore fetches meals and plans and stores them, for screens whose
// data lives in the shared snapshot.
func refreshStore(env screenEnv) tea.Cmd {
	return load(env, opRefresh, func(ctx context.Context) (state.Snapshot, error) {
		meals, err := env.client.SavedMeals(ctx)
		if err != nil {
			env.store.Update(nil, nil, err)
			return state.Snapshot{}, err
		}
		plans, err := env.client.WeeklyPlans(ctx)
		if err != nil {
			env.store.Update(nil, nil, err)
			return state.Snapshot{}, err
		}
		env.store.Update(meals, plans, nil)
		return env.store.Snapshot(), nil
	})
}

const opRefresh = "refresh"

// writeMsg carries the outcome of a backend write. Writes outlive the screen
// that started them: the root model always shows the report, and hands the
// message to the screen only while that screen is still current.
type writeMsg[T any] struct {
	seq    uint64
	op     string
	value  T
	err    error
	report flashMsg
}

func (w writeMsg[T]) writeSeq() uint64  { return w.seq }
func (w writeMsg[T]) outcome() flashMsg { return w.report }

// written is implemented by every writeMsg.
type written interface {
	writeSeq() uint64
	outcome() flashMsg
}

// writeOp describes one backend write.
type writeOp[T any] struct {
	op  string
	run func(ctx context.Context) (T, error)
	// apply records a successful result in the store.
	apply func(store *state.Store, v T)
	// success and failure build the status line text.
	success func(v T) string
	failure string
}

// write runs w on the application context, so navigating away neither
// cancels the request nor loses its result.
func write[T any](env screenEnv, w writeOp[T]) tea.Cmd {
	seq, store := env.seq, env.store
	parent := env.appCtx
	if parent == nil {
		parent = context.Background()
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, FetchTimeout)
		defer cancel()
		v, err := w.run(ctx)
		msg := writeMsg[T]{seq: seq, op: w.op, value: v, err: err}
		if err != nil {
			msg.report = flashMsg{text: w.failure + ": " + errorText(err), level: flashError}
			return msg
		}
		if w.apply != nil && store != nil {
			w.apply(store, v)
		}
		if w.success != nil {
			msg.report = flashMsg{text: w.success(v), level: flashSuccess}
		}
		return msg
	}
}

// flashMsg shows a transient message in the status line.
type flashMsg struct {
	text  string
	level flashLevel
}

type flashLevel int

const (
	flashInfo flashLevel = iota
	flashSuccess
	flashError
)

func flash(level flashLevel, text string) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text, level: level} }
}

