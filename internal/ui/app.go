package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ionutT77/PourPal/internal/api"
	"github.com/ionutT77/PourPal/internal/config"
	"github.com/ionutT77/PourPal/internal/friends"
	"github.com/ionutT77/PourPal/internal/session"
)

// App is the terminal client. One screen is visible at a time; screens that
// hold live resources (chat synchronizers, the inbox poller) register a
// release hook so navigating away always tears them down.
type App struct {
	cfg     config.Config
	api     *api.Client
	session *session.Store
	tracker *friends.Tracker

	app       *tview.Application
	pages     *tview.Pages
	statusBar *tview.TextView

	ctx context.Context

	mu      sync.Mutex
	release func()
}

// New creates the application shell around an authenticated-or-not session.
func New(cfg config.Config, client *api.Client, store *session.Store) *App {
	return &App{
		cfg:     cfg,
		api:     client,
		session: store,
		tracker: friends.NewTracker(client),
		ctx:     context.Background(),
	}
}

// Run builds the root layout and blocks until the user quits.
func (a *App) Run() error {
	a.app = tview.NewApplication()
	a.pages = tview.NewPages()

	a.statusBar = tview.NewTextView()
	a.statusBar.SetDynamicColors(true)
	a.statusBar.SetBackgroundColor(ColorBg)
	a.statusBar.SetTextColor(ColorFg)

	layout := tview.NewFlex().SetDirection(tview.FlexRow)
	layout.AddItem(a.pages, 0, 1, true)
	layout.AddItem(a.statusBar, 1, 0, false)

	// The session store was initialized before the first render, so this
	// decision is made exactly once and never flickers.
	if a.session.IsAuthenticated() {
		a.showHangouts()
	} else {
		a.showWelcome()
	}

	return a.app.SetRoot(layout, true).EnableMouse(false).Run()
}

// quit releases whatever screen resources are live and stops the event loop.
func (a *App) quit() {
	a.releaseResources()
	a.app.Stop()
}

// show switches to a screen, tearing down the previous screen's resources.
func (a *App) show(name string, p tview.Primitive) {
	a.releaseResources()
	a.pages.AddAndSwitchToPage(name, p, true)
}

// holdResources registers the release hook for the current screen.
func (a *App) holdResources(cleanup func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.release = cleanup
}

func (a *App) releaseResources() {
	a.mu.Lock()
	cleanup := a.release
	a.release = nil
	a.mu.Unlock()
	if cleanup != nil {
		cleanup()
	}
}

func (a *App) setStatus(format string, args ...any) {
	a.statusBar.SetTextColor(ColorFg)
	a.statusBar.SetText(fmt.Sprintf(format, args...))
}

func (a *App) flashError(err error) {
	a.statusBar.SetTextColor(ColorError)
	a.statusBar.SetText(errorText(err))
}

// selfID is the authenticated user's id, zero when logged out.
func (a *App) selfID() int {
	if current, ok := a.session.Current(); ok {
		return current.User.ID
	}
	return 0
}

// errorText flattens an API error for the one-line status bar. Field
// validation errors are joined into "field: first message" pairs.
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if len(apiErr.Fields) > 0 {
			names := make([]string, 0, len(apiErr.Fields))
			for name := range apiErr.Fields {
				names = append(names, name)
			}
			sort.Strings(names)
			parts := make([]string, 0, len(names))
			for _, name := range names {
				parts = append(parts, fmt.Sprintf("%s: %s", name, apiErr.Fields[name][0]))
			}
			return strings.Join(parts, "; ")
		}
		if api.IsTransient(err) {
			return "Backend unreachable: " + apiErr.Message
		}
		return apiErr.Message
	}
	return err.Error()
}

// styledForm applies the shared look to a form screen.
func styledForm(title string) *tview.Form {
	form := tview.NewForm()
	form.SetBackgroundColor(ColorBg)
	form.SetFieldBackgroundColor(ColorField)
	form.SetFieldTextColor(ColorFg)
	form.SetLabelColor(ColorAccent)
	form.SetButtonBackgroundColor(ColorButton)
	form.SetButtonTextColor(ColorTitle)
	form.SetBorder(true)
	form.SetBorderColor(ColorBorder)
	form.SetTitle(title)
	form.SetTitleColor(ColorTitle)
	return form
}

// styledList applies the shared look to a list screen.
func styledList(title string) *tview.List {
	list := tview.NewList()
	list.SetBackgroundColor(ColorBg)
	list.SetMainTextColor(ColorFg)
	list.SetSecondaryTextColor(ColorMuted)
	list.SetSelectedBackgroundColor(ColorAccent)
	list.SetSelectedTextColor(tcell.ColorBlack)
	list.SetBorder(true)
	list.SetBorderColor(ColorBorder)
	list.SetTitle(title)
	list.SetTitleColor(ColorTitle)
	return list
}

// centered wraps a primitive in padding so it floats mid-screen.
func centered(p tview.Primitive, width, height int) tview.Primitive {
	row := tview.NewFlex()
	row.AddItem(nil, 0, 1, false)
	row.AddItem(p, width, 0, true)
	row.AddItem(nil, 0, 1, false)

	col := tview.NewFlex().SetDirection(tview.FlexRow)
	col.AddItem(nil, 0, 1, false)
	col.AddItem(row, height, 0, true)
	col.AddItem(nil, 0, 1, false)
	return col
}
