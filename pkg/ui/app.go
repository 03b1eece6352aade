// Package ui is the tview shell around the explorer engine: three
// editable columns, a preview pane and a confirmation modal.
package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/stefanwatt/mini.files/pkg/explorer"
	"github.com/stefanwatt/mini.files/pkg/explorer/gitpfx"
	"github.com/stefanwatt/mini.files/pkg/files"
	"github.com/stefanwatt/mini.files/pkg/pathindex"
)

type Options struct {
	ShowHidden      bool
	PermanentDelete bool
	ShowPreview     bool
	FuzzyPattern    string
}

type App struct {
	*tview.Application

	store    files.Store
	explorer *explorer.Explorer

	pages   *tview.Pages
	columns *tview.Flex
	status  *tview.TextView
	preview *previewPanel

	panels map[string]*bufferPanel
}

func NewApp(store files.Store, index *pathindex.Index, o Options) *App {
	a := &App{
		Application: tview.NewApplication(),
		store:       store,
		pages:       tview.NewPages(),
		columns:     tview.NewFlex(),
		status:      tview.NewTextView().SetDynamicColors(true),
		preview:     newPreviewPanel(),
		panels:      make(map[string]*bufferPanel),
	}

	opts := []explorer.Option{
		explorer.WithBufferFactory(a.newBuffer),
		explorer.WithPrefixer(gitpfx.New(explorer.KindPrefixer())),
		explorer.WithNotifier(a.notify),
		explorer.WithPreview(o.ShowPreview),
		explorer.WithPermanentDelete(o.PermanentDelete),
		explorer.WithSettleDelay(50 * time.Millisecond),
		explorer.WithFocusCheckInterval(time.Second),
		explorer.WithDispatch(func(f func()) { a.QueueUpdateDraw(f) }),
		explorer.OnRefresh(a.rebuildColumns),
		explorer.OnOpenFile(a.preview.ShowFile),
	}
	opts = append(opts, filterOptions(o)...)
	a.explorer = explorer.New(store, index, opts...)

	root := tview.NewFlex().SetDirection(tview.FlexRow)
	root.AddItem(a.columns, 0, 1, true)
	root.AddItem(a.status, 1, 0, false)
	a.pages.AddPage("main", root, true, true)
	a.SetRoot(a.pages, true)
	a.SetInputCapture(a.handleKey)
	return a
}

func filterOptions(o Options) []explorer.Option {
	var opts []explorer.Option
	if o.FuzzyPattern != "" {
		opts = append(opts, explorer.WithFilter(fuzzyAndHidden(o)))
	} else {
		opts = append(opts, explorer.WithFilter(nameFilter(o)))
	}
	return opts
}

// Run opens the explorer at target and runs the event loop.
func (a *App) Run(ctx context.Context, target string) error {
	if err := a.explorer.Open(ctx, target); err != nil {
		return err
	}
	return a.Application.Run()
}

func (a *App) newBuffer(dirPath string) explorer.Buffer {
	panel := newBufferPanel(dirPath)
	panel.SetMovedFunc(func() {
		a.onCursorMoved(panel)
	})
	a.panels[dirPath] = panel
	return panel
}

func (a *App) onCursorMoved(panel *bufferPanel) {
	for depth, path := range a.explorer.Branch() {
		if path == panel.path {
			row, col, _, _ := panel.GetCursor()
			a.explorer.NotifyCursor(depth, row, col)
			return
		}
	}
}

// rebuildColumns remounts the panels of the currently visible branch.
func (a *App) rebuildColumns() {
	a.columns.Clear()
	branch := a.explorer.Branch()
	if len(branch) == 0 {
		a.Stop()
		return
	}
	focus := a.explorer.FocusDepth()
	for depth := 0; depth < explorer.MaxColumns; depth++ {
		var path string
		if depth < len(branch) {
			path = branch[depth]
		}
		item := a.columnPrimitive(path)
		a.columns.AddItem(item, 0, 1, depth == focus)
		if depth == focus {
			a.SetFocus(item)
		}
	}
	a.status.SetText(fmt.Sprintf(" %s  [gray]Enter: open  Ctrl-O: up  Ctrl-S: sync  Ctrl-Q: quit[-]", branch[focus]))
}

func (a *App) columnPrimitive(path string) tview.Primitive {
	if path == "" {
		a.preview.Clear()
		return a.preview
	}
	if panel, ok := a.panels[path]; ok {
		if _, visible := a.explorer.View(path); visible {
			return panel
		}
	}
	// Rightmost slot holding a file: show its content instead.
	a.preview.ShowFile(path)
	return a.preview
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	ctx := context.Background()
	switch event.Key() {
	case tcell.KeyEnter:
		if err := a.explorer.NavigateIn(ctx); err != nil {
			a.notify("%v", err)
		}
		return nil
	case tcell.KeyCtrlO:
		if err := a.explorer.NavigateOut(ctx); err != nil {
			a.notify("%v", err)
		}
		return nil
	case tcell.KeyCtrlS:
		a.synchronize(ctx)
		return nil
	case tcell.KeyCtrlQ:
		a.quit(ctx)
		return nil
	}
	return event
}

// synchronize previews the pending actions in a modal and applies them
// on confirmation.
func (a *App) synchronize(ctx context.Context) {
	actions, err := a.explorer.Plan(ctx)
	if err != nil {
		a.notify("%v", err)
		return
	}
	if len(actions) == 0 {
		if err := a.explorer.Refresh(ctx); err != nil {
			a.notify("%v", err)
		}
		return
	}
	message := "Apply file system actions?\n"
	for _, action := range actions {
		message += "\n" + action.String()
	}
	a.confirm(message, func() {
		if err := a.explorer.Synchronize(ctx); err != nil {
			a.notify("%v", err)
		}
	})
}

func (a *App) quit(ctx context.Context) {
	apply := func() {
		_ = a.explorer.Close(ctx)
		a.Stop()
	}
	modified := false
	for _, path := range a.explorer.Branch() {
		if view, ok := a.explorer.View(path); ok && view.Buffer.IsModified() {
			modified = true
			break
		}
	}
	if modified {
		a.confirm("Discard unsynchronized edits?", apply)
		return
	}
	apply()
}

func (a *App) confirm(message string, onConfirm func()) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Apply", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			a.pages.RemovePage("confirm")
			if label == "Apply" {
				onConfirm()
			}
		})
	a.pages.AddPage("confirm", modal, true, true)
}

func (a *App) notify(format string, args ...any) {
	if a.status == nil {
		_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	a.status.SetText(fmt.Sprintf("[red]"+format+"[-]", args...))
}
