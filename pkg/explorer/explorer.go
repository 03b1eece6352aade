// Package explorer implements the state and synchronization engine of
// an editable, column-based directory browser: the branch of displayed
// directories, per-directory view state, and the pipeline that turns
// free-text edits of a listing into ordered file-system actions.
package explorer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/stefanwatt/mini.files/pkg/files"
	"github.com/stefanwatt/mini.files/pkg/listing"
	"github.com/stefanwatt/mini.files/pkg/pathindex"
)

type State int

const (
	StateClosed State = iota
	StateOpen
)

// Confirmer asks the user before destructive synchronization and
// before closing with unsaved edits.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

var logf = log.Printf

type options struct {
	filter          listing.Filter
	sorter          listing.Sorter
	prefixer        Prefixer
	confirm         Confirmer
	notify          func(format string, args ...any)
	buffers         BufferFactory
	showPreview     bool
	permanentDelete bool
	settleDelay     time.Duration
	focusInterval   time.Duration
	dispatch        func(f func())
	onRefresh       func()
	onOpenFile      func(path string)
}

type Option func(o *options)

// WithFilter sets the listing filter strategy.
func WithFilter(f listing.Filter) Option {
	return func(o *options) { o.filter = f }
}

// WithSorter sets the listing sort strategy.
func WithSorter(s listing.Sorter) Option {
	return func(o *options) { o.sorter = s }
}

// WithPrefixer sets the presentation prefix provider.
func WithPrefixer(p Prefixer) Option {
	return func(o *options) { o.prefixer = p }
}

// WithConfirmer sets the confirmation service.
func WithConfirmer(c Confirmer) Option {
	return func(o *options) { o.confirm = c }
}

// WithNotifier sets where per-action failures are reported.
func WithNotifier(notify func(format string, args ...any)) Option {
	return func(o *options) { o.notify = notify }
}

// WithBufferFactory sets how directory buffers are obtained.
func WithBufferFactory(f BufferFactory) Option {
	return func(o *options) { o.buffers = f }
}

// WithPreview toggles the rightmost preview column.
func WithPreview(show bool) Option {
	return func(o *options) { o.showPreview = show }
}

// WithPermanentDelete makes deletes bypass the trash staging area.
func WithPermanentDelete(permanent bool) Option {
	return func(o *options) { o.permanentDelete = permanent }
}

// WithSettleDelay sets how long cursor/edit notifications are
// coalesced before the settle step runs. Zero settles synchronously.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) { o.settleDelay = d }
}

// WithFocusCheckInterval sets the period of the lost-focus check that
// auto-closes the explorer. Zero disables it.
func WithFocusCheckInterval(d time.Duration) Option {
	return func(o *options) { o.focusInterval = d }
}

// WithDispatch routes timer-driven callbacks onto the host's single
// control thread. Without it, callbacks run on the timer goroutine
// serialized by an internal mutex; hosts driving the explorer from
// their own loop must supply a dispatch that hands callbacks to it.
func WithDispatch(dispatch func(f func())) Option {
	return func(o *options) { o.dispatch = dispatch }
}

// OnRefresh registers a callback fired after every view refresh.
func OnRefresh(f func()) Option {
	return func(o *options) { o.onRefresh = f }
}

// OnOpenFile registers a callback for navigating into a file entry.
func OnOpenFile(f func(path string)) Option {
	return func(o *options) { o.onOpenFile = f }
}

// Explorer owns the branch and its directory views and orchestrates
// refresh, navigation and synchronization. All transitions run to
// completion on a single control thread.
type Explorer struct {
	store   files.Store
	index   *pathindex.Index
	builder *listing.Builder
	o       options

	state     State
	branch    *Branch
	views     map[string]*DirectoryView
	history   *History
	corrupted bool
	focused   bool

	pendingCursor *cursorMove
	settleTimer   *time.Timer
	focusStop     chan struct{}

	// Serializes default-dispatched callbacks; unused when the host
	// supplies its own dispatch.
	dispatchMu sync.Mutex
}

type cursorMove struct {
	depth int
	line  int
	col   int
}

func New(store files.Store, index *pathindex.Index, opts ...Option) *Explorer {
	e := &Explorer{
		store:   store,
		index:   index,
		builder: listing.NewBuilder(store, index),
		views:   make(map[string]*DirectoryView),
		history: NewHistory(),
		o: options{
			prefixer:    KindPrefixer(),
			confirm:     ConfirmFunc(func(string) bool { return true }),
			notify:      func(format string, args ...any) { logf(format, args...) },
			buffers:     func(string) Buffer { return NewMemoryBuffer() },
			showPreview: true,
		},
	}
	for _, opt := range opts {
		opt(&e.o)
	}
	if e.o.dispatch == nil {
		e.o.dispatch = func(f func()) {
			e.dispatchMu.Lock()
			defer e.dispatchMu.Unlock()
			f()
		}
	}
	return e
}

func (e *Explorer) State() State {
	return e.state
}

// Branch returns the current column paths, left to right. The
// rightmost slot may be empty when no preview is shown.
func (e *Explorer) Branch() []string {
	if e.branch == nil {
		return nil
	}
	return e.branch.Paths()
}

func (e *Explorer) FocusDepth() int {
	if e.branch == nil {
		return 0
	}
	return e.branch.Focus()
}

// View returns the directory view displayed for path, if any.
func (e *Explorer) View(path string) (*DirectoryView, bool) {
	v, ok := e.views[path]
	return v, ok
}

// Open transitions Closed -> Open around target. A directory opens as
// [parent, target, placeholder]; a file opens as [grandparent, parent,
// file]. Focus always sits on the middle slot. A previously archived
// branch for the same anchor is restored, cursors included.
func (e *Explorer) Open(ctx context.Context, target string) error {
	if e.state == StateOpen {
		return fmt.Errorf("explorer already open at %s", e.branch.Anchor())
	}
	target = strings.TrimSuffix(target, "/")
	if target == "" {
		target = "/"
	}
	info, err := e.store.Stat(ctx, target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		e.branch = NewBranch(parentOf(target), target, placeholder)
	} else {
		parent := parentOf(target)
		e.branch = NewBranch(parentOf(parent), parent, target)
	}

	cursors := map[string]string{}
	if snap, ok := e.history.Restore(e.branch.Anchor()); ok {
		e.branch = NewBranch(snap.Paths...)
		cursors = snap.Cursors
	}

	e.state = StateOpen
	e.corrupted = false
	e.focused = true
	for path, name := range cursors {
		view := e.ensureView(path)
		view.Cursor = CursorOn(name)
	}
	e.startFocusCheck()
	return e.refresh(ctx)
}

// NavigateIn descends into the directory entry under the focused
// cursor, re-centering the branch on it. File entries are handed to
// the OnOpenFile callback.
func (e *Explorer) NavigateIn(ctx context.Context) error {
	if e.state != StateOpen {
		return ErrClosed
	}
	view, ok := e.focusedView()
	if !ok {
		return nil
	}
	entry, ok := view.CursorEntry()
	if !ok {
		return nil
	}
	if !entry.IsDir() {
		if e.o.onOpenFile != nil {
			e.o.onOpenFile(entry.Path)
		}
		return nil
	}
	anchor := e.branch.Anchor()
	e.branch = NewBranch(anchor, entry.Path, placeholder)
	return e.refresh(ctx)
}

// NavigateOut prepends the left column's parent and re-centers focus
// on the new middle slot. A no-op at the file system root.
func (e *Explorer) NavigateOut(ctx context.Context) error {
	if e.state != StateOpen {
		return ErrClosed
	}
	left := e.branch.At(0)
	parent := parentOf(left)
	if parent == left {
		return nil
	}
	e.branch.Prepend(parent)
	return e.refresh(ctx)
}

// NotifyCursor records a cursor move in the column at depth. Moves are
// coalesced: a burst of rapid notifications triggers the settle logic
// once, strictly after all of them have been recorded.
func (e *Explorer) NotifyCursor(depth, line, col int) {
	if e.state != StateOpen {
		return
	}
	e.pendingCursor = &cursorMove{depth: depth, line: line, col: col}
	if e.o.settleDelay <= 0 {
		e.settle()
		return
	}
	if e.settleTimer != nil {
		e.settleTimer.Reset(e.o.settleDelay)
		return
	}
	e.settleTimer = time.AfterFunc(e.o.settleDelay, func() {
		e.o.dispatch(e.settle)
	})
}

func (e *Explorer) settle() {
	move := e.pendingCursor
	e.pendingCursor = nil
	if move == nil || e.state != StateOpen {
		return
	}
	if err := e.SyncCursor(context.Background(), move.depth, move.line, move.col); err != nil {
		e.o.notify("cursor sync failed: %v", err)
	}
}

// SyncCursor records the cursor position of the column at depth and,
// when the denoted child differs from what the column to its right
// shows, truncates the branch after depth and appends the child as the
// new preview column (if the preview policy is on).
func (e *Explorer) SyncCursor(ctx context.Context, depth, line, col int) error {
	if e.state != StateOpen {
		return ErrClosed
	}
	path := e.branch.At(depth)
	view, ok := e.views[path]
	if !ok {
		return nil
	}
	view.Cursor = CursorAt(line, col)
	entry, ok := view.EntryAt(line)
	right := e.branch.At(depth + 1)
	switch {
	case !ok:
		if right == placeholder {
			return nil
		}
		e.branch.TruncateAfter(depth)
	case entry.Path == right:
		return nil
	default:
		e.branch.TruncateAfter(depth)
		if e.o.showPreview {
			e.branch.Append(entry.Path)
		}
	}
	return e.refresh(ctx)
}

// Plan runs the diff engine over every visible directory view and
// classifies the result, without applying anything.
func (e *Explorer) Plan(ctx context.Context) ([]Action, error) {
	if e.state != StateOpen {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var diffs []Diff
	for _, path := range e.branch.Paths() {
		if view, ok := e.views[path]; ok {
			diffs = append(diffs, view.Diffs(e.index)...)
		}
	}
	return Classify(diffs), nil
}

// Synchronize reconciles buffer edits into file-system actions:
// diff, classify, confirm, apply, refresh. Failed actions are reported
// individually and do not abort the batch; prior actions stay applied
// and the forced refresh makes partial results visible.
func (e *Explorer) Synchronize(ctx context.Context) error {
	actions, err := e.Plan(ctx)
	if err != nil {
		return err
	}
	if len(actions) > 0 {
		if !e.o.confirm.Confirm(describeActions(actions)) {
			return e.refresh(ctx)
		}
		for _, a := range actions {
			if err := e.apply(ctx, a); err != nil {
				e.o.notify("%s: %v", a, err)
			}
		}
	}
	return e.refresh(ctx)
}

func (e *Explorer) apply(ctx context.Context, a Action) error {
	switch a.Kind {
	case ActionCreate:
		if strings.HasSuffix(a.To, "/") {
			return e.store.CreateDir(ctx, a.To)
		}
		return e.store.CreateFile(ctx, a.To)
	case ActionCopy:
		return e.store.Copy(ctx, a.From, a.To)
	case ActionMove, ActionRename:
		if err := e.store.Move(ctx, a.From, a.To); err != nil {
			return err
		}
		// The id follows the moved object so later diffs in this pass
		// and later sessions resolve to the new path.
		e.index.Reassign(a.From, a.To)
		return nil
	case ActionDelete:
		return e.store.Delete(ctx, a.From, e.o.permanentDelete)
	}
	return fmt.Errorf("unknown action kind %d", a.Kind)
}

// Close archives the branch under its anchor and releases all views.
// With unsynchronized edits it first asks for confirmation; declining
// aborts the close.
func (e *Explorer) Close(ctx context.Context) error {
	if e.state != StateOpen {
		return nil
	}
	if e.hasModifiedBuffers() {
		if !e.o.confirm.Confirm("Discard unsynchronized edits?") {
			return nil
		}
	}
	e.archive()
	e.teardown()
	_ = ctx
	return nil
}

func (e *Explorer) archive() {
	cursors := make(map[string]string)
	for path, view := range e.views {
		view.captureCursorName()
		if view.Cursor.Kind == CursorNamed {
			cursors[path] = view.Cursor.Name
		}
	}
	e.history.Save(e.branch.Anchor(), Snapshot{
		Paths:   e.branch.Paths(),
		Cursors: cursors,
	})
}

func (e *Explorer) teardown() {
	e.views = make(map[string]*DirectoryView)
	e.branch = nil
	e.state = StateClosed
	e.stopFocusCheck()
	if e.settleTimer != nil {
		e.settleTimer.Stop()
		e.settleTimer = nil
	}
	e.pendingCursor = nil
}

func (e *Explorer) hasModifiedBuffers() bool {
	for _, view := range e.views {
		if view.Buffer != nil && view.Buffer.IsModified() {
			return true
		}
	}
	return false
}

// Refresh normalizes the branch and re-reads every visible directory.
func (e *Explorer) Refresh(ctx context.Context) error {
	if e.state != StateOpen {
		return ErrClosed
	}
	return e.refresh(ctx)
}

func (e *Explorer) refresh(ctx context.Context) error {
	if e.corrupted {
		return e.forceClose()
	}
	e.branch.Normalize(func(p string) bool {
		_, err := e.store.Stat(ctx, p)
		return err == nil
	})
	if e.branch.Depth() == 0 {
		e.corrupted = true
		return e.forceClose()
	}
	for _, path := range e.branch.Paths() {
		if path == placeholder {
			continue
		}
		info, err := e.store.Stat(ctx, path)
		if err != nil || !info.IsDir() {
			continue // file previews are the display layer's business
		}
		view := e.ensureView(path)
		entries, err := e.builder.List(ctx, path, e.o.filter, e.o.sorter)
		if err != nil {
			// One failed column must not corrupt its siblings; the
			// vanished path is dropped on the next normalization.
			e.o.notify("listing %s: %v", path, err)
			continue
		}
		view.SetEntries(entries, e.o.prefixer)
	}
	if e.o.onRefresh != nil {
		e.o.onRefresh()
	}
	return nil
}

func (e *Explorer) forceClose() error {
	e.o.notify("explorer closed: %v", ErrCorruptedState)
	e.archiveIfPossible()
	e.teardown()
	return ErrCorruptedState
}

func (e *Explorer) archiveIfPossible() {
	if e.branch != nil && e.branch.Depth() > 0 {
		e.archive()
	}
}

func (e *Explorer) ensureView(path string) *DirectoryView {
	view, ok := e.views[path]
	if !ok {
		view = newDirectoryView(path, e.o.buffers(path))
		e.views[path] = view
	}
	return view
}

func (e *Explorer) focusedView() (*DirectoryView, bool) {
	view, ok := e.views[e.branch.Anchor()]
	return view, ok
}

// SetFocused tells the explorer whether any of its columns still has
// the host's focus. The periodic check auto-closes once focus is gone.
func (e *Explorer) SetFocused(focused bool) {
	e.focused = focused
}

func (e *Explorer) startFocusCheck() {
	if e.o.focusInterval <= 0 {
		return
	}
	stop := make(chan struct{})
	e.focusStop = stop
	ticker := time.NewTicker(e.o.focusInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.o.dispatch(func() {
					if e.state == StateOpen && !e.focused {
						_ = e.Close(context.Background())
					}
				})
			}
		}
	}()
}

func (e *Explorer) stopFocusCheck() {
	if e.focusStop != nil {
		close(e.focusStop)
		e.focusStop = nil
	}
}

func describeActions(actions []Action) string {
	var sb strings.Builder
	sb.WriteString("Apply file system actions?")
	for _, a := range actions {
		sb.WriteString("\n  ")
		sb.WriteString(a.String())
	}
	return sb.String()
}
