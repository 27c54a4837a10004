package adminclient

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"neurobiomark/internal/domain"
)

// State is the load state of the visible list.
type State int

const (
	Idle State = iota
	Loading
	Populated
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// CacheKey identifies one list query. Search is the debounced term, not the raw input.
type CacheKey struct {
	Page   int
	Search string
	Status string
}

// API is the part of the admin API the list uses. *Client implements it.
type API interface {
	List(ctx context.Context, q domain.DemoRequestQuery) (*domain.DemoRequestPage, error)
	UpdateStatus(ctx context.Context, id string, status domain.DemoRequestStatus) (*domain.DemoRequest, error)
	SaveNotes(ctx context.Context, id, notes string) (*domain.DemoRequest, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) error
}

var _ API = (*Client)(nil)

var (
	// ErrNothingSelected is returned by BulkDelete with an empty selection.
	ErrNothingSelected = errors.New("no requests selected")
	// ErrClosed is returned by mutations after Close.
	ErrClosed = errors.New("request list closed")
)

// View is a snapshot of the visible list state.
type View struct {
	Key CacheKey
	// Input is the search text as typed, which may be ahead of Key.Search.
	Input string
	State State
	Items []domain.DemoRequest
	Pages int
	// Err is the last fetch failure; set only in the Failed state.
	Err      error
	Selected []string
}

// ListConfig configures a RequestList.
type ListConfig struct {
	QuietInterval time.Duration
	FetchTimeout  time.Duration
	// OnChange receives every visible state change in order. It must not call
	// mutating methods of the list.
	OnChange func(View)
}

type cachedPage struct {
	items []domain.DemoRequest
	pages int
}

// RequestList is the client-side demo request list: it debounces search input,
// memoizes pages by CacheKey and applies only the response for the current key.
type RequestList struct {
	api      API
	debounce *Debouncer
	onChange func(View)
	timeout  time.Duration

	notifyMu sync.Mutex
	notified uint64

	mu       sync.Mutex
	key      CacheKey
	input    string
	state    State
	items    []domain.DemoRequest
	pages    int
	err      error
	cache    map[CacheKey]*cachedPage
	selected map[string]struct{}
	// gen changes on every key change; a fetch applies its result only while gen matches.
	gen     uint64
	version uint64
	cancel  context.CancelFunc
	closed  bool
	fetches sync.WaitGroup
}

// NewRequestList returns an Idle list on page 1 with no filters. Call Load to fetch.
func NewRequestList(api API, cfg ListConfig) *RequestList {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	return &RequestList{
		api:      api,
		debounce: NewDebouncer(cfg.QuietInterval),
		onChange: cfg.OnChange,
		timeout:  cfg.FetchTimeout,
		key:      CacheKey{Page: 1},
		cache:    make(map[CacheKey]*cachedPage),
		selected: make(map[string]struct{}),
	}
}

// Load fetches the current key, from the cache when possible.
func (l *RequestList) Load() {
	l.update(func() bool {
		l.fetchLocked()
		return true
	})
}

// Refresh drops the cached page for the current key and fetches it again.
func (l *RequestList) Refresh() {
	l.update(func() bool {
		delete(l.cache, l.key)
		l.fetchLocked()
		return true
	})
}

// SetSearch records typed search text. The term applies after the quiet interval.
func (l *RequestList) SetSearch(text string) {
	l.update(func() bool {
		l.input = text
		l.debounce.Debounce(func() { l.applySearch(text) })
		return true
	})
}

// applySearch runs on each debounce tick: back to page 1, and a new term clears
// the cache and the selection.
func (l *RequestList) applySearch(text string) {
	search := strings.TrimSpace(text)
	l.update(func() bool {
		if search == l.key.Search && l.key.Page == 1 {
			return false
		}
		if search != l.key.Search {
			l.key.Search = search
			l.resetFiltersLocked()
		}
		l.key.Page = 1
		l.fetchLocked()
		return true
	})
}

// SetStatus filters by status. Unknown values mean all statuses.
func (l *RequestList) SetStatus(status string) {
	st, _ := domain.ParseDemoRequestStatus(status)
	l.update(func() bool {
		if string(st) == l.key.Status {
			return false
		}
		l.key.Status = string(st)
		l.key.Page = 1
		l.resetFiltersLocked()
		l.fetchLocked()
		return true
	})
}

// SetPage shows page n (1-based).
func (l *RequestList) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	l.update(func() bool {
		if n == l.key.Page {
			return false
		}
		l.key.Page = n
		l.fetchLocked()
		return true
	})
}

// Toggle adds id to the selection or removes it.
func (l *RequestList) Toggle(id string) {
	l.update(func() bool {
		if _, ok := l.selected[id]; ok {
			delete(l.selected, id)
		} else {
			l.selected[id] = struct{}{}
		}
		return true
	})
}

// UpdateStatus changes one request's status and patches the visible list.
func (l *RequestList) UpdateStatus(ctx context.Context, id string, status domain.DemoRequestStatus) error {
	if l.isClosed() {
		return ErrClosed
	}
	updated, err := l.api.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	l.patch(func(items []domain.DemoRequest) []domain.DemoRequest {
		return replaceItem(items, updated)
	})
	return nil
}

// SaveNotes replaces one request's notes and patches the visible list.
func (l *RequestList) SaveNotes(ctx context.Context, id, notes string) error {
	if l.isClosed() {
		return ErrClosed
	}
	updated, err := l.api.SaveNotes(ctx, id, notes)
	if err != nil {
		return err
	}
	l.patch(func(items []domain.DemoRequest) []domain.DemoRequest {
		return replaceItem(items, updated)
	})
	return nil
}

// Delete removes one request and drops it from the visible list.
func (l *RequestList) Delete(ctx context.Context, id string) error {
	if l.isClosed() {
		return ErrClosed
	}
	if err := l.api.Delete(ctx, id); err != nil {
		return err
	}
	l.patch(func(items []domain.DemoRequest) []domain.DemoRequest {
		delete(l.selected, id)
		return removeItems(items, map[string]struct{}{id: {}})
	})
	return nil
}

// BulkDelete removes every selected request and clears the selection.
func (l *RequestList) BulkDelete(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	ids := sortedKeys(l.selected)
	l.mu.Unlock()
	if len(ids) == 0 {
		return ErrNothingSelected
	}
	if err := l.api.BulkDelete(ctx, ids); err != nil {
		return err
	}
	gone := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}
	l.patch(func(items []domain.DemoRequest) []domain.DemoRequest {
		for id := range gone {
			delete(l.selected, id)
		}
		return removeItems(items, gone)
	})
	return nil
}

// View returns the current snapshot.
func (l *RequestList) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewLocked()
}

// Close cancels pending search input and the in-flight fetch, then waits for
// both to return. The list ignores every call after Close.
func (l *RequestList) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()

	l.debounce.Cancel()
	l.debounce.Wait()
	l.fetches.Wait()
}

// update runs fn under the lock and publishes a snapshot when fn reports a change.
func (l *RequestList) update(fn func() bool) {
	l.mu.Lock()
	if l.closed || !fn() {
		l.mu.Unlock()
		return
	}
	l.version++
	v, version := l.viewLocked(), l.version
	l.mu.Unlock()
	l.notify(v, version)
}

// patch applies a local edit to the visible items and to the cached page of the
// current key. Pages cached under other keys keep their contents.
func (l *RequestList) patch(fn func([]domain.DemoRequest) []domain.DemoRequest) {
	l.update(func() bool {
		l.items = fn(l.items)
		if c, ok := l.cache[l.key]; ok {
			c.items = cloneItems(l.items)
		}
		return true
	})
}

func (l *RequestList) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *RequestList) resetFiltersLocked() {
	l.cache = make(map[CacheKey]*cachedPage)
	l.selected = make(map[string]struct{})
}

// fetchLocked supersedes any in-flight fetch and shows the current key, from the
// cache or by starting a new fetch. Items stay visible while loading.
func (l *RequestList) fetchLocked() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	key := l.key
	if c, ok := l.cache[key]; ok {
		l.items = cloneItems(c.items)
		l.pages = c.pages
		l.state = Populated
		l.err = nil
		return
	}

	l.state = Loading
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	l.cancel = cancel
	l.fetches.Add(1)
	go l.fetch(ctx, cancel, l.gen, key)
}

func (l *RequestList) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, key CacheKey) {
	defer l.fetches.Done()
	defer cancel()

	page, err := l.api.List(ctx, domain.DemoRequestQuery{Page: key.Page, Search: key.Search, Status: key.Status})
	l.update(func() bool {
		if gen != l.gen {
			return false
		}
		l.cancel = nil
		if err != nil {
			l.state = Failed
			l.err = err
			return true
		}
		items := make([]domain.DemoRequest, 0, len(page.Items))
		for _, it := range page.Items {
			if it != nil {
				items = append(items, *it)
			}
		}
		l.cache[key] = &cachedPage{items: items, pages: page.Pages}
		l.items = cloneItems(items)
		l.pages = page.Pages
		l.state = Populated
		l.err = nil
		return true
	})
}

// notify delivers v unless a newer snapshot was already delivered.
func (l *RequestList) notify(v View, version uint64) {
	if l.onChange == nil {
		return
	}
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()
	if version <= l.notified {
		return
	}
	l.notified = version
	l.onChange(v)
}

func (l *RequestList) viewLocked() View {
	return View{
		Key:      l.key,
		Input:    l.input,
		State:    l.state,
		Items:    cloneItems(l.items),
		Pages:    l.pages,
		Err:      l.err,
		Selected: sortedKeys(l.selected),
	}
}

func cloneItems(items []domain.DemoRequest) []domain.DemoRequest {
	if items == nil {
		return nil
	}
	out := make([]domain.DemoRequest, len(items))
	copy(out, items)
	return out
}

func replaceItem(items []domain.DemoRequest, updated *domain.DemoRequest) []domain.DemoRequest {
	for i := range items {
		if items[i].ID == updated.ID {
			items[i] = *updated
		}
	}
	return items
}

func removeItems(items []domain.DemoRequest, ids map[string]struct{}) []domain.DemoRequest {
	kept := items[:0]
	for _, it := range items {
		if _, gone := ids[it.ID]; !gone {
			kept = append(kept, it)
		}
	}
	return kept
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
