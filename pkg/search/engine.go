package search

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"launchsift/internal/logger"
	"launchsift/pkg/textmatch"
)

// Params are the user-tunable ranking knobs of a session.
type Params struct {
	// Threshold is the preliminary-score admission threshold in [0,1].
	Threshold float64
	// MaxResults bounds the result list; 0 means unbounded.
	MaxResults int
	// AsyncDelay is the debounce before async sources are consulted.
	AsyncDelay time.Duration
	// InstallStatusFirst orders tied library entries by installation status
	// before name.
	InstallStatusFirst bool
	// SliceBudget is the extraction time slice before yielding so observers
	// can render already-decided front-runners.
	SliceBudget time.Duration
}

// DefaultParams returns the stock parameters.
func DefaultParams() Params {
	return Params{
		Threshold:          0.55,
		MaxResults:         20,
		AsyncDelay:         100 * time.Millisecond,
		InstallStatusFirst: true,
		SliceBudget:        10 * time.Millisecond,
	}
}

// pass is one query generation. Its context is cancelled the moment a newer
// generation is submitted; done closes when the pass fully retires.
type pass struct {
	ctx     context.Context
	cancel  context.CancelFunc
	query   string
	started time.Time
	done    chan struct{}
}

// Session owns one live search: the source registry, the navigation stack and
// the observed result list. Query generations are processed strictly in order
// by a single background worker; scoring within a generation is parallel.
type Session struct {
	registry *Registry
	nav      *NavStack
	results  *List
	log      *log.Logger

	paramsMu sync.RWMutex
	params   Params

	mu      sync.Mutex
	cancel  context.CancelFunc
	closed  bool
	queue   chan *pass
	retired chan struct{}
}

// NewSession starts the session worker. onPatch observes result-list
// mutations and may be nil. Close releases the worker.
func NewSession(registry *Registry, params Params, onPatch func(Patch)) *Session {
	s := &Session{
		registry: registry,
		nav:      NewNavStack(),
		results:  NewList(onPatch),
		log:      logger.New("sift"),
		params:   params,
		queue:    make(chan *pass, 128),
		retired:  make(chan struct{}),
	}
	go s.run()
	return s
}

// Registry returns the session's source registry.
func (s *Session) Registry() *Registry { return s.registry }

// Nav returns the session's navigation stack.
func (s *Session) Nav() *NavStack { return s.nav }

// Results returns a snapshot of the current result list.
func (s *Session) Results() []Result { return s.results.Results() }

// Selected returns the selected result index, -1 when none.
func (s *Session) Selected() int { return s.results.Selected() }

// Params returns the current parameters.
func (s *Session) Params() Params {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	return s.params
}

// SetParams replaces the parameters; the next generation picks them up.
func (s *Session) SetParams(p Params) {
	s.paramsMu.Lock()
	defer s.paramsMu.Unlock()
	s.params = p
}

// SetQuery submits a new query generation, cancelling any in-flight pass.
// It returns immediately; results arrive through the patch observer.
func (s *Session) SetQuery(query string) {
	s.submit(query)
}

// Search submits a query and blocks until its pass fully retires (including
// the async stage) or ctx expires, then returns the result snapshot.
func (s *Session) Search(ctx context.Context, query string) []Result {
	p := s.submit(query)
	if p != nil {
		select {
		case <-p.done:
		case <-ctx.Done():
		}
	}
	return s.results.Results()
}

// Execute runs an action against an item. A SubItemsAction pushes its
// sub-source onto the navigation stack and re-queries with the prefix.
// The return value tells the host whether to close the search surface.
func (s *Session) Execute(a Action, it *Item) bool {
	if a == nil || !a.CanExecute(it) {
		return false
	}
	a.Execute(it)
	if sub, ok := a.(*SubItemsAction); ok && sub.Source != nil {
		s.nav.Push(sub.Source)
		s.SetQuery(sub.Source.Prefix)
	}
	return a.CloseAfterExecute()
}

// Close cancels any in-flight pass and stops the worker.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	close(s.queue)
	s.mu.Unlock()
	<-s.retired
}

func (s *Session) submit(query string) *pass {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	p := &pass{
		ctx:     ctx,
		cancel:  cancel,
		query:   query,
		started: time.Now(),
		done:    make(chan struct{}),
	}
	s.queue <- p
	return p
}

// run is the single worker: generations retire strictly in submission order,
// so no two passes ever mutate the result list concurrently.
func (s *Session) run() {
	defer close(s.retired)
	for p := range s.queue {
		if p.ctx.Err() != nil {
			close(p.done)
			continue
		}
		s.runPass(p)
	}
}

func (s *Session) runPass(p *pass) {
	defer close(p.done)
	defer p.cancel()
	params := s.Params()

	sources, query, sub := s.nav.Resolve(s.registry.Sources(), p.query)
	showAll := sub != nil && sub.DisplayAllIfQueryEmpty && strings.TrimSpace(query) == ""

	if strings.TrimSpace(query) == "" && !showAll {
		if p.ctx.Err() == nil {
			s.results.Truncate(0)
		}
		return
	}

	pool := s.gather(sources, query)
	cands := s.filterAndScore(p.ctx, pool, query, showAll, params)
	if p.ctx.Err() != nil {
		return
	}

	ranked := s.extract(p, cands, query, showAll, params)
	if p.ctx.Err() != nil {
		return
	}
	s.results.Truncate(len(ranked))
	if len(ranked) > 0 {
		s.results.Select(0)
	}

	s.enrich(p, sources, query, ranked, showAll, params)
}

// gather collects the pass-local item pool from the stable and
// query-dependent capabilities of every active source. A panicking source
// contributes nothing; it must not take the pass down with it.
func (s *Session) gather(sources []Source, query string) []*Item {
	var pool []*Item
	for _, src := range sources {
		pool = append(pool, s.safeItems(src, query)...)
	}
	return pool
}

func (s *Session) safeItems(src Source, query string) (items []*Item) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warnf("source panicked while listing items: %v", r)
			items = nil
		}
	}()
	items = append(items, src.Items()...)
	if qs, ok := unwrap(src).(QuerySource); ok {
		if extra := qs.QueryItems(query); extra != nil {
			items = append(items, extra...)
		}
	}
	return items
}

// filterAndScore admits pool items by preliminary score and computes their
// full scores, in parallel across cores. In show-all mode every item is
// admitted at score 0.
func (s *Session) filterAndScore(ctx context.Context, pool []*Item, query string, showAll bool, params Params) []Candidate {
	cands := make([]Candidate, len(pool))
	admitted := make([]bool, len(pool))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range pool {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			it := pool[i]
			if showAll {
				cands[i] = Candidate{Item: it, ordinal: i}
				admitted[i] = true
				return nil
			}
			if PreliminaryScore(it, query) < params.Threshold {
				return nil
			}
			sc := Score(it, query)
			if sc <= 0 {
				return nil
			}
			cands[i] = Candidate{Item: it, Score: sc, ordinal: i}
			admitted[i] = true
			return nil
		})
	}
	// The only possible error is the pass's own cancellation.
	_ = g.Wait()

	out := make([]Candidate, 0, len(pool))
	for i := range cands {
		if admitted[i] {
			out = append(out, cands[i])
		}
	}
	return out
}

// extract repeatedly emits the maximum unmarked candidate into the result
// list, yielding after each time slice so an observer can render partial
// progress, and checking cancellation at every step.
func (s *Session) extract(p *pass, cands []Candidate, query string, showAll bool, params Params) []Candidate {
	cmp := Comparator{InstallStatusFirst: params.InstallStatusFirst}
	maxResults := params.MaxResults
	if maxResults <= 0 || maxResults > len(cands) {
		maxResults = len(cands)
	}

	emitted := make([]Candidate, 0, maxResults)
	sliceStart := time.Now()
	for k := 0; k < maxResults; k++ {
		if p.ctx.Err() != nil {
			return emitted
		}
		best := -1
		for i := range cands {
			if cands[i].marked {
				continue
			}
			if best < 0 || cmp.Less(&cands[i], &cands[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		cands[best].marked = true
		s.results.Set(k, s.makeResult(&cands[best], query, showAll))
		emitted = append(emitted, cands[best])

		if time.Since(sliceStart) >= params.SliceBudget {
			runtime.Gosched()
			sliceStart = time.Now()
		}
	}
	return emitted
}

// makeResult attaches the highlight spans of the item's winning key.
func (s *Session) makeResult(c *Candidate, query string, showAll bool) Result {
	r := Result{Item: c.Item, Score: c.Score}
	if showAll || strings.TrimSpace(query) == "" {
		return r
	}
	bestKey := ""
	bestVal := -1.0
	for _, k := range c.Item.SearchKeys() {
		if k.Weight <= 0 || k.Text == "" {
			continue
		}
		if v := textmatch.CombinedScore(query, k.Text) * k.Weight; v > bestVal {
			bestVal = v
			bestKey = k.Text
		}
	}
	if bestKey != "" {
		r.Match = textmatch.LongestCommonSubstring(query, bestKey)
	}
	return r
}
