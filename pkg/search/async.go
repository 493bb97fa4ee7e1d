package search

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// enrich is the async stage of a pass: wait out the debounce, fan out to
// every async source with the ranked prefix, then fold arrivals into the
// sorted result list one by one. A single consumer drains the arrival queue,
// so insertion positions are always computed against the current snapshot.
func (s *Session) enrich(p *pass, sources []Source, query string, ranked []Candidate, showAll bool, params Params) {
	var asyncs []AsyncSource
	for _, src := range sources {
		if as, ok := unwrap(src).(AsyncSource); ok {
			asyncs = append(asyncs, as)
		}
	}
	if len(asyncs) == 0 {
		return
	}

	if wait := params.AsyncDelay - time.Since(p.started); wait > 0 {
		t := time.NewTimer(wait)
		select {
		case <-p.ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}

	arrivals := make(chan []*Item, len(asyncs))
	var g errgroup.Group
	for _, src := range asyncs {
		src := src
		g.Go(func() error {
			// A failing or panicking source contributes zero items; it must
			// not abort the other sources or the pass.
			defer func() {
				if r := recover(); r != nil {
					s.log.Warnf("async source panicked: %v", r)
				}
			}()
			items, err := src.ItemsAsync(p.ctx, query, ranked)
			if err != nil {
				if p.ctx.Err() == nil {
					s.log.Debugf("async source failed: %v", err)
				}
				return nil
			}
			if len(items) == 0 {
				return nil
			}
			select {
			case arrivals <- items:
			case <-p.ctx.Done():
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(arrivals)
	}()

	cmp := Comparator{InstallStatusFirst: params.InstallStatusFirst}
	for {
		select {
		case batch, ok := <-arrivals:
			if !ok {
				return
			}
			for _, it := range batch {
				if p.ctx.Err() != nil {
					return
				}
				s.insertRanked(it, query, showAll, cmp, params)
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// insertRanked scores one late arrival and splices it into the sorted result
// list at the first position whose entry ranks below it. Displayed entries
// are never reordered; on a full tie the newcomer goes after. Arrivals that
// would land beyond the result bound are dropped.
func (s *Session) insertRanked(it *Item, query string, showAll bool, cmp Comparator, params Params) {
	var sc float64
	if !showAll {
		if PreliminaryScore(it, query) < params.Threshold {
			return
		}
		sc = Score(it, query)
		if sc <= 0 {
			return
		}
	}

	entries := s.results.Results()
	for i := range entries {
		if entries[i].Item == it {
			return // already listed
		}
	}
	cand := Candidate{Item: it, Score: sc}
	idx := len(entries)
	for i := range entries {
		existing := Candidate{Item: entries[i].Item, Score: entries[i].Score, ordinal: -1}
		if cmp.Less(&cand, &existing) {
			idx = i
			break
		}
	}
	if params.MaxResults > 0 && idx >= params.MaxResults {
		return
	}
	s.results.InsertAt(idx, s.makeResult(&cand, query, showAll))
	if params.MaxResults > 0 {
		s.results.Truncate(params.MaxResults)
	}
}
