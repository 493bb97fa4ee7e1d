package search

import (
	"strings"
	"sync"

	"launchsift/internal/utils"
)

type navFrame struct {
	sources []Source
	sub     *SubSource // nil only for the root frame
}

// NavStack tracks the active source frames of a session. The bottom frame is
// the root source set and is never popped; frames above it each hold one
// prefix-scoped SubSource entered through a SubItemsAction or by typing a
// registered keyword prefix.
type NavStack struct {
	mu         sync.Mutex
	frames     []navFrame
	registered []*SubSource
}

// NewNavStack returns a stack holding only the root frame. Root sources are
// supplied per Resolve call so registry changes apply immediately.
func NewNavStack() *NavStack {
	return &NavStack{frames: []navFrame{{}}}
}

// Register installs a keyword sub-source: typing its prefix at root enters it
// without an explicit action, like "r:" for recently played.
func (n *NavStack) Register(sub *SubSource) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.registered = append(n.registered, sub)
}

// Push enters a sub-source; its source becomes the sole active source while
// the query keeps the sub-source's prefix.
func (n *NavStack) Push(sub *SubSource) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.frames = append(n.frames, navFrame{sources: []Source{sub}, sub: sub})
}

// Depth returns the number of frames including the root.
func (n *NavStack) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.frames)
}

// Reset pops everything above the root frame.
func (n *NavStack) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.frames = n.frames[:1]
}

// Resolve pops frames whose prefix the query no longer matches
// (case-insensitively), then returns the active sources, the effective query
// with any active prefix stripped, and the active SubSource (nil at root).
func (n *NavStack) Resolve(root []Source, query string) ([]Source, string, *SubSource) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for len(n.frames) > 1 && !utils.HasPrefixFold(query, n.frames[len(n.frames)-1].sub.Prefix) {
		n.frames = n.frames[:len(n.frames)-1]
	}

	if len(n.frames) == 1 {
		for _, sub := range n.registered {
			if utils.HasPrefixFold(query, sub.Prefix) {
				n.frames = append(n.frames, navFrame{sources: []Source{sub}, sub: sub})
				break
			}
		}
	}

	top := n.frames[len(n.frames)-1]
	if top.sub == nil {
		return root, query, nil
	}

	sources := make([]Source, len(top.sources))
	copy(sources, top.sources)
	eff := strings.TrimSpace(utils.TrimPrefixFold(query, top.sub.Prefix))
	return sources, eff, top.sub
}
