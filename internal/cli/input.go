// Package cli handles cmd line input and result display for DBG and testing various features
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"launchsift/pkg/search"
)

// InputHandler processes user queries from stdin and prints the ranked
// results. It drives the same session a server would, so navigation prefixes
// and filter markers work exactly as over IPC.
type InputHandler struct {
	session      *search.Session
	limit        int
	maxQueryLen  int
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(session *search.Session, limit, maxQueryLen int) *InputHandler {
	return &InputHandler{
		session:     session,
		limit:       limit,
		maxQueryLen: maxQueryLen,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("launchsift CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a query and press Enter to see the ranking (Ctrl+C to exit):")

	for {
		log.Print("> ")
		query, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		query = strings.TrimRight(query, "\r\n")
		if strings.TrimSpace(query) == "" {
			continue
		}
		h.handleInput(query)
	}
}

// handleInput runs a single ranking pass and prints the scored results with
// the matched characters highlighted.
func (h *InputHandler) handleInput(query string) {
	h.requestCount++

	if h.maxQueryLen > 0 && len(query) > h.maxQueryLen {
		log.Errorf("Query too long: %s", query)
		return
	}

	start := time.Now()
	results := h.session.Search(context.Background(), query)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if len(results) == 0 {
		log.Warnf("No results found for query: '%s'", query)
		return
	}
	if h.limit > 0 && len(results) > h.limit {
		results = results[:h.limit]
	}

	log.Printf("Found %d results for query '%s':", len(results), query)
	for i, r := range results {
		marker := "  "
		if i == h.session.Selected() {
			marker = "* "
		}
		log.Printf("%s%2d. %-45s (score: %.3f)", marker, i+1, highlight(r), r.Score)
	}
}

// highlight colors the title characters covered by the match spans. Spans
// index the normalized key, so titles with stripped punctuation can be off by
// a character or two; fine for a debug view.
func highlight(r search.Result) string {
	title := r.Item.Primary
	spans := make(map[int]bool, len(r.Match.PositionsB))
	for _, p := range r.Match.PositionsB {
		spans[p] = true
	}

	var b strings.Builder
	for i, ch := range []rune(title) {
		if spans[i] {
			fmt.Fprintf(&b, "\033[38;5;75m%c\033[0m", ch)
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
