package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"launchsift/pkg/config"
	"launchsift/pkg/search"
)

// Version is stamped by the build; InfoResponse reports it.
var Version = "dev"

// LibraryIndex exposes the indexed pool to the info and lookup ops. May be
// nil when the host has no index.
type LibraryIndex interface {
	Len() int
	Lookup(prefix string) []*search.Item
}

// Server handles the IPC for ranking queries
type Server struct {
	session    *search.Session
	cfg        *config.Config
	configPath string
	index      LibraryIndex

	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// NewServer creates a ranking server using stdin/stdout for IPC.
func NewServer(session *search.Session, cfg *config.Config, configPath string, index LibraryIndex) *Server {
	return NewServerWithIO(session, cfg, configPath, index, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over explicit streams, mainly for tests.
func NewServerWithIO(session *search.Session, cfg *config.Config, configPath string, index LibraryIndex, r io.Reader, w io.Writer) *Server {
	return &Server{
		session:    session,
		cfg:        cfg,
		configPath: configPath,
		index:      index,
		decoder:    msgpack.NewDecoder(r),
		encoder:    msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready
	s.sendResponse(map[string]string{"status": "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(request Request) {
	switch request.Action {
	case "":
		s.handleQuery(request)
	case "lookup":
		s.handleLookup(request)
	case "action":
		s.handleAction(request)
	case "config_get":
		s.sendConfig(request.ID, "ok", "")
	case "config_set":
		s.handleConfigSet(request)
	case "info":
		s.handleInfo(request)
	case "health":
		s.sendResponse(map[string]string{"id": request.ID, "status": "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

// handleQuery runs one ranking pass and returns the ordered results. It
// validates the query, waits for the pass to retire and maps the result list
// into wire entries with 1-based ranks.
func (s *Server) handleQuery(request Request) {
	query := request.Query
	if query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		log.Debug("Query is empty in request")
		return
	}
	if maxLen := s.cfg.Server.MaxQueryLen; maxLen > 0 && len(query) > maxLen {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", maxLen), 400)
		log.Debug("Query is too long in request")
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = s.cfg.Server.DefaultLimit
	}

	start := time.Now()
	results := s.session.Search(context.Background(), query)
	elapsed := time.Since(start)

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	entries := make([]ResultEntry, len(results))
	for i, r := range results {
		entries[i] = ResultEntry{
			Title:  r.Item.Primary,
			Detail: r.Item.Secondary,
			Score:  r.Score,
			Rank:   uint16(i + 1),
			Spans:  r.Match.PositionsB,
		}
	}

	s.sendResponse(QueryResponse{
		ID:        request.ID,
		Results:   entries,
		Count:     len(entries),
		TimeTaken: elapsed.Milliseconds(),
	})
}

// handleLookup answers an exact name-prefix lookup from the library index,
// bypassing the fuzzy ranking entirely.
func (s *Server) handleLookup(request Request) {
	if s.index == nil {
		s.sendError(request.ID, "No library index available", 501)
		return
	}
	if request.Query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		return
	}

	start := time.Now()
	items := s.index.Lookup(request.Query)
	elapsed := time.Since(start)

	limit := request.Limit
	if limit < 1 {
		limit = s.cfg.Server.DefaultLimit
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	entries := make([]ResultEntry, len(items))
	for i, it := range items {
		entries[i] = ResultEntry{
			Title:  it.Primary,
			Detail: it.Secondary,
			Rank:   uint16(i + 1),
		}
	}
	s.sendResponse(QueryResponse{
		ID:        request.ID,
		Results:   entries,
		Count:     len(entries),
		TimeTaken: elapsed.Milliseconds(),
	})
}

// handleAction executes an item action against a currently displayed result.
// Rank is 1-based into the result list; ActionIndex selects among the item's
// actions.
func (s *Server) handleAction(request Request) {
	results := s.session.Results()
	idx := request.Rank - 1
	if idx < 0 || idx >= len(results) {
		s.sendError(request.ID, fmt.Sprintf("No result at rank %d", request.Rank), 404)
		return
	}
	it := results[idx].Item
	if request.ActionIndex < 0 || request.ActionIndex >= len(it.Actions) {
		s.sendError(request.ID, fmt.Sprintf("No action %d on %q", request.ActionIndex, it.Primary), 404)
		return
	}

	closed := s.session.Execute(it.Actions[request.ActionIndex], it)
	s.sendResponse(ActionResponse{
		ID:     request.ID,
		Status: "ok",
		Close:  closed,
	})
}

// handleConfigSet applies the provided knobs to the live session and persists
// them when a config file is active.
func (s *Server) handleConfigSet(request Request) {
	params := s.session.Params()
	if request.Threshold != nil {
		if *request.Threshold < 0 || *request.Threshold > 1 {
			s.sendConfig(request.ID, "error", "threshold must be within [0, 1]")
			return
		}
		params.Threshold = *request.Threshold
	}
	if request.MaxResults != nil {
		if *request.MaxResults < 0 {
			s.sendConfig(request.ID, "error", "max_results must not be negative")
			return
		}
		params.MaxResults = *request.MaxResults
	}
	if request.AsyncDelayMs != nil {
		params.AsyncDelay = time.Duration(*request.AsyncDelayMs) * time.Millisecond
	}
	if request.InstallStatusFirst != nil {
		params.InstallStatusFirst = *request.InstallStatusFirst
	}
	s.session.SetParams(params)

	if s.configPath != "" {
		if err := s.cfg.Update(s.configPath, request.Threshold, request.MaxResults, request.AsyncDelayMs, request.InstallStatusFirst); err != nil {
			log.Warnf("Failed to persist config to %s: %v", s.configPath, err)
		}
	} else {
		s.applyToConfig(params)
	}
	s.sendConfig(request.ID, "ok", "")
}

func (s *Server) applyToConfig(params search.Params) {
	s.cfg.Search.Threshold = params.Threshold
	s.cfg.Search.MaxResults = params.MaxResults
	s.cfg.Search.AsyncDelayMs = int(params.AsyncDelay / time.Millisecond)
	s.cfg.Search.InstallStatusFirst = params.InstallStatusFirst
}

func (s *Server) handleInfo(request Request) {
	count := 0
	if s.index != nil {
		count = s.index.Len()
	}
	s.sendResponse(InfoResponse{
		ID:        request.ID,
		Status:    "ok",
		ItemCount: count,
		Version:   Version,
	})
}

func (s *Server) sendConfig(id, status, errMsg string) {
	params := s.session.Params()
	s.sendResponse(ConfigResponse{
		ID:                 id,
		Status:             status,
		Error:              errMsg,
		Threshold:          params.Threshold,
		MaxResults:         params.MaxResults,
		AsyncDelayMs:       int(params.AsyncDelay / time.Millisecond),
		InstallStatusFirst: params.InstallStatusFirst,
	})
}

// sendResponse encodes the response onto the output stream.
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(QueryError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
