/*
Package server implements msgpack IPC for the launchsift ranking engine.

The server provides a minimal interface for live query ranking using msgpack
serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports ranking requests,
engine parameter updates, and info queries. Messages are processed
synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout. Each message contains
an ID field and other fields based on the operation type.

Ranking requests use mainly this structure:

	{"id": "req_001", "q": "zelda", "l": 20}

The server responds with results ordered best first:

	{"id": "req_001", "res": [{"t": "The Legend of Zelda", "s": 0.92, "r": 1}], "c": 1, "t": 3}

Parameter management enables runtime adjustment of the ranking knobs:

	{"id": "cfg_001", "action": "config_set", "threshold": 0.4}
	{"id": "cfg_002", "action": "config_get"}

Response structures include status information and error details when an op
fails.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing
latency in most cases.
*/
package server

// Request is the single request envelope. An empty action means a ranking
// request; "lookup", "action", "config_get", "config_set" and "info" select
// the other ops.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Query  string `msgpack:"q,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`

	// action fields: 1-based rank into the current results and the index of
	// the item action to run
	Rank        int `msgpack:"r,omitempty"`
	ActionIndex int `msgpack:"ai,omitempty"`

	// config_set fields, all optional
	Threshold          *float64 `msgpack:"threshold,omitempty"`
	MaxResults         *int     `msgpack:"max_results,omitempty"`
	AsyncDelayMs       *int     `msgpack:"async_delay_ms,omitempty"`
	InstallStatusFirst *bool    `msgpack:"install_status_first,omitempty"`
}

// ResultEntry - one ranked result
type ResultEntry struct {
	Title  string  `msgpack:"t"`
	Detail string  `msgpack:"d,omitempty"`
	Score  float64 `msgpack:"s"`
	Rank   uint16  `msgpack:"r"`
	// Spans holds the highlight positions inside the matched key.
	Spans []int `msgpack:"m,omitempty"`
}

// QueryResponse - ranking response
type QueryResponse struct {
	ID        string        `msgpack:"id"`
	Results   []ResultEntry `msgpack:"res"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// ConfigResponse - parameter operation response
type ConfigResponse struct {
	ID                 string  `msgpack:"id"`
	Status             string  `msgpack:"status"`
	Error              string  `msgpack:"error,omitempty"`
	Threshold          float64 `msgpack:"threshold,omitempty"`
	MaxResults         int     `msgpack:"max_results,omitempty"`
	AsyncDelayMs       int     `msgpack:"async_delay_ms,omitempty"`
	InstallStatusFirst bool    `msgpack:"install_status_first,omitempty"`
}

// ActionResponse - item action execution response
type ActionResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
	// Close tells the host whether the action wants the search surface closed.
	Close bool `msgpack:"close"`
}

// InfoResponse - engine info response
type InfoResponse struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	ItemCount int    `msgpack:"items"`
	Version   string `msgpack:"version,omitempty"`
}

// QueryError holds basic error information for failed requests
type QueryError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
