package core

import "encoding/json"

// Fixed identifiers understood by the downstream monitoring agent.
// Changing any of these changes the wire schema.
const (
	SourceTag        = "tailscale"
	CollectorVersion = "1.0"
)

// Defaults for journal fields missing from a source entry
const (
	DefaultPriority = "6"
	DefaultUnit     = "tailscaled"
	DefaultHostname = "unknown"
)

// Event is one normalized journal entry embedded in a CollectionRecord
type Event struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Priority  string `json:"priority"`
	Unit      string `json:"unit"`
	Hostname  string `json:"hostname"`
}

// CollectionRecord is the canonical output unit, serialized as exactly
// one NDJSON line per invocation. Status is carried verbatim as emitted
// by the mesh agent; a nil RawMessage serializes as JSON null.
type CollectionRecord struct {
	Timestamp        string          `json:"timestamp"`
	Source           string          `json:"source"`
	CollectorVersion string          `json:"collector_version"`
	Status           json.RawMessage `json:"status"`
	Events           []Event         `json:"events"`
}
