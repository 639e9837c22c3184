package collector

import (
	"encoding/json"
	"strconv"
	"time"

	"tscollect/src/internal/core"
)

// Collection timestamp layout: UTC, microsecond precision, 'Z' suffix
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Journal entry keys recognized by the normalizer. Everything else in
// a source document is dropped.
const (
	keyTimestamp = "__REALTIME_TIMESTAMP"
	keyMessage   = "MESSAGE"
	keyPriority  = "PRIORITY"
	keyUnit      = "_SYSTEMD_UNIT"
	keyHostname  = "_HOSTNAME"
)

// CollectionTimestamp renders the instant the way the downstream
// schema expects it.
func CollectionTimestamp(now time.Time) string {
	return now.UTC().Format(timestampLayout)
}

// NormalizeEvents maps raw journal documents onto events, extracting
// the five recognized fields with their defaults. The collection
// instant serves as the fallback timestamp for entries missing their
// own. Pure given now: deterministic for fixed inputs.
func NormalizeEvents(docs []map[string]any, now time.Time) []core.Event {
	fallback := CollectionTimestamp(now)

	events := make([]core.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, core.Event{
			Timestamp: stringField(doc, keyTimestamp, fallback),
			Message:   stringField(doc, keyMessage, ""),
			Priority:  stringField(doc, keyPriority, core.DefaultPriority),
			Unit:      stringField(doc, keyUnit, core.DefaultUnit),
			Hostname:  stringField(doc, keyHostname, core.DefaultHostname),
		})
	}
	return events
}

// BuildRecord assembles the canonical record from an obtained snapshot
// and already-normalized events. Events are never serialized as null.
func BuildRecord(status json.RawMessage, events []core.Event, now time.Time) core.CollectionRecord {
	if events == nil {
		events = []core.Event{}
	}
	return core.CollectionRecord{
		Timestamp:        CollectionTimestamp(now),
		Source:           core.SourceTag,
		CollectorVersion: core.CollectorVersion,
		Status:           status,
		Events:           events,
	}
}

// stringField extracts a scalar value as a string. journald emits all
// of the recognized fields as strings, but a non-conforming producer
// still yields the schema's string type rather than a dropped field.
func stringField(doc map[string]any, key, fallback string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fallback
	}
}
