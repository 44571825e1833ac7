package contract

import "fmt"

// TraceEntry is one delegation step. It encodes as a single "Agent: action"
// string on the wire.
type TraceEntry struct {
	Agent  AgentType
	Action string
}

func (e TraceEntry) String() string {
	return fmt.Sprintf("%s: %s", e.Agent, e.Action)
}

func (e TraceEntry) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Trace is the append-only log owned by a single query. It is not safe for
// concurrent use; a query runs on one call chain.
type Trace struct {
	entries []TraceEntry
}

func NewTrace() *Trace {
	return &Trace{entries: make([]TraceEntry, 0, 4)}
}

func (t *Trace) Append(agent AgentType, action string) {
	t.entries = append(t.entries, TraceEntry{Agent: agent, Action: action})
}

func (t *Trace) Appendf(agent AgentType, format string, args ...any) {
	t.Append(agent, fmt.Sprintf(format, args...))
}

func (t *Trace) Len() int {
	return len(t.entries)
}

// Entries returns a copy so the caller cannot mutate the trace afterwards.
func (t *Trace) Entries() []TraceEntry {
	return append([]TraceEntry(nil), t.entries...)
}

func (t *Trace) Strings() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.String())
	}
	return out
}
