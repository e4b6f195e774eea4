package quorum

import (
	"context"

	"github.com/tendermint/tendermint/libs/common"
)

const contextKeyEvents contextKey = 100

// Attribute is a single key/value pair describing an event.
type Attribute struct {
	Key   string
	Value string
}

// Event is a notification produced while processing a message. Events are
// returned to the client as part of the delivery result.
type Event struct {
	Type       string
	Attributes []Attribute
}

// NewEvent builds an event from a list of key value pairs. Odd trailing
// keys are ignored.
func NewEvent(typ string, keyvals ...string) Event {
	ev := Event{Type: typ}
	for i := 0; i+1 < len(keyvals); i += 2 {
		ev.Attributes = append(ev.Attributes, Attribute{Key: keyvals[i], Value: keyvals[i+1]})
	}
	return ev
}

// Attr returns the value of the attribute with given key or an empty string.
func (e Event) Attr(key string) string {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Tags flattens the event into ABCI tags. The first tag names the event
// type, every attribute is prefixed with the type.
func (e Event) Tags() []common.KVPair {
	tags := make([]common.KVPair, 0, len(e.Attributes)+1)
	tags = append(tags, common.KVPair{Key: []byte("event"), Value: []byte(e.Type)})
	for _, a := range e.Attributes {
		tags = append(tags, common.KVPair{
			Key:   []byte(e.Type + "." + a.Key),
			Value: []byte(a.Value),
		})
	}
	return tags
}

// EventBuffer collects events emitted during the processing of a single
// operation. It is not safe for concurrent use.
type EventBuffer struct {
	events []Event
}

// Emit appends an event to the buffer.
func (b *EventBuffer) Emit(ev Event) {
	b.events = append(b.events, ev)
}

// Append moves all events collected by other into this buffer, preserving
// their order.
func (b *EventBuffer) Append(other *EventBuffer) {
	if other == nil {
		return
	}
	b.events = append(b.events, other.events...)
}

// Events returns all collected events in emission order.
func (b *EventBuffer) Events() []Event {
	return b.events
}

// Tags returns all collected events as ABCI tags.
func (b *EventBuffer) Tags() []common.KVPair {
	var tags []common.KVPair
	for _, e := range b.events {
		tags = append(tags, e.Tags()...)
	}
	return tags
}

// WithEventBuffer returns a context with a fresh event buffer attached.
// Events emitted with the returned context land in the returned buffer
// only, which allows the caller to drop them if the operation is
// rolled back.
func WithEventBuffer(ctx Context) (Context, *EventBuffer) {
	buf := &EventBuffer{}
	return context.WithValue(ctx, contextKeyEvents, buf), buf
}

// GetEventBuffer returns the event buffer attached to the context.
func GetEventBuffer(ctx Context) (*EventBuffer, bool) {
	buf, ok := ctx.Value(contextKeyEvents).(*EventBuffer)
	return buf, ok
}

// EmitEvent records an event in the buffer attached to the context. When
// no buffer is present, the event is only logged.
func EmitEvent(ctx Context, ev Event) {
	if buf, ok := GetEventBuffer(ctx); ok {
		buf.Emit(ev)
		return
	}
	keyvals := []interface{}{"event", ev.Type}
	for _, a := range ev.Attributes {
		keyvals = append(keyvals, a.Key, a.Value)
	}
	GetLogger(ctx).Debug("event without buffer", keyvals...)
}
