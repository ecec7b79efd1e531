package logging

import (
	"strconv"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// AgentID adds an agent ID field.
func AgentID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("agent_id", id)
	}
}

// AgentType adds the agent's configured type name.
func AgentType(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("agent_type", name)
	}
}

// FromKind adds a from_kind field for behavior transitions.
func FromKind(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("from_kind", kind)
	}
}

// ToKind adds a to_kind field for behavior transitions.
func ToKind(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("to_kind", kind)
	}
}

// Category adds a suspicion event category field.
func Category(c string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("category", c)
	}
}

// Tick adds the simulation tick.
func Tick(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("tick", n)
	}
}

// Int adds an integer field with custom key.
func Int(key string, n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, n)
	}
}

// Depth adds an event dispatch depth.
func Depth(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("depth", n)
	}
}

// Float adds a float field rendered with three decimals.
func Float(key string, v float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, strconv.FormatFloat(v, 'f', 3, 64))
	}
}

// Point adds an x/y pair.
func Point(key string, x, y float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, strconv.FormatFloat(x, 'f', 2, 64)+","+strconv.FormatFloat(y, 'f', 2, 64))
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
