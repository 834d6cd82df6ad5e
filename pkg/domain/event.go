package domain

// Event is implemented by anything published on the event bus.
type Event interface {
	Type() string
}
