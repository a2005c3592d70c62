package fsm

import "fmt"

type State string

type Event string

const (
	StateEmpty   State = "empty"
	StateIdle    State = "idle"
	StateRunning State = "running"
)

const (
	EventLoad   Event = "load"
	EventClear  Event = "clear"
	EventStart  Event = "start"
	EventStop   Event = "stop"
	EventFinish Event = "finish"
)

func Transition(current State, event Event) (State, error) {
	switch event {
	case EventLoad:
		return StateIdle, nil
	case EventClear:
		return StateEmpty, nil
	}

	switch current {
	case StateEmpty:
		return current, invalidTransition(current, event)
	case StateIdle:
		switch event {
		case EventStart:
			return StateRunning, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateRunning:
		switch event {
		case EventStop, EventFinish:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
