package hal

type hostInput struct {
	ch chan Event
}

func newHostInput() *hostInput {
	return &hostInput{ch: make(chan Event, 64)}
}

func (in *hostInput) Events() <-chan Event { return in.ch }

// push drops the event when the queue is full.
func (in *hostInput) push(ev Event) {
	select {
	case in.ch <- ev:
	default:
	}
}

// quit must not be lost, so it waits for room when the queue is full.
func (in *hostInput) quit() {
	for {
		select {
		case in.ch <- Event{Type: EventQuit}:
			return
		default:
		}
		select {
		case <-in.ch:
		default:
		}
	}
}
