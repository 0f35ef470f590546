package tui

import tea "github.com/charmbracelet/bubbletea"

// feed carries the states of a service subscription into the Bubble Tea
// loop. It keeps only the newest undelivered state, so a slow screen never
// blocks the polling goroutine that pushes into it.
type feed[S any] struct {
	ch   chan S
	done chan struct{}
}

func newFeed[S any]() *feed[S] {
	return &feed[S]{
		ch:   make(chan S, 1),
		done: make(chan struct{}),
	}
}

// push replaces any undelivered state with s. Safe for concurrent use.
func (f *feed[S]) push(s S) {
	for {
		select {
		case <-f.done:
			return
		case f.ch <- s:
			return
		default:
			select {
			case <-f.ch:
			default:
			}
		}
	}
}

// next waits for the next state and wraps it into a message. It returns nil
// once the feed is stopped.
func (f *feed[S]) next(wrap func(S) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-f.ch:
			return wrap(s)
		case <-f.done:
			return nil
		}
	}
}

func (f *feed[S]) stop() {
	select {
	case <-f.done:
	default:
		close(f.done)
	}
}
