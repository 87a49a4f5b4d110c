package input

import "sync/atomic"

type Handler func(Event)

// Bus queues events from the host shell and dispatches them on the frame
// thread. Listeners hold a Subscription instead of registering under a name.
type Bus struct {
	events   chan Event
	handlers []*Subscription
	nextID   uint64
	dropped  atomic.Uint64
}

type Subscription struct {
	bus     *Bus
	id      uint64
	handler Handler
}

func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	return &Bus{events: make(chan Event, bufferSize)}
}

// Subscribe adds fn to the dispatch list. The returned handle removes it again.
func (b *Bus) Subscribe(fn Handler) *Subscription {
	if fn == nil {
		panic("handler is required")
	}
	b.nextID++
	sub := &Subscription{bus: b, id: b.nextID, handler: fn}
	b.handlers = append(b.handlers, sub)
	return sub
}

// Unsubscribe is idempotent.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	for i, existing := range b.handlers {
		if existing == s {
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			break
		}
	}
	s.bus = nil
}

func (s *Subscription) Active() bool {
	return s != nil && s.bus != nil
}

// Emit never blocks; events are dropped when the queue is full.
func (b *Bus) Emit(event Event) {
	if b == nil || event == nil {
		return
	}
	select {
	case b.events <- event:
	default:
		b.dropped.Add(1)
	}
}

// Dropped counts events lost to a full queue.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Drain dispatches every queued event and returns how many were handled. Only
// the last Resize of a drain is dispatched, and consecutive Pan events are
// merged, so a burst of shell events costs one resize and one pan per frame.
func (b *Bus) Drain() int {
	var (
		count     int
		resize    *Resize
		pan       Pan
		panQueued bool
	)
	flushPan := func() {
		if panQueued {
			b.dispatch(pan)
			count++
			pan = Pan{}
			panQueued = false
		}
	}
	for {
		select {
		case event := <-b.events:
			switch e := event.(type) {
			case Resize:
				r := e
				resize = &r
			case Pan:
				pan.DX += e.DX
				pan.DY += e.DY
				panQueued = true
			default:
				flushPan()
				b.dispatch(event)
				count++
			}
		default:
			if resize != nil {
				b.dispatch(*resize)
				count++
			}
			flushPan()
			return count
		}
	}
}

func (b *Bus) dispatch(event Event) {
	handlers := append([]*Subscription(nil), b.handlers...)
	for _, sub := range handlers {
		if sub.bus == b {
			sub.handler(event)
		}
	}
}
