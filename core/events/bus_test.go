package events

import "testing"

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	a := bus.Subscribe()
	b := bus.Subscribe()
	bus.Publish(TaskScheduled{RunID: "r1", TaskID: 7})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case e := <-ch:
			ts, ok := e.(TaskScheduled)
			if !ok || ts.TaskID != 7 {
				t.Fatalf("got %v, want TaskScheduled for task 7", e)
			}
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe()
	for i := 0; i < subscriberBuffer+5; i++ {
		bus.Publish(TaskScheduled{TaskID: i})
	}
	if got := len(ch); got != subscriberBuffer {
		t.Fatalf("buffered %d events, want %d", got, subscriberBuffer)
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe()
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after unsubscribe")
	}
	bus.Publish(RunCompleted{RunID: "r1"})
}

func TestBusCloseIsIdempotent(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	bus.Close()
	bus.Close()
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after close")
	}
	if sub := bus.Subscribe(); sub == nil {
		t.Fatal("subscribe after close returned nil channel")
	}
}
