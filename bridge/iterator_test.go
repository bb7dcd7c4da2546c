package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/rxkit/streams"
)

// servedPub delivers exactly one item per unit of demand on the requesting
// goroutine, recording every Request call. It fails with failWith after the
// last item when set, otherwise completes.
type servedPub struct {
	items    []int
	failWith error

	requests []int64
	last     *servedSub
}

func (p *servedPub) Subscribe(_ context.Context, sub streams.Subscriber[int]) {
	s := &servedSub{pub: p, sub: sub}
	p.last = s
	sub.OnSubscribe(s)
}

type servedSub struct {
	pub      *servedPub
	sub      streams.Subscriber[int]
	pos      int
	done     bool
	canceled bool
}

func (s *servedSub) Request(n int64) {
	s.pub.requests = append(s.pub.requests, n)
	for ; n > 0 && s.pos < len(s.pub.items) && !s.done; n-- {
		item := s.pub.items[s.pos]
		s.pos++
		s.sub.OnNext(item)
	}
	if s.pos >= len(s.pub.items) && !s.done {
		s.done = true
		if s.pub.failWith != nil {
			s.sub.OnError(s.pub.failWith)
		} else {
			s.sub.OnComplete()
		}
	}
}

func (s *servedSub) Cancel() {
	s.done = true
	s.canceled = true
}

func TestIterate_PullsInOrder(t *testing.T) {
	it := Iterate(context.Background(), streams.FromSlice([]int{10, 20, 30}))
	defer it.Close()

	ctx := context.Background()
	for _, want := range []int{10, 20, 30} {
		got, ok, err := it.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("exhausted early")
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}

	// Exhaustion is sticky.
	for i := 0; i < 2; i++ {
		_, ok, err := it.Next(ctx)
		if ok || err != nil {
			t.Fatalf("after exhaustion: got ok=%v err=%v", ok, err)
		}
	}
}

func TestIterate_Empty(t *testing.T) {
	it := Iterate(context.Background(), streams.Empty[int]())
	defer it.Close()

	_, ok, err := it.Next(context.Background())
	if ok || err != nil {
		t.Fatalf("got ok=%v err=%v, want exhausted", ok, err)
	}
}

func TestIterate_OneItemPerRequest(t *testing.T) {
	pub := &servedPub{items: []int{1, 2, 3}}
	it := Iterate(context.Background(), pub)
	defer it.Close()

	ctx := context.Background()
	for {
		_, ok, err := it.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
	}

	for i, n := range pub.requests {
		if n != 1 {
			t.Errorf("request %d: got %d, want 1", i, n)
		}
	}
	if len(pub.requests) > len(pub.items)+1 {
		t.Errorf("too many requests: %v", pub.requests)
	}
}

func TestIterate_Error(t *testing.T) {
	boom := errors.New("boom")
	pub := &servedPub{items: []int{1}, failWith: boom}
	it := Iterate(context.Background(), pub)
	defer it.Close()

	ctx := context.Background()
	got, ok, err := it.Next(ctx)
	if err != nil || !ok || got != 1 {
		t.Fatalf("first pull: got (%d, %v, %v)", got, ok, err)
	}

	_, ok, err = it.Next(ctx)
	if ok || !errors.Is(err, boom) {
		t.Fatalf("got ok=%v err=%v, want the stream error", ok, err)
	}

	// The error is sticky.
	_, _, err = it.Next(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("repeat pull: got err %v, want %v", err, boom)
	}
}

func TestIterate_CloseCancelsSubscription(t *testing.T) {
	pub := &servedPub{items: []int{1, 2, 3}}
	it := Iterate(context.Background(), pub)

	if _, _, err := it.Next(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}

	if !pub.last.canceled {
		t.Error("Close must cancel the subscription")
	}
	if _, _, err := it.Next(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("got err %v, want ErrClosed", err)
	}
}

func TestIterate_CloseTwice(t *testing.T) {
	it := Iterate(context.Background(), streams.FromSlice([]int{1}))
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIterate_ContextCanceled(t *testing.T) {
	it := Iterate(context.Background(), &servedPub{items: []int{1, 2}})
	defer it.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := it.Next(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got err %v, want context.Canceled", err)
	}
}
