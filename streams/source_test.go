package streams

import (
	"context"
	"errors"
	"testing"
)

// recorder captures every signal a publisher delivers. When autoRequest is
// non-zero it requests that much demand from OnSubscribe.
type recorder[T any] struct {
	autoRequest int64

	sub       Subscription
	items     []T
	err       error
	completed bool
	terminals int
}

func (r *recorder[T]) OnSubscribe(sub Subscription) {
	r.sub = sub
	if r.autoRequest != 0 {
		sub.Request(r.autoRequest)
	}
}

func (r *recorder[T]) OnNext(item T) { r.items = append(r.items, item) }

func (r *recorder[T]) OnError(err error) {
	r.err = err
	r.terminals++
}

func (r *recorder[T]) OnComplete() {
	r.completed = true
	r.terminals++
}

func TestFromSlice_EmitsInOrder(t *testing.T) {
	rec := &recorder[int]{autoRequest: Unbounded}
	FromSlice([]int{1, 2, 3}).Subscribe(context.Background(), rec)

	if !rec.completed {
		t.Fatal("expected completion")
	}
	want := []int{1, 2, 3}
	if len(rec.items) != len(want) {
		t.Fatalf("got %v, want %v", rec.items, want)
	}
	for i := range want {
		if rec.items[i] != want[i] {
			t.Errorf("item %d: got %d, want %d", i, rec.items[i], want[i])
		}
	}
	if rec.terminals != 1 {
		t.Errorf("expected exactly one terminal signal, got %d", rec.terminals)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	rec := &recorder[string]{autoRequest: Unbounded}
	FromSlice[string](nil).Subscribe(context.Background(), rec)

	if !rec.completed {
		t.Fatal("expected completion")
	}
	if len(rec.items) != 0 {
		t.Errorf("expected no items, got %v", rec.items)
	}
	if rec.err != nil {
		t.Errorf("unexpected error: %v", rec.err)
	}
}

func TestFromSlice_HonorsDemand(t *testing.T) {
	rec := &recorder[int]{autoRequest: 2}
	FromSlice([]int{1, 2, 3, 4}).Subscribe(context.Background(), rec)

	if len(rec.items) != 2 {
		t.Fatalf("expected 2 items under demand of 2, got %v", rec.items)
	}
	if rec.completed || rec.err != nil {
		t.Fatal("subscription should still be open")
	}

	rec.sub.Request(Unbounded)
	if len(rec.items) != 4 {
		t.Fatalf("expected all 4 items after topping up demand, got %v", rec.items)
	}
	if !rec.completed {
		t.Fatal("expected completion")
	}
}

func TestFromSlice_IndependentSubscriptions(t *testing.T) {
	pub := FromSlice([]int{1, 2, 3})

	first := &recorder[int]{autoRequest: Unbounded}
	pub.Subscribe(context.Background(), first)
	second := &recorder[int]{autoRequest: Unbounded}
	pub.Subscribe(context.Background(), second)

	if len(first.items) != 3 || len(second.items) != 3 {
		t.Fatalf("each subscription should replay all items: %v / %v", first.items, second.items)
	}
}

func TestJust(t *testing.T) {
	rec := &recorder[string]{autoRequest: Unbounded}
	Just("only").Subscribe(context.Background(), rec)

	if len(rec.items) != 1 || rec.items[0] != "only" {
		t.Fatalf("got %v, want [only]", rec.items)
	}
	if !rec.completed {
		t.Fatal("expected completion")
	}
}

func TestEmpty(t *testing.T) {
	rec := &recorder[int]{autoRequest: Unbounded}
	Empty[int]().Subscribe(context.Background(), rec)

	if len(rec.items) != 0 || !rec.completed || rec.err != nil {
		t.Fatalf("expected clean empty completion, got items=%v err=%v", rec.items, rec.err)
	}
}

func TestGenerate(t *testing.T) {
	rec := &recorder[int]{autoRequest: Unbounded}
	Generate(5, func(i int) int { return i * i }).Subscribe(context.Background(), rec)

	want := []int{0, 1, 4, 9, 16}
	if len(rec.items) != len(want) {
		t.Fatalf("got %v, want %v", rec.items, want)
	}
	for i := range want {
		if rec.items[i] != want[i] {
			t.Errorf("item %d: got %d, want %d", i, rec.items[i], want[i])
		}
	}
}

func TestFail(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder[int]{autoRequest: Unbounded}
	Fail[int](boom).Subscribe(context.Background(), rec)

	if !errors.Is(rec.err, boom) {
		t.Fatalf("got err %v, want %v", rec.err, boom)
	}
	if len(rec.items) != 0 || rec.completed {
		t.Fatal("failed publisher must not emit items or complete")
	}
	if rec.terminals != 1 {
		t.Errorf("expected exactly one terminal signal, got %d", rec.terminals)
	}
}

func TestRequest_NonPositiveDemand(t *testing.T) {
	for _, n := range []int64{0, -1} {
		rec := &recorder[int]{autoRequest: n}
		FromSlice([]int{1}).Subscribe(context.Background(), rec)

		if !errors.Is(rec.err, ErrNonPositiveDemand) {
			t.Errorf("Request(%d): got err %v, want ErrNonPositiveDemand", n, rec.err)
		}
		if len(rec.items) != 0 {
			t.Errorf("Request(%d): no items expected, got %v", n, rec.items)
		}
	}
}

func TestCancel_StopsEmission(t *testing.T) {
	rec := &cancelAfter[int]{limit: 2}
	FromSlice([]int{1, 2, 3, 4, 5}).Subscribe(context.Background(), rec)

	if len(rec.items) != 2 {
		t.Fatalf("expected emission to stop after cancel, got %v", rec.items)
	}
	if rec.completed || rec.err != nil {
		t.Fatal("canceled subscription must not receive a terminal signal")
	}
}

// cancelAfter cancels its subscription from within OnNext once limit items
// have arrived.
type cancelAfter[T any] struct {
	limit     int
	sub       Subscription
	items     []T
	err       error
	completed bool
}

func (c *cancelAfter[T]) OnSubscribe(sub Subscription) {
	c.sub = sub
	sub.Request(Unbounded)
}

func (c *cancelAfter[T]) OnNext(item T) {
	c.items = append(c.items, item)
	if len(c.items) >= c.limit {
		c.sub.Cancel()
	}
}

func (c *cancelAfter[T]) OnError(err error) { c.err = err }
func (c *cancelAfter[T]) OnComplete()       { c.completed = true }

func TestSubscribe_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder[int]{autoRequest: Unbounded}
	FromSlice([]int{1, 2}).Subscribe(ctx, rec)

	if !errors.Is(rec.err, context.Canceled) {
		t.Fatalf("got err %v, want context.Canceled", rec.err)
	}
	if len(rec.items) != 0 {
		t.Errorf("no items expected under canceled context, got %v", rec.items)
	}
}

func TestAddDemand_Saturates(t *testing.T) {
	tests := []struct {
		current, n, want int64
	}{
		{0, 5, 5},
		{5, 3, 8},
		{Unbounded, 1, Unbounded},
		{Unbounded - 1, 10, Unbounded},
		{1, Unbounded, Unbounded},
	}
	for _, tt := range tests {
		if got := addDemand(tt.current, tt.n); got != tt.want {
			t.Errorf("addDemand(%d, %d) = %d, want %d", tt.current, tt.n, got, tt.want)
		}
	}
}

func TestReentrantRequest(t *testing.T) {
	// Requesting one item at a time from inside OnNext must still deliver
	// everything in order without recursion or deadlock.
	rec := &oneByOne[int]{}
	FromSlice([]int{1, 2, 3, 4}).Subscribe(context.Background(), rec)

	if len(rec.items) != 4 {
		t.Fatalf("got %v, want all 4 items", rec.items)
	}
	for i, item := range rec.items {
		if item != i+1 {
			t.Errorf("item %d: got %d, want %d", i, item, i+1)
		}
	}
	if !rec.completed {
		t.Fatal("expected completion")
	}
}

// oneByOne requests a single item per OnNext, exercising re-entrant demand.
type oneByOne[T any] struct {
	sub       Subscription
	items     []T
	completed bool
}

func (o *oneByOne[T]) OnSubscribe(sub Subscription) {
	o.sub = sub
	sub.Request(1)
}

func (o *oneByOne[T]) OnNext(item T) {
	o.items = append(o.items, item)
	o.sub.Request(1)
}

func (o *oneByOne[T]) OnError(error) {}
func (o *oneByOne[T]) OnComplete()   { o.completed = true }
