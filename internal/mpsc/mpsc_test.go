package mpsc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPushPopOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := New[int]()
	for i := 0; i < 10; i++ {
		require.True(t, q.Push(i))
	}
	require.Equal(t, 10, q.Len())

	for i := 0; i < 10; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestPopBlocksUntilPush(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := New[string]()
	done := make(chan string)
	go func() {
		v, _ := q.Pop()
		done <- v
	}()

	q.Push("hello")
	require.Equal(t, "hello", <-done)
}

func TestCloseDrainsRemaining(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := New[int]()
	q.Push(1)
	q.Push(2)
	q.Close()

	require.False(t, q.Push(3))

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, v)
	v, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, 2, v)

	_, ok = q.Pop()
	require.False(t, ok)
	// terminal: further pops keep reporting closure
	_, ok = q.Pop()
	require.False(t, ok)
}

func TestCloseWakesBlockedPop(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := New[int]()
	done := make(chan bool)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	q.Close()
	require.False(t, <-done)
}

func TestConcurrentProducers(t *testing.T) {
	defer goleak.VerifyNone(t)

	const producers = 8
	const perProducer = 100

	q := New[int]()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(i)
			}
		}()
	}

	seen := 0
	for seen < producers*perProducer {
		_, ok := q.Pop()
		require.True(t, ok)
		seen++
	}
	wg.Wait()
	require.Equal(t, 0, q.Len())
}
