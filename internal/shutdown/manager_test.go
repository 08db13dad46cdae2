package shutdown

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"contour-sketch/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsInReverseOrder(t *testing.T) {
	m := NewManager(logger.Nop(), time.Second)

	var mu sync.Mutex
	var order []string
	record := func(name string) Func {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	m.Register("janitor", record("janitor"))
	m.Register("http", record("http"))
	m.Register("failing", Func(func(context.Context) error { return errors.New("boom") }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"http", "janitor"}, order)
	assert.ErrorIs(t, m.Context().Err(), context.Canceled)

	select {
	case <-m.Done():
	default:
		t.Fatal("Done must be closed after Shutdown")
	}
}

func TestShutdownDoesNotWaitPastTimeout(t *testing.T) {
	m := NewManager(nil, 20*time.Millisecond)
	release := make(chan struct{})
	defer close(release)

	m.Register("stuck", Func(func(ctx context.Context) error {
		<-release
		return nil
	}))

	start := time.Now()
	m.Shutdown()
	assert.Less(t, time.Since(start), time.Second)
}
