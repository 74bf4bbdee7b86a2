package lockgroup_test

import (
	"sync"
	"testing"

	"gochop/internal/pkg/lockgroup"

	"github.com/stretchr/testify/assert"
)

func TestLockGroup_SerializesSameKey(t *testing.T) {
	g := lockgroup.New()

	counter := 0
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Lock("order-1")
			defer g.Unlock("order-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestLockGroup_DifferentKeysDoNotBlock(t *testing.T) {
	g := lockgroup.New()

	g.Lock("order-1")
	defer g.Unlock("order-1")

	done := make(chan struct{})
	go func() {
		g.Lock("order-2")
		g.Unlock("order-2")
		close(done)
	}()

	<-done // would deadlock if keys shared a mutex
}
