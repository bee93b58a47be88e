package userlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyed_SameUserIsSerialized(t *testing.T) {
	locks := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(42)
			defer locks.Unlock(42)
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyed_ShardIsStable(t *testing.T) {
	assert.Equal(t, shardFor(12345), shardFor(12345))
}

func TestKeyed_DifferentUsersDoNotBlock(t *testing.T) {
	locks := New()

	// Подбираем двух пользователей с разными шардами
	a, b := int64(1), int64(2)
	for shardFor(a) == shardFor(b) {
		b++
	}

	locks.Lock(a)
	done := make(chan struct{})
	go func() {
		locks.Lock(b)
		locks.Unlock(b)
		close(done)
	}()
	<-done
	locks.Unlock(a)
}
