package ledger_test

import (
	"sync"
	"testing"

	"github.com/Satyam6458/HR-Management/internal/ledger"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	locker := ledger.NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("emp-1")
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locker.Len())
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	locker := ledger.NewKeyedMutex()

	unlockA := locker.Lock("a")
	unlockB := locker.Lock("b")
	assert.Equal(t, 2, locker.Len())

	unlockA()
	unlockA()
	unlockB()
	assert.Equal(t, 0, locker.Len())
}

func TestNoopLocker(t *testing.T) {
	var l ledger.Locker = ledger.NoopLocker{}
	unlock := l.Lock("x")
	unlock()
}
