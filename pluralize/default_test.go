package pluralize

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBuiltOnceUnderConcurrentFirstUse(t *testing.T) {
	saved := defaultEngine
	t.Cleanup(func() { defaultEngine = saved })

	var builds atomic.Int32
	defaultEngine = sync.OnceValue(func() *Engine {
		builds.Add(1)
		return New()
	})

	const workers = 16
	engines := make([]*Engine, workers)
	results := make([]string, workers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if i%2 == 0 {
				results[i] = Pluralize("cat", 2, false)
				engines[i] = Default()
			} else {
				engines[i] = Default()
				results[i] = Plural("cat")
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for i := 0; i < workers; i++ {
		assert.Same(t, engines[0], engines[i])
		assert.Equal(t, "cats", results[i])
	}
	assert.Equal(t, len(defaultIrregulars), engines[0].Stats().Irregular)
}
