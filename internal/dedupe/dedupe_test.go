package dedupe

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroup_CollapsesConcurrentCalls(t *testing.T) {
	var g Group[[]int]
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([][]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := g.Do("top:10", func() ([]int, error) {
				calls.Add(1)
				<-release
				return []int{3, 2, 1}, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, []int{3, 2, 1}, r)
	}
}

func TestGroup_ReturnsZeroOnError(t *testing.T) {
	var g Group[[]int]
	v, err := g.Do("k", func() ([]int, error) { return []int{1}, errors.New("boom") })
	assert.Error(t, err)
	assert.Nil(t, v)
}
