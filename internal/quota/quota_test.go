package quota

import (
	"path/filepath"
	"sync"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

// Verify that intended interfaces are implemented
var _ Counter = NewMemory()
var _ Counter = &Bolt{}

func TestMemoryCounts(t *testing.T) {
	assert := assert_.New(t)
	m := NewMemory()
	assert.Equal(0, m.Count())

	m.RecordAttempt(true)
	m.RecordAttempt(false)
	m.RecordAttempt(true)
	assert.Equal(2, m.Count())
	assert.Equal(3, m.Attempts())
}

func TestMemoryConcurrent(t *testing.T) {
	assert := assert_.New(t)
	m := NewMemory()
	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.RecordAttempt(j%2 == 0)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(20*25, m.Count())
	assert.Equal(20*50, m.Attempts())
}

func TestBoltPersistence(t *testing.T) {
	assert := assert_.New(t)
	path := filepath.Join(t.TempDir(), "quota.db")

	b, err := OpenBolt(path)
	assert.NoError(err)
	b.RecordAttempt(true)
	b.RecordAttempt(false)
	assert.NoError(b.MarkSeen("t3_abc"))
	assert.NoError(b.Close())

	// Counts and seen posts survive reopening.
	b, err = OpenBolt(path)
	assert.NoError(err)
	defer b.Close()
	assert.Equal(1, b.Count())
	assert.Equal(2, b.Attempts())
	assert.True(b.Seen("t3_abc"))
	assert.False(b.Seen("t3_xyz"))
}
