package classes

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynced_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := NewSynced(NewMemoryRepository())

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := models.NewClass(ctx, s, "class")
			if err != nil {
				errs <- err
				return
			}
			if err := s.SaveNewClass(ctx, c); err != nil {
				errs <- err
				return
			}
			f, err := models.NewFile(ctx, s, "m", "f", time.Now())
			if err != nil {
				errs <- err
				return
			}
			errs <- s.AddNewFile(ctx, c.ID, f)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := s.GetAllClasses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, workers)

	ids := map[models.ClassID]bool{}
	passes := map[models.PassPhrase]bool{}
	for _, c := range all {
		ids[c.ID] = true
		passes[c.PassPhrase] = true
	}
	assert.Len(t, ids, workers)
	assert.Len(t, passes, workers)
}

// probeCounter counts class id probes that reach the wrapped store.
type probeCounter struct {
	*MemoryRepository
	mu     sync.Mutex
	probes int
}

func (p *probeCounter) ClassIDExists(ctx context.Context, id models.ClassID) (bool, error) {
	p.mu.Lock()
	p.probes++
	p.mu.Unlock()
	return p.MemoryRepository.ClassIDExists(ctx, id)
}

func TestSynced_GenerationDoesNotDeadlock(t *testing.T) {
	inner := &probeCounter{MemoryRepository: NewMemoryRepository()}
	s := NewSynced(inner)

	c, err := models.NewClass(context.Background(), s, "x")
	require.NoError(t, err)
	require.NoError(t, s.SaveNewClass(context.Background(), c))
	assert.Equal(t, 1, inner.probes)
}
