package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot/pkg/adapters/memory"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, memory.NewStore())
}

func TestMemoryStore_ConcurrentSave(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%02d", i)
			assert.NoError(t, store.Save(ctx, id, domain.NewState(id)))
		}(i)
	}
	wg.Wait()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 50)
	assert.Equal(t, "s-00", ids[0])
}
