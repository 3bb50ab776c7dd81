package service

import (
	"sync"
	"testing"
	"time"

	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResultCache_ScopedBySession(t *testing.T) {
	cache := NewResultCache()
	result := models.NewProcessedResult(&dto.ProcessDocumentResponse{}, time.Now())

	cache.Put("a", "doc", result)

	got, ok := cache.Get("a", "doc")
	assert.True(t, ok)
	assert.Same(t, result, got)

	_, ok = cache.Get("b", "doc")
	assert.False(t, ok)
}

func TestResultCache_LastWriteWins(t *testing.T) {
	cache := NewResultCache()
	first := models.NewProcessedResult(nil, time.Unix(1, 0))
	second := models.NewProcessedResult(nil, time.Unix(2, 0))

	cache.Put("s", "doc", first)
	cache.Put("s", "doc", second)

	got, _ := cache.Get("s", "doc")
	assert.Same(t, second, got)
}

func TestResultCache_BeginTracksInFlightCalls(t *testing.T) {
	cache := NewResultCache()

	doneA := cache.Begin("s", "doc")
	doneB := cache.Begin("s", "doc")
	assert.True(t, cache.Processing("s", "doc"))

	doneA()
	doneA()
	assert.True(t, cache.Processing("s", "doc"))

	doneB()
	assert.False(t, cache.Processing("s", "doc"))
}

func TestResultCache_ForgetDetachesEarlierCalls(t *testing.T) {
	cache := NewResultCache()

	before := cache.Begin("s", "doc")
	cache.Forget("s")
	assert.False(t, cache.Processing("s", "doc"))

	after := cache.Begin("s", "doc")
	before()
	assert.True(t, cache.Processing("s", "doc"))

	after()
	assert.False(t, cache.Processing("s", "doc"))
}

func TestResultCache_ConcurrentWriters(t *testing.T) {
	cache := NewResultCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done := cache.Begin("s", "doc")
			cache.Put("s", "doc", models.NewProcessedResult(nil, time.Now()))
			done()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cache.Len("s"))
	assert.False(t, cache.Processing("s", "doc"))
}

func TestPreview(t *testing.T) {
	short, cut := preview("Чек №42", 500)
	assert.Equal(t, "Чек №42", short)
	assert.False(t, cut)

	long, cut := preview("абвгд", 3)
	assert.Equal(t, "абв", long)
	assert.True(t, cut)

	clean, _ := preview("ok\xffok", 10)
	assert.Equal(t, "okok", clean)
}
