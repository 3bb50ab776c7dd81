package service

import (
	"sync"

	"rag-iishka-client/internal/models"
)

// ResultCache remembers the latest processing result per document, scoped by
// session. It lives only as long as the process and has no eviction. When two
// processing calls for one document race, the last one to finish wins.
type ResultCache struct {
	mu      sync.RWMutex
	results map[string]map[string]*models.ProcessedResult
	pending map[string]map[string]int
	// gen is bumped by Forget so calls begun before it cannot end later ones.
	gen map[string]uint64
}

func NewResultCache() *ResultCache {
	return &ResultCache{
		results: make(map[string]map[string]*models.ProcessedResult),
		pending: make(map[string]map[string]int),
		gen:     make(map[string]uint64),
	}
}

func (c *ResultCache) Get(sessionID, documentID string) (*models.ProcessedResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[sessionID][documentID]
	return result, ok
}

func (c *ResultCache) Put(sessionID, documentID string, result *models.ProcessedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.results[sessionID] == nil {
		c.results[sessionID] = make(map[string]*models.ProcessedResult)
	}
	c.results[sessionID][documentID] = result
}

// Begin marks a processing call as in flight and returns the func that ends it.
func (c *ResultCache) Begin(sessionID, documentID string) func() {
	c.mu.Lock()
	if c.pending[sessionID] == nil {
		c.pending[sessionID] = make(map[string]int)
	}
	c.pending[sessionID][documentID]++
	gen := c.gen[sessionID]
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.gen[sessionID] != gen || c.pending[sessionID] == nil {
				return
			}
			c.pending[sessionID][documentID]--
			if c.pending[sessionID][documentID] <= 0 {
				delete(c.pending[sessionID], documentID)
			}
		})
	}
}

func (c *ResultCache) Processing(sessionID, documentID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending[sessionID][documentID] > 0
}

// Forget drops everything remembered for a session.
func (c *ResultCache) Forget(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, sessionID)
	delete(c.pending, sessionID)
	c.gen[sessionID]++
}

func (c *ResultCache) Len(sessionID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results[sessionID])
}
