package memory

import (
	"sync"
	"time"

	"brandlink-be/internal/dto"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DuplicateCache keeps the last duplicate scan per workspace.
//
// Every Invalidate bumps the workspace generation. A scan reads Generation
// before loading contacts and stores its result with SaveIfCurrent, so a scan
// that overlapped a write never caches what it saw.
type DuplicateCache struct {
	cache *cache.Cache

	mu          sync.Mutex
	generations map[uuid.UUID]uint64
}

func NewDuplicateCache(ttl time.Duration) *DuplicateCache {
	c := cache.New(ttl, 2*ttl)
	return &DuplicateCache{
		cache:       c,
		generations: make(map[uuid.UUID]uint64),
	}
}

func (r *DuplicateCache) Save(workspaceId uuid.UUID, groups []dto.DuplicateGroupResponse) {
	r.cache.Set(workspaceId.String(), groups, cache.DefaultExpiration)
}

func (r *DuplicateCache) Generation(workspaceId uuid.UUID) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[workspaceId]
}

// SaveIfCurrent stores groups only if the workspace has not been invalidated
// since generation was read.
func (r *DuplicateCache) SaveIfCurrent(workspaceId uuid.UUID, generation uint64, groups []dto.DuplicateGroupResponse) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generations[workspaceId] != generation {
		return false
	}
	r.Save(workspaceId, groups)
	return true
}

// Get hands out the cached slice itself; callers treat it as read-only.
func (r *DuplicateCache) Get(workspaceId uuid.UUID) ([]dto.DuplicateGroupResponse, bool) {
	if x, found := r.cache.Get(workspaceId.String()); found {
		return x.([]dto.DuplicateGroupResponse), true
	}
	return nil, false
}

func (r *DuplicateCache) Invalidate(workspaceId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations[workspaceId]++
	r.cache.Delete(workspaceId.String())
}
