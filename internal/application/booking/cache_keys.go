package booking

import "github.com/google/uuid"

// ServiceCacheKey is the cache key for a replicated service catalog entry.
// Exposed so replication handlers can invalidate on edit and delete.
func ServiceCacheKey(id uuid.UUID) string { return serviceCacheKey(id) }

func serviceCacheKey(id uuid.UUID) string { return "svc:" + id.String() }
