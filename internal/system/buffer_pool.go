package system

import (
	"image"
	"sync"
)

// GrayPool reuses *image.Gray buffers across pages to reduce GC pressure.
// The preprocessing stage allocates several full-page grayscale planes per
// page; in a batch every page of the same document usually has identical
// dimensions, so pooled buffers are reused heavily.
type GrayPool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &GrayPool{
	pools: make(map[string]*sync.Pool),
}

// GetGray returns a *image.Gray for rect from the pool, or a new one if no
// buffer of that size is pooled. Contents are undefined; callers must write
// every pixel they read back.
func GetGray(rect image.Rectangle) *image.Gray {
	return globalPool.Get(rect)
}

// PutGray returns a buffer to the pool for reuse.
func PutGray(img *image.Gray) {
	globalPool.Put(img)
}

func (p *GrayPool) Get(rect image.Rectangle) *image.Gray {
	key := rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewGray(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.Gray)
}

func (p *GrayPool) Put(img *image.Gray) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
