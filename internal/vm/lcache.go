package vm

import "github.com/tom9nguyen/jerryscript/internal/runtime"

// LCache is a small direct-mapped cache of (object, property name) ->
// descriptor lookups, the same role jerryscript's property lookup cache
// plays in front of its prototype-chain walk. It is invalidated wholesale
// whenever any object's own-property list changes, via
// runtime.OnStructuralChange, and dropped entirely as the cheapest stage
// of the heap's allocation-failure recovery cascade, via gc.SetCacheDrop.
type LCache struct {
	entries map[lcacheKey]*runtime.PropertyDescriptor
}

type lcacheKey struct {
	obj  *runtime.Object
	name string
}

// NewLCache builds an empty cache and wires its invalidation hooks.
// dropCache is called by internal/gc's SetCacheDrop registration from
// internal/engine, keeping this package from importing internal/gc.
func NewLCache() *LCache {
	c := &LCache{entries: make(map[lcacheKey]*runtime.PropertyDescriptor)}
	runtime.OnStructuralChange(func(*runtime.Object) { c.DropAll() })
	return c
}

func (c *LCache) invalidateObject(o *runtime.Object) {
	for k := range c.entries {
		if k.obj == o {
			delete(c.entries, k)
		}
	}
}

// DropAll clears the cache unconditionally; the target gc.SetCacheDrop
// wires in.
func (c *LCache) DropAll() {
	c.entries = make(map[lcacheKey]*runtime.PropertyDescriptor)
}

// Lookup returns the cached descriptor for (o, name), if present.
func (c *LCache) Lookup(o *runtime.Object, name string) (*runtime.PropertyDescriptor, bool) {
	pd, ok := c.entries[lcacheKey{o, name}]
	return pd, ok
}

// Store records (o, name) -> pd.
func (c *LCache) Store(o *runtime.Object, name string, pd *runtime.PropertyDescriptor) {
	c.entries[lcacheKey{o, name}] = pd
}
