// Package dedupe collapses concurrent reads of the same persisted slot. HTTP
// handlers and the websocket stream often ask for history and progression at
// the same moment; only one store read runs per key while the others wait for
// its result.
package dedupe

import "golang.org/x/sync/singleflight"

// Group deduplicates loads by key. Each owner keeps its own Group, so two
// stores never share in-flight reads. The zero value is ready to use.
type Group struct {
	sf singleflight.Group
}

// Load runs fn for key unless a load of key is already in flight, in which
// case it waits for that load and returns its result.
func (g *Group) Load(key string, fn func() ([]byte, error)) ([]byte, error) {
	v, err, _ := g.sf.Do(key, func() (interface{}, error) {
		return fn()
	})
	b, _ := v.([]byte)
	return b, err
}
