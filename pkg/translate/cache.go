// Package translate resolves words to translations through a tiered cache:
// an in-process map, a durable key-value store, a static bundled dictionary,
// and a rate-limited remote provider. Each tier populates the faster tiers
// above it on a hit.
package translate

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dtnitsch/scanlate/pkg/normalize"
)

// Failure sentinels. Resolve never fails; on total failure it returns one of
// these so the renderer (and tests) can tell a plain failure from an offline
// condition.
const (
	Untranslated        = "غير مترجم"
	UntranslatedOffline = "غير مترجم (أوفلاين)"
)

// Store is the durable cache tier, persisted across sessions.
type Store interface {
	GetTranslation(word string) (string, bool, error)
	PutTranslation(word, translation string) error
}

// Remote is the network translation provider consulted when every cheaper
// tier misses.
type Remote interface {
	Translate(ctx context.Context, word string) (string, error)
}

type entry struct {
	translation string
	negative    bool
	expires     time.Time
}

// Cache is the four-tier resolver. It is safe for use from a single pipeline;
// the mutex guards the memory tier against concurrent readers (e.g. a render
// loop inspecting the cache while processing runs).
type Cache struct {
	mu     sync.Mutex
	memory map[string]entry

	store    Store
	fallback map[string]string
	remote   Remote

	limiter *rate.Limiter
	online  func() bool
	negTTL  time.Duration

	now func() time.Time
}

// Options configures a Cache. Store and Remote may be nil, which disables the
// corresponding tier.
type Options struct {
	Store    Store
	Fallback map[string]string
	Remote   Remote

	// MinDelay is the minimum spacing between remote calls, enforced
	// globally across all words of all pages.
	MinDelay time.Duration

	// Online reports whether the remote tier is reachable at all. Nil
	// means always online.
	Online func() bool

	// NegativeTTL bounds how long failure sentinels stay cached before
	// the remote tier may be retried. Zero keeps them for the session.
	NegativeTTL time.Duration
}

// NewCache builds a resolver from the given tiers.
func NewCache(opts Options) *Cache {
	online := opts.Online
	if online == nil {
		online = func() bool { return true }
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = map[string]string{}
	}
	var limiter *rate.Limiter
	if opts.MinDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.MinDelay), 1)
	}
	return &Cache{
		memory:   make(map[string]entry),
		store:    opts.Store,
		fallback: fallback,
		remote:   opts.Remote,
		limiter:  limiter,
		online:   online,
		negTTL:   opts.NegativeTTL,
		now:      time.Now,
	}
}

// Resolve returns a human-readable translation for word. It never fails: on
// total failure it returns a sentinel. Successful resolutions from any lower
// tier are written back to every faster tier; durable-store failures are
// tolerated (the resolved value is still returned, it just stays uncached for
// the next session).
func (c *Cache) Resolve(ctx context.Context, word string) string {
	key := normalize.Normalize(word)
	if key == "" {
		return Untranslated
	}

	if translation, ok := c.memoryGet(key); ok {
		return translation
	}

	if c.store != nil {
		translation, ok, err := c.store.GetTranslation(key)
		if err != nil {
			log.Printf("translation store read failed for %q: %s", key, err)
		} else if ok {
			c.memoryPut(key, translation, false)
			return translation
		}
	}

	if translation, ok := c.fallback[key]; ok {
		c.memoryPut(key, translation, false)
		c.storePut(key, translation)
		return translation
	}

	return c.resolveRemote(ctx, key)
}

func (c *Cache) resolveRemote(ctx context.Context, key string) string {
	if c.remote == nil {
		c.memoryPut(key, Untranslated, true)
		return Untranslated
	}
	if !c.online() {
		log.Printf("offline, cannot translate %q", key)
		c.memoryPut(key, UntranslatedOffline, true)
		return UntranslatedOffline
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.memoryPut(key, Untranslated, true)
			return Untranslated
		}
	}

	phrase, err := c.remote.Translate(ctx, key)
	if err != nil {
		log.Printf("translation failed for %q: %s", key, err)
		c.memoryPut(key, Untranslated, true)
		return Untranslated
	}

	translation := FirstSegment(phrase)
	if translation == "" {
		translation = Untranslated
		c.memoryPut(key, translation, true)
		return translation
	}

	c.memoryPut(key, translation, false)
	c.storePut(key, translation)
	return translation
}

// Reset clears the memory tier. Used when a fresh document session starts
// with --fresh-cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memory = make(map[string]entry)
}

func (c *Cache) memoryGet(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.memory[key]
	if !ok {
		return "", false
	}
	if e.negative && !e.expires.IsZero() && c.now().After(e.expires) {
		delete(c.memory, key)
		return "", false
	}
	return e.translation, true
}

func (c *Cache) memoryPut(key, translation string, negative bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{translation: translation, negative: negative}
	if negative && c.negTTL > 0 {
		e.expires = c.now().Add(c.negTTL)
	}
	c.memory[key] = e
}

func (c *Cache) storePut(key, translation string) {
	if c.store == nil {
		return
	}
	if err := c.store.PutTranslation(key, translation); err != nil {
		log.Printf("translation store write failed for %q: %s", key, err)
	}
}
