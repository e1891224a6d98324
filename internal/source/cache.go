package source

import (
	"hash/fnv"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
)

// Entry is a cached medium together with the presentation parameters of the
// object that last used it.
type Entry struct {
	Media `yaml:",inline"`
	Tint  slideshow.Color `yaml:"tint"`
	Scale *geom.Vec2      `yaml:"scale,omitempty"`

	sum uint64
}

// Cache holds decoded media keyed by object id. It is shared between
// resolve passes and safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[slideshow.ID]*Entry
	group   singleflight.Group

	placeholder geom.Vec2
	log         *zap.Logger
}

// NewCache returns an empty cache. Objects without data get a still image
// of the placeholder size.
func NewCache(log *zap.Logger, placeholder geom.Vec2) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	if placeholder.X <= 0 || placeholder.Y <= 0 {
		placeholder = geom.Splat(1)
	}
	return &Cache{
		entries:     make(map[slideshow.ID]*Entry),
		placeholder: placeholder,
		log:         log,
	}
}

func checksum(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}

// Lookup returns the medium of image object id, decoding it on first use or
// when its bytes changed. The entry's tint and scale are refreshed from img.
func (c *Cache) Lookup(id slideshow.ID, img slideshow.Image) (Entry, error) {
	sum := checksum(img.Data)

	c.mu.Lock()
	if e, ok := c.entries[id]; ok && e.sum == sum {
		e.Tint = img.Tint
		e.Scale = img.Scale
		out := *e
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	key := strconv.FormatUint(uint64(id), 16) + ":" + strconv.FormatUint(sum, 16)
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		return c.decode(img)
	})
	if err != nil {
		c.log.Debug("Media decode failed", zap.Uint64("object", uint64(id)), zap.String("uri", img.URI), zap.Error(err))
		return Entry{}, err
	}

	m := v.(Media)
	c.log.Debug("Media decoded",
		zap.Uint64("object", uint64(id)),
		zap.Stringer("kind", m.Kind),
		zap.String("format", m.Format),
		zap.Int("frames", m.Frames),
		zap.Bool("shared", shared),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	e := &Entry{Media: m, Tint: img.Tint, Scale: img.Scale, sum: sum}
	c.entries[id] = e
	return *e, nil
}

func (c *Cache) decode(img slideshow.Image) (Media, error) {
	if len(img.Data) == 0 {
		return Media{Kind: KindImage, Size: c.placeholder, Frames: 1}, nil
	}
	return Probe(img.Data)
}

// Forget drops one object's entry.
func (c *Cache) Forget(id slideshow.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Invalidate drops every entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[slideshow.ID]*Entry)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
