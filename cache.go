package fstruct

import (
	"sync"

	"go.uber.org/zap"
)

// maxCached bounds the package-level cache; past it, formats are compiled
// on every call.
const maxCached = 1024

var defaultCache = newCache()

type cache struct {
	mu      sync.RWMutex
	structs map[string]*Struct
}

func newCache() *cache {
	return &cache{structs: make(map[string]*Struct)}
}

func (c *cache) get(fmtStr string) (*Struct, error) {
	c.mu.RLock()
	if s, ok := c.structs[fmtStr]; ok {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check
	if s, ok := c.structs[fmtStr]; ok {
		return s, nil
	}

	s, err := Compile(fmtStr)
	if err != nil {
		Logger().Debug("format rejected", zap.String("format", fmtStr), zap.Error(err))
		return nil, err
	}
	if len(c.structs) < maxCached {
		c.structs[fmtStr] = s
	}
	Logger().Debug("format compiled",
		zap.String("format", fmtStr),
		zap.Int("size", s.Size()),
		zap.Int("fields", len(s.desc.Fields)),
		zap.Int("cached", len(c.structs)),
	)
	return s, nil
}

// Pack encodes values according to fmtStr. Compiled formats are cached.
func Pack(fmtStr string, values ...any) ([]byte, error) {
	s, err := defaultCache.get(fmtStr)
	if err != nil {
		return nil, err
	}
	return s.Pack(values...)
}

// PackInto encodes values according to fmtStr into dst.
func PackInto(fmtStr string, dst []byte, values ...any) error {
	s, err := defaultCache.get(fmtStr)
	if err != nil {
		return err
	}
	return s.PackInto(dst, values...)
}

// Unpack decodes b according to fmtStr.
func Unpack(fmtStr string, b []byte) ([]any, error) {
	s, err := defaultCache.get(fmtStr)
	if err != nil {
		return nil, err
	}
	return s.Unpack(b)
}

// CalcSize returns the number of bytes fmtStr describes.
func CalcSize(fmtStr string) (int, error) {
	s, err := defaultCache.get(fmtStr)
	if err != nil {
		return 0, err
	}
	return s.Size(), nil
}
