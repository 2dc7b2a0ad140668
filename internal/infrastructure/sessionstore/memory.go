// Package sessionstore provee implementaciones de fiber.Storage para las sesiones
// y la lista de tokens revocados: en memoria (un solo proceso) o en Redis.
package sessionstore

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

var _ fiber.Storage = (*Memory)(nil)

type memoryEntry struct {
	value   []byte
	expires time.Time // cero = sin expiración
}

// Memory almacén en proceso con expiración por clave.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewMemory crea el almacén y, si gcInterval > 0, una goroutine que purga las claves vencidas.
func NewMemory(gcInterval time.Duration) *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if gcInterval > 0 {
		go m.gc(gcInterval)
	}
	return m
}

// Get devuelve nil, nil si la clave no existe o venció.
func (m *Memory) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || m.expired(e) {
		return nil, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set guarda val con expiración exp (0 = sin expiración).
func (m *Memory) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	e := memoryEntry{value: make([]byte, len(val))}
	copy(e.value, val)
	if exp > 0 {
		e.expires = m.now().Add(exp)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Delete elimina la clave.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Reset elimina todas las claves.
func (m *Memory) Reset() error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Close detiene la goroutine de purga.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

func (m *Memory) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}

func (m *Memory) gc(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			for k, e := range m.entries {
				if m.expired(e) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		}
	}
}
