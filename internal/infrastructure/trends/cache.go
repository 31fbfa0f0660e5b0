package trends

import (
	"encoding/json"
	"os"
	"time"
)

// cacheEntry una entrada del caché de scores: valor y momento de captura.
type cacheEntry struct {
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// scoreCache caché de scores por keyword respaldado por un archivo JSON
// local. No es seguro para escritores concurrentes: el cliente lo usa desde
// una sola goroutine por corrida.
type scoreCache struct {
	path    string
	entries map[string]cacheEntry
}

// loadCache lee el archivo del caché. Un archivo ausente o corrupto arranca
// el caché vacío, nunca es fatal.
func loadCache(path string) *scoreCache {
	c := &scoreCache{path: path, entries: map[string]cacheEntry{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var entries map[string]cacheEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return c
	}
	c.entries = entries
	return c
}

// get devuelve el score cacheado si existe, es positivo y sigue fresco. Un
// score en cero no se reutiliza: suele significar una consulta fallida.
func (c *scoreCache) get(keyword string, ttl time.Duration, now time.Time) (float64, bool) {
	entry, ok := c.entries[keyword]
	if !ok {
		return 0, false
	}
	if entry.Score <= 0 || now.Sub(entry.Timestamp) >= ttl {
		return 0, false
	}
	return entry.Score, true
}

// put registra un score y persiste el archivo completo.
func (c *scoreCache) put(keyword string, score float64, now time.Time) error {
	c.entries[keyword] = cacheEntry{Score: score, Timestamp: now}
	return c.save()
}

// save reescribe el archivo entero. El caché es chico (un score por producto
// del catálogo), no amerita escritura incremental.
func (c *scoreCache) save() error {
	raw, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, raw, 0o644)
}
