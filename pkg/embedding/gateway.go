package embedding

import (
	"log"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Gateway wraps an ordered list of embedding backends behind a single Embed
// capability. The first backend that succeeds wins; falling back is logged
// but never raised. Embedding is a best-effort enrichment, so total failure
// yields a nil result instead of an error and callers proceed without it.
type Gateway struct {
	providers []EmbeddingProvider
	logger    *log.Logger
	probes    *gocache.Cache
}

const probeCacheKey = "gateway_available"

func NewGateway(logger *log.Logger, providers ...EmbeddingProvider) *Gateway {
	return &Gateway{
		providers: providers,
		logger:    logger,
		// Probes hit the network; memoize briefly so "related while typing"
		// requests do not handshake on every keystroke.
		probes: gocache.New(30*time.Second, time.Minute),
	}
}

// Embed tries each backend in order and returns the first successful result,
// or nil when every backend fails.
func (g *Gateway) Embed(text string, taskType string) *Result {
	for i, p := range g.providers {
		res, err := p.Generate(text, taskType)
		if err != nil {
			if i < len(g.providers)-1 {
				g.logger.Printf("[WARN] embedding backend %s failed, falling back: %v", p.Name(), err)
			} else {
				g.logger.Printf("[ERROR] embedding backend %s failed, no fallback left: %v", p.Name(), err)
			}
			continue
		}
		return res
	}
	return nil
}

// Available reports whether any backend answers its reachability probe.
// Callers use it to decide whether to offer concept search at all; it is not
// a substitute for handling Embed returning nil.
func (g *Gateway) Available() bool {
	if cached, found := g.probes.Get(probeCacheKey); found {
		return cached.(bool)
	}

	available := false
	for _, p := range g.providers {
		if p.Available() {
			available = true
			break
		}
	}
	g.probes.Set(probeCacheKey, available, gocache.DefaultExpiration)
	return available
}

// ModelIdentifier names the model the first configured backend would use.
func (g *Gateway) ModelIdentifier() string {
	if len(g.providers) == 0 {
		return ""
	}
	return g.providers[0].Name()
}
