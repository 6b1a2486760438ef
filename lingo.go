// Package lingo provides a translation caching and rate-limited dispatch engine.
//
// Lingo decides, for a given (content, source language, target language)
// triple, whether to serve a cached result, consult a local dictionary
// override, or invoke a remote translation provider (Google Translate,
// OpenRouter LLMs). Results flow through a tiered cache (memory, optional
// Redis, durable store) and provider usage is gated by per-provider
// fixed-window rate limits.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/lingo"
//	    "github.com/ZaguanLabs/lingo/cache"
//	    "github.com/ZaguanLabs/lingo/provider"
//	    "gorm.io/driver/sqlite"
//	    "gorm.io/gorm"
//	)
//
//	func main() {
//	    db, _ := gorm.Open(sqlite.Open("translations.db"), &gorm.Config{})
//	    store, _ := cache.NewStore(db)
//
//	    p, _ := provider.New("openrouter", provider.Config{
//	        APIKey: os.Getenv("OPENROUTER_API_KEY"),
//	    })
//
//	    d := lingo.NewDispatcher(p,
//	        lingo.WithCache(cache.NewTiered(cache.NewMemory(32<<20), nil, store)),
//	        lingo.WithRateLimiter(lingo.NewRateLimiter(lingo.RateLimitConfig{})),
//	    )
//
//	    out, err := d.Translate(context.Background(), "Hello", "en", "it")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out) // Ciao
//	}
package lingo
