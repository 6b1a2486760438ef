package lingo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/ZaguanLabs/lingo/metrics"
)

// Provider is the interface over remote translation backends.
type Provider interface {
	// Name returns the stable provider identifier (e.g. "google").
	Name() string

	// Translate translates content between the given languages.
	Translate(ctx context.Context, content, sourceLang, targetLang string) (string, error)

	// TestConnection is a lightweight connectivity and credential check,
	// used by diagnostics.
	TestConnection(ctx context.Context) error
}

// LanguageDetector is an optional provider capability. Providers that do
// not implement it fall back to the local stopword heuristic.
type LanguageDetector interface {
	DetectLanguage(ctx context.Context, content string) (string, error)
}

// TranslationCache is the tiered cache surface the dispatcher needs.
// The error return carries durable-store failures only; optional tiers
// degrade to misses internally.
type TranslationCache interface {
	Get(key string) (value string, ok bool, err error)
	Put(key string, rec CacheRecord) error
}

// CacheRecord is a translation written through the cache tiers.
type CacheRecord struct {
	OriginalContent   string
	TranslatedContent string
	SourceLang        string
	TargetLang        string
	Provider          string
	TTL               time.Duration // 0 = cache default
}

// Dictionary is the operator-override surface the dispatcher consults
// before paying any cache or network cost.
type Dictionary interface {
	LookupExact(content, sourceLang, targetLang string) (string, bool)
	ApplyPartial(content string) string
	MatchWildcard(content, sourceLang, targetLang string) (string, bool)
	MarkExcluded(content string) string
	RestoreExcluded(content string) string
}

// Dispatcher is the per-request translation pipeline: dictionary exact →
// tiered cache → dictionary wildcard → rate limit → provider → cache
// write-back. Construct one at startup and share it; it is safe for
// concurrent use.
type Dispatcher struct {
	providers  map[string]Provider
	defaultID  string
	cache      TranslationCache
	dict       Dictionary
	limiter    *RateLimiter
	translog   *TranslationLog
	logger     *logrus.Logger
	cfg        Config
	timeout    time.Duration
	flight     singleflight.Group
	now        func() time.Time
}

// DispatcherOption is a functional option for configuring the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) DispatcherOption {
	return func(d *Dispatcher) {
		d.cache = cache
	}
}

// WithDictionary sets the dictionary override table.
func WithDictionary(dict Dictionary) DispatcherOption {
	return func(d *Dispatcher) {
		d.dict = dict
	}
}

// WithRateLimiter sets the per-provider rate limiter.
func WithRateLimiter(limiter *RateLimiter) DispatcherOption {
	return func(d *Dispatcher) {
		d.limiter = limiter
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *logrus.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithConfig sets the runtime configuration.
func WithConfig(cfg Config) DispatcherOption {
	return func(d *Dispatcher) {
		d.cfg = cfg
	}
}

// WithProviderTimeout bounds each provider call (default: 30s).
func WithProviderTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithExtraProvider registers an additional provider selectable per call
// with UseProvider.
func WithExtraProvider(p Provider) DispatcherOption {
	return func(d *Dispatcher) {
		d.providers[p.Name()] = p
	}
}

// WithTranslationLog sets the translation log buffer. The log is only
// written when Config.EnableLog is true.
func WithTranslationLog(l *TranslationLog) DispatcherOption {
	return func(d *Dispatcher) {
		d.translog = l
	}
}

// NewDispatcher creates a Dispatcher with the given default provider.
func NewDispatcher(defaultProvider Provider, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		providers: map[string]Provider{defaultProvider.Name(): defaultProvider},
		defaultID: defaultProvider.Name(),
		cfg:       DefaultConfig(),
		timeout:   DefaultProviderTimeout,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logrus.New()
		d.logger.SetLevel(logrus.ErrorLevel)
	}
	return d
}

// TranslateOption customizes a single Translate call.
type TranslateOption func(*translateOptions)

type translateOptions struct {
	providerID  string
	ttlOverride time.Duration
	actorID     string
	clientIP    string
}

// UseProvider selects a registered provider for this call instead of the
// default.
func UseProvider(providerID string) TranslateOption {
	return func(o *translateOptions) {
		o.providerID = providerID
	}
}

// WithCacheTTL overrides the cache lifetime for this call's write-back.
func WithCacheTTL(ttl time.Duration) TranslateOption {
	return func(o *translateOptions) {
		o.ttlOverride = ttl
	}
}

// WithActor attributes this call to an operator and client address in
// the translation log.
func WithActor(actorID, clientIP string) TranslateOption {
	return func(o *translateOptions) {
		o.actorID = actorID
		o.clientIP = clientIP
	}
}

// ErrUnknownProvider is returned when a per-call provider ID has not
// been registered with the dispatcher.
var ErrUnknownProvider = errors.New("lingo: unknown provider")

// ErrLanguageDisabled is returned when the target language is not in the
// configured enabled set.
var ErrLanguageDisabled = errors.New("lingo: target language not enabled")

// Translate resolves a translation for content from sourceLang to
// targetLang. The pipeline short-circuits in a fixed order: same
// language or empty content, dictionary exact match, cached value,
// dictionary wildcard match, then the live provider gated by the rate
// limiter. Provider and rate-limit failures surface as typed errors;
// nothing is ever cached on failure.
func (d *Dispatcher) Translate(ctx context.Context, content, sourceLang, targetLang string, opts ...TranslateOption) (string, error) {
	var o translateOptions
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(content) == "" {
		return content, nil
	}
	if BaseLang(sourceLang) == BaseLang(targetLang) {
		return content, nil
	}
	if !d.cfg.LanguageEnabled(targetLang) {
		return "", ErrLanguageDisabled
	}

	p, err := d.resolveProvider(o.providerID)
	if err != nil {
		return "", err
	}

	key := DeriveKey(content, sourceLang, targetLang, p.Name())

	// Exact dictionary entries are authoritative and already in memory,
	// so they beat even the cache.
	if d.dict != nil {
		if translation, ok := d.dict.LookupExact(content, sourceLang, targetLang); ok {
			metrics.TranslationsTotal.WithLabelValues("dictionary").Inc()
			d.writeThrough(key, content, translation, sourceLang, targetLang, p.Name(), o.ttlOverride)
			return translation, nil
		}
	}

	// Cache before the wildcard scan keeps the common repeat case off
	// the regex path.
	if d.cache != nil {
		cached, ok, err := d.cache.Get(key)
		if err != nil {
			return "", err
		}
		if ok {
			metrics.TranslationsTotal.WithLabelValues("cache").Inc()
			return cached, nil
		}
	}

	if d.dict != nil {
		if translation, ok := d.dict.MatchWildcard(content, sourceLang, targetLang); ok {
			metrics.TranslationsTotal.WithLabelValues("dictionary").Inc()
			d.writeThrough(key, content, translation, sourceLang, targetLang, p.Name(), o.ttlOverride)
			return translation, nil
		}
	}

	// Coalesce concurrent misses on the same key into one provider call.
	result, err, _ := d.flight.Do(key, func() (interface{}, error) {
		return d.translateRemote(ctx, p, key, content, sourceLang, targetLang, o)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// translateRemote is the live-provider leg of the pipeline.
func (d *Dispatcher) translateRemote(ctx context.Context, p Provider, key, content, sourceLang, targetLang string, o translateOptions) (string, error) {
	if d.limiter != nil && !d.limiter.Allow(p.Name()) {
		metrics.RateLimitRejections.WithLabelValues(p.Name()).Inc()
		_, resetAt := d.limiter.Window(p.Name())
		return "", &RateLimitError{Provider: p.Name(), ResetAt: resetAt}
	}

	prepared := content
	if d.dict != nil {
		prepared = d.dict.ApplyPartial(d.dict.MarkExcluded(content))
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := d.now()
	translated, err := p.Translate(callCtx, prepared, sourceLang, targetLang)
	metrics.ProviderDuration.WithLabelValues(p.Name()).Observe(d.now().Sub(start).Seconds())

	// The quota is consumed by the attempt, win or lose.
	if d.limiter != nil {
		d.limiter.RecordUsage(p.Name())
	}

	if err != nil {
		metrics.ProviderRequests.WithLabelValues(p.Name(), "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &ProviderError{
				Kind:      ErrNetwork,
				Provider:  p.Name(),
				Message:   "translation request timed out",
				Cause:     err,
				Retryable: true,
			}
		}
		return "", err
	}
	metrics.ProviderRequests.WithLabelValues(p.Name(), "success").Inc()
	metrics.TranslationsTotal.WithLabelValues("provider").Inc()

	if d.dict != nil {
		translated = d.dict.RestoreExcluded(translated)
	}

	d.writeThrough(key, content, translated, sourceLang, targetLang, p.Name(), o.ttlOverride)
	d.logTranslation(p.Name(), sourceLang, targetLang, len(content), len(translated), o)

	return translated, nil
}

// DetectLanguage returns the language of content, preferring the default
// provider's detect capability and falling back to the local stopword
// heuristic.
func (d *Dispatcher) DetectLanguage(ctx context.Context, content string) string {
	if det, ok := d.providers[d.defaultID].(LanguageDetector); ok {
		if lang, err := det.DetectLanguage(ctx, content); err == nil && lang != "" {
			return BaseLang(lang)
		}
	}
	return DetectLanguage(content, d.cfg.DefaultLanguage)
}

// TranslationLog returns the configured log buffer, or nil.
func (d *Dispatcher) TranslationLog() *TranslationLog {
	return d.translog
}

// writeThrough caches a final answer. Store failures are logged, not
// returned: the translation itself already succeeded.
func (d *Dispatcher) writeThrough(key, original, translated, sourceLang, targetLang, providerID string, ttl time.Duration) {
	if d.cache == nil {
		return
	}
	err := d.cache.Put(key, CacheRecord{
		OriginalContent:   original,
		TranslatedContent: translated,
		SourceLang:        BaseLang(sourceLang),
		TargetLang:        BaseLang(targetLang),
		Provider:          providerID,
		TTL:               ttl,
	})
	if err != nil {
		d.logger.WithError(err).WithField("component", "dispatcher").Warn("cache write-back failed")
	}
}

func (d *Dispatcher) logTranslation(providerID, sourceLang, targetLang string, originalLen, translatedLen int, o translateOptions) {
	d.logger.WithFields(logrus.Fields{
		"component":   "dispatcher",
		"provider":    providerID,
		"source_lang": sourceLang,
		"target_lang": targetLang,
	}).Debug("translated via provider")

	if !d.cfg.EnableLog || d.translog == nil {
		return
	}
	d.translog.Append(LogEntry{
		Provider:         providerID,
		SourceLang:       BaseLang(sourceLang),
		TargetLang:       BaseLang(targetLang),
		OriginalLength:   originalLen,
		TranslatedLength: translatedLen,
		ActorID:          o.actorID,
		ClientIP:         o.clientIP,
	})
}

func (d *Dispatcher) resolveProvider(providerID string) (Provider, error) {
	if providerID == "" {
		providerID = d.defaultID
	}
	p, ok := d.providers[providerID]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}
