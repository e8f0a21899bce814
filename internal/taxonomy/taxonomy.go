//go:generate mockgen -source=taxonomy.go -destination=mock_taxonomy.go -package=taxonomy
package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GlebRadaev/komodohub/internal/config"
	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/metrics"
	"github.com/GlebRadaev/komodohub/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
	maxRetryAfter = time.Second * 30
)

// Wikidata rank entities mapped onto taxonomy fields.
const (
	rankPhylum = "Q38348"
	rankClass  = "Q37517"
	rankOrder  = "Q36602"
	rankFamily = "Q35409"
	rankGenus  = "Q34740"
)

const sparqlTemplate = `PREFIX wd: <http://www.wikidata.org/entity/>
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
SELECT ?rank ?rankLabel ?ancestorLabel WHERE {
  ?item wdt:P225 "%s" .
  ?item wdt:P171* ?ancestor .
  ?ancestor wdt:P105 ?rank .
  VALUES ?rank { wd:Q38348 wd:Q37517 wd:Q36602 wd:Q35409 wd:Q34740 }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "la,en". }
}`

var errRetryable = errors.New("retryable upstream response")

var sparqlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ", "\r", " ")

type Cache interface {
	Get(ctx context.Context, key string) (domain.Taxonomy, bool, error)
	Set(ctx context.Context, key string, t domain.Taxonomy) error
}

// Resolver looks up the taxonomic chain of a scientific name on Wikidata.
type Resolver struct {
	endpoint string
	client   clients.HTTPClientI
	cache    Cache
	limiter  *rate.Limiter
	wait     func(ctx context.Context, d time.Duration) error
}

func New(cfg config.TaxonomyConfig, client clients.HTTPClientI, cache Cache) *Resolver {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	return &Resolver{
		endpoint: cfg.Endpoint,
		client:   client,
		cache:    cache,
		limiter:  rate.NewLimiter(limit, 1),
		wait:     sleep,
	}
}

// Lookup resolves name, serving repeated names from the cache. A phylum
// outside the allow-list is rejected and never cached.
func (r *Resolver) Lookup(ctx context.Context, name string) (domain.Taxonomy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Taxonomy{}, fmt.Errorf("%w: empty name", domain.ErrValidation)
	}
	key := strings.ToLower(name)

	if t, ok, err := r.cache.Get(ctx, key); err != nil {
		zap.L().Warn("taxonomy cache read failed", zap.String("name", name), zap.Error(err))
	} else if ok {
		metrics.TaxonomyLookups.WithLabelValues("hit").Inc()
		return t, nil
	}

	t, err := r.fetch(ctx, name)
	if err != nil {
		metrics.TaxonomyLookups.WithLabelValues("error").Inc()
		return domain.Taxonomy{}, err
	}
	if t.IsEmpty() {
		metrics.TaxonomyLookups.WithLabelValues("not_found").Inc()
		return domain.Taxonomy{}, fmt.Errorf("%w: no taxonomy for %q", domain.ErrNotFound, name)
	}
	if t.Phylum != "" && !domain.IsPhylumAllowed(t.Phylum) {
		metrics.TaxonomyLookups.WithLabelValues("rejected").Inc()
		return t, fmt.Errorf("%w: %q", domain.ErrPhylumNotAllowed, t.Phylum)
	}

	if err := r.cache.Set(ctx, key, t); err != nil {
		zap.L().Warn("taxonomy cache write failed", zap.String("name", name), zap.Error(err))
	}
	metrics.TaxonomyLookups.WithLabelValues("miss").Inc()
	return t, nil
}

func (r *Resolver) fetch(ctx context.Context, name string) (domain.Taxonomy, error) {
	target := r.endpoint + "?" + url.Values{"query": {fmt.Sprintf(sparqlTemplate, sparqlEscaper.Replace(name))}}.Encode()
	headers := http.Header{}
	headers.Set("Accept", "application/sparql-results+json")

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return domain.Taxonomy{}, err
		}

		statusCode, body, respHeaders, err := r.client.Get(ctx, target, headers)
		delay := retryInterval * time.Duration(attempt)
		switch {
		case err != nil:
			lastErr = err
		case statusCode == http.StatusOK:
			return parseBindings(body)
		case statusCode == http.StatusTooManyRequests:
			delay = retryAfter(respHeaders, delay)
			lastErr = fmt.Errorf("%w: rate limited", errRetryable)
			zap.L().Warn("taxonomy lookup rate limited", zap.Int("attempt", attempt), zap.Duration("retryAfter", delay))
		case statusCode >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("%w: status %d", errRetryable, statusCode)
		default:
			zap.L().Error("unexpected taxonomy status", zap.Int("status", statusCode), zap.String("name", name))
			return domain.Taxonomy{}, fmt.Errorf("unexpected status code %d", statusCode)
		}

		if attempt < maxRetries {
			if err := r.wait(ctx, delay); err != nil {
				return domain.Taxonomy{}, err
			}
		}
	}
	return domain.Taxonomy{}, fmt.Errorf("taxonomy lookup for %q failed after %d attempts: %w", name, maxRetries, lastErr)
}

// parseBindings reads SPARQL JSON results. The first label seen for a rank wins.
func parseBindings(body []byte) (domain.Taxonomy, error) {
	if !gjson.ValidBytes(body) {
		return domain.Taxonomy{}, errors.New("malformed taxonomy response")
	}
	var t domain.Taxonomy
	gjson.GetBytes(body, "results.bindings").ForEach(func(_, b gjson.Result) bool {
		rankURI := b.Get("rank.value").String()
		rankID := rankURI[strings.LastIndex(rankURI, "/")+1:]
		label := b.Get("ancestorLabel.value").String()
		if label == "" {
			return true
		}
		var field *string
		switch rankID {
		case rankPhylum:
			field = &t.Phylum
		case rankClass:
			field = &t.ClassName
		case rankOrder:
			field = &t.OrderName
		case rankFamily:
			field = &t.Family
		case rankGenus:
			field = &t.Genus
		default:
			return true
		}
		if *field == "" {
			*field = label
		}
		return true
	})
	return t, nil
}

func retryAfter(h http.Header, fallback time.Duration) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return fallback
	}
	d := time.Duration(seconds) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
