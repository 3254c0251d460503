package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

type ctxKey int

const endpointKey ctxKey = 0

// WithEndpoint labels the request context so metrics and spans report a
// stable endpoint name instead of a raw URL with ids in it.
func WithEndpoint(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, endpointKey, name)
}

func endpointFromContext(ctx context.Context, fallback string) string {
	if name, ok := ctx.Value(endpointKey).(string); ok && name != "" {
		return name
	}
	return fallback
}

// Transport instruments outgoing API requests: request id header, metrics,
// a span per call and an optional client-side rate limit.
type Transport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// NewTransport wraps base with instrumentation. A nil base falls back to
// http.DefaultTransport; a nil limiter disables rate limiting.
func NewTransport(base http.RoundTripper, limiter *rate.Limiter) *Transport {
	return &Transport{Base: base, Limiter: limiter}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := endpointFromContext(ctx, req.URL.Path)

	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	ctx, span := otel.Tracer("pourpal/api").Start(ctx, endpoint)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL.String()),
	)
	req = req.WithContext(ctx)

	if req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		IncAPIRequestError(endpoint)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	ObserveAPIRequest(req.Method, endpoint, resp.StatusCode, time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return resp, nil
}
