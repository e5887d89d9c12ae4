package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/gigbook/gigbook/internal/config"
)

// PageCache caches successful GET responses in Redis. Every listing mutation
// bumps a generation counter that is part of each cache key, so stale pages
// simply stop being addressed and expire with their TTL.
type PageCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
}

// NewPageCache builds the cache. A nil Redis client disables it entirely.
func NewPageCache(cfg config.CacheConfig, rdb *redis.Client) *PageCache {
	return &PageCache{cfg: cfg, rdb: rdb}
}

func (p *PageCache) enabled() bool {
	return p.cfg.Enabled && p.rdb != nil
}

// Bump invalidates all cached pages by advancing the generation counter.
func (p *PageCache) Bump(ctx context.Context) {
	if !p.enabled() {
		return
	}
	_ = p.rdb.Incr(ctx, p.cfg.Prefix+":gen").Err()
}

func (p *PageCache) generation(ctx context.Context) int64 {
	n, err := p.rdb.Get(ctx, p.cfg.Prefix+":gen").Int64()
	if err != nil {
		return 0
	}
	return n
}

// Middleware serves cache hits and captures misses.
func (p *PageCache) Middleware() echo.MiddlewareFunc {
	if !p.enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := p.cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	maxBody := int64(p.cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !p.cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			// A pending flash cookie means this visitor has a one-time
			// message waiting; a cached hit would skip the handler and
			// the message would never be drained.
			if p.cfg.BypassCookie != "" {
				if _, err := c.Request().Cookie(p.cfg.BypassCookie); err == nil {
					return next(c)
				}
			}

			ctx := c.Request().Context()
			key := p.cacheKey(ctx, c)

			if bs, err := p.rdb.Get(ctx, key).Bytes(); err == nil && len(bs) >= 8 {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, "Content-Length") {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Pages carrying flash messages must never be cached, or the
			// message would replay for other visitors.
			if cw.status == http.StatusOK && c.Response().Header().Get("Set-Cookie") == "" {
				hdr := make(http.Header, len(c.Response().Header()))
				for k, vals := range c.Response().Header() {
					vv := make([]string, len(vals))
					copy(vv, vals)
					hdr[k] = vv
				}
				body := cw.buf.Bytes()
				if maxBody > 0 && int64(len(body)) > maxBody {
					body = body[:maxBody]
				}
				if payload, err := encodePayload(cw.status, hdr, body); err == nil {
					_ = p.rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}

// cacheKey folds the generation counter and the concrete request URL into a
// stable key. The raw URL path is used rather than the matched route, so
// /venues/1 and /venues/2 address distinct entries.
func (p *PageCache) cacheKey(ctx context.Context, c echo.Context) string {
	r := c.Request()
	tail := strings.Join([]string{r.Method, r.URL.Path, r.URL.RawQuery}, ":")
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%d:%x", p.cfg.Prefix, p.generation(ctx), sum[:])
}

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size < cw.limit {
		if cw.limit <= 0 {
			cw.buf.Write(b)
		} else if remain := cw.limit - cw.size; remain > 0 {
			if int64(len(b)) <= remain {
				cw.buf.Write(b)
			} else {
				cw.buf.Write(b[:remain])
			}
		}
		cw.size += int64(len(b))
	}
	return cw.ResponseWriter.Write(b)
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 4+4+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	hdr := make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, hdr, bs[8+hlen:], true
}
