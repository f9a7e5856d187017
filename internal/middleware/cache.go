package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ridehub/ms-route/internal/config"
)

// captureWriter copies the response body while forwarding it to the client.
// Once the body passes limit the copy is dropped and overflow is set.
type captureWriter struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	limit    int64
	overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.overflow {
		if cw.limit > 0 && int64(cw.buf.Len()+len(b)) > cw.limit {
			cw.overflow = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

// ResponseCache caches GET responses of one resource group in Redis. Every
// key embeds the group's generation counter and every successful write to
// the group increments it, so lists and counts are never served stale.
type ResponseCache struct {
	cfg   config.CacheConfig
	rdb   *redis.Client
	group string
	also  []string
	log   *slog.Logger
}

// NewRedisCache returns the cache middleware for group (the resource path,
// e.g. /api/addresses). Writes also invalidate the groups listed in also.
// With caching disabled or no client it passes requests straight through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, group string, log *slog.Logger, also ...string) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	rc := &ResponseCache{cfg: cfg, rdb: rdb, group: group, also: also, log: log}
	return rc.handle
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func (rc *ResponseCache) genKey() string {
	return genKey(rc.cfg.Prefix, rc.group)
}

func genKey(prefix, group string) string {
	return prefix + ":gen:" + group
}

// generation reads the group's counter; a missing key is generation 0.
func (rc *ResponseCache) generation(ctx context.Context) (int64, error) {
	n, err := rc.rdb.Get(ctx, rc.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// key hashes the concrete request path and query under the generation.
func (rc *ResponseCache) key(r *http.Request, gen int64) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%s:%d:%x", rc.cfg.Prefix, rc.group, gen, sum[:])
}

func (rc *ResponseCache) handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Method != http.MethodGet {
			return rc.invalidating(next, c)
		}
		if !rc.cfg.Cacheable(c.Path()) {
			return next(c)
		}

		ctx := req.Context()
		gen, err := rc.generation(ctx)
		if err != nil {
			rc.log.WarnContext(ctx, "cache generation lookup failed", "group", rc.group, "err", err)
			return next(c)
		}
		key := rc.key(req, gen)

		if bs, err := rc.rdb.Get(ctx, key).Bytes(); err == nil {
			if status, hdr, body, ok := decodePayload(bs); ok {
				stripVolatile(hdr)
				out := c.Response().Header()
				for k, vals := range hdr {
					out[k] = vals
				}
				c.Response().Header().Set("X-Cache", "HIT")
				c.Response().WriteHeader(status)
				_, err := c.Response().Write(body)
				return err
			}
		}

		cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(rc.cfg.MaxBodyBytes)}
		c.Response().Writer = cw
		c.Response().Header().Set("X-Cache", "MISS")
		if err := next(c); err != nil {
			return err
		}
		if cw.status != http.StatusOK || cw.overflow {
			return nil
		}

		hdr := c.Response().Header().Clone()
		stripVolatile(hdr)
		payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
		if err != nil {
			return nil
		}
		// Stored under the generation read before the handler ran; a write
		// that raced this read has already moved the group past it.
		if err := rc.rdb.SetEx(context.WithoutCancel(ctx), key, payload, rc.cfg.TTL).Err(); err != nil {
			rc.log.WarnContext(ctx, "cache store failed", "group", rc.group, "err", err)
		}
		return nil
	}
}

// invalidating runs a write and bumps the generations when it succeeded.
func (rc *ResponseCache) invalidating(next echo.HandlerFunc, c echo.Context) error {
	err := next(c)
	if err != nil || c.Response().Status >= http.StatusBadRequest {
		return err
	}
	ctx := context.WithoutCancel(c.Request().Context())
	_, perr := rc.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, rc.genKey())
		for _, g := range rc.also {
			pipe.Incr(ctx, genKey(rc.cfg.Prefix, g))
		}
		return nil
	})
	if perr != nil {
		rc.log.WarnContext(ctx, "cache invalidation failed", "group", rc.group, "err", perr)
	}
	return nil
}

// volatileHeaders belong to one request and are never stored or replayed.
var volatileHeaders = []string{
	echo.HeaderContentLength,
	echo.HeaderXRequestID,
	echo.HeaderRetryAfter,
	"X-Cache",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-RateLimit-Key",
}

func stripVolatile(h http.Header) {
	for _, k := range volatileHeaders {
		h.Del(k)
	}
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
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
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}
