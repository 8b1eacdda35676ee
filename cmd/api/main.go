package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/google"
	server "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/adapters/observability"
	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
	"flex_reviews/internal/storage/jsonfile"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// deps
	store := jsonfile.New(cfg.ReviewsFile)

	var cache domain.Cache
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; running without query cache")
	} else {
		cache = rc
	}
	cancel()

	googleSrc := google.New(cfg.GoogleBase, cfg.GoogleKey, cfg.SourceRPS)
	reviews := app.NewReviewService(store, googleSrc)
	properties := app.NewPropertyService(store, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Reviews: reviews, Properties: properties})

	ln, addr, err := listenWithFallback(cfg.HTTPAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen failed")
	}
	log.Info().Str("addr", addr).Str("dataset", store.Path()).Msg("API listening")

	httpSrv := &http.Server{Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	if err := httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// listenWithFallback binds the configured address, retrying once at
// port+1000 when the port is already taken.
func listenWithFallback(addr string) (net.Listener, string, error) {
	ln, err := net.Listen("tcp", addr)
	if err == nil {
		return ln, addr, nil
	}
	if !errors.Is(err, syscall.EADDRINUSE) {
		return nil, "", err
	}
	host, portStr, splitErr := net.SplitHostPort(addr)
	if splitErr != nil {
		return nil, "", err
	}
	port, convErr := strconv.Atoi(portStr)
	if convErr != nil {
		return nil, "", err
	}
	fallback := net.JoinHostPort(host, strconv.Itoa(port+1000))
	log.Warn().Str("addr", addr).Str("fallback", fallback).Msg("port in use, retrying on fallback")
	ln, err = net.Listen("tcp", fallback)
	return ln, fallback, err
}
