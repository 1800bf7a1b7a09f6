package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitevault-packager/internal/assembler"
	"sitevault-packager/internal/fetcher"
	"sitevault-packager/internal/models"
	"sitevault-packager/pkg/logger"
)

type packageReq struct {
	Site  string           `json:"site"`
	Pages []models.RawPage `json:"pages"`
}

func main() {
	l := logger.New()
	mux := http.NewServeMux()

	client := fetcher.NewHTTPClient(15*time.Second, 5*time.Second, 5*1024*1024) // 5MB cap
	asm := assembler.New(client, l)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// POST /package  { "site": "...", "pages": [{"url","path","data"}] }
	// responds with the finished package zip
	mux.HandleFunc("/package", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req packageReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Site == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if len(req.Pages) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no pages"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
		defer cancel()

		res, err := asm.Build(ctx, req.Pages, req.Site)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+res.PackageName+`.zip"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Archive)
	})

	addr := ":8080"
	srv := &http.Server{
		Addr:         addr,
		Handler:      logRequest(l, mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		l.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
