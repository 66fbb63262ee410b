package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"clipper/config"
	"clipper/episodes"
	"clipper/transcript"

	_ "github.com/mattn/go-sqlite3"
)

const (
	maxPayloadBytes = 64 << 20
	maxRequestBytes = 1 << 20
)

type service interface {
	LoadEpisode(showID string, src io.Reader) (episodes.Episode, error)
	Episode(showID string) (episodes.Episode, error)
	Select(showID string, startMs, endMs int64) (transcript.Selection, error)
	SelectTapped(showID string, first, second int) (transcript.Selection, error)
	SaveClip(ctx context.Context, showID string, startMs, endMs int64) (episodes.Clip, error)
	Clip(ctx context.Context, fingerprint string) (episodes.Clip, error)
	MarkRendered(ctx context.Context, fingerprint string, videoURL string) error
}

func runServer(cfg config.Config) error {
	db, err := initDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	s := episodes.NewService(episodes.NewSQLiteRepo(db), settingsFromConfig(cfg))

	srv := &http.Server{}
	srv.Addr = cfg.Addr
	srv.Handler = newMux(s)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Printf("listening on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http listen and serve: %v\n", err)
		}
	}()

	<-ctx.Done()
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown server: %v\n", err)
	}
	return nil
}

func initDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	_, err = db.Exec(`
	PRAGMA busy_timeout       = 10000;
	PRAGMA journal_mode       = WAL;
	PRAGMA journal_size_limit = 200000000;
	PRAGMA synchronous        = NORMAL;
	PRAGMA foreign_keys       = ON;
	PRAGMA temp_store         = MEMORY;
	PRAGMA cache_size         = -16000;
	` + episodes.Schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing sqlite: %w", err)
	}

	return db, nil
}

func newMux(s service) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /episodes/{show}", func(w http.ResponseWriter, r *http.Request) {
		ep, err := s.LoadEpisode(r.PathValue("show"), http.MaxBytesReader(w, r.Body, maxPayloadBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, episodeSummary{
			ShowID:      ep.ShowID,
			Blake3Hash:  ep.Blake3Hash,
			DurationSec: ep.DurationSec,
			Words:       ep.Words.Len(),
			Paragraphs:  ep.Paragraphs.Len(),
		})
	})

	mux.HandleFunc("GET /episodes/{show}/transcript", func(w http.ResponseWriter, r *http.Request) {
		ep, err := s.Episode(r.PathValue("show"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ep)
	})

	mux.HandleFunc("GET /episodes/{show}/selection", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		startMs, err := strconv.ParseInt(q.Get("start"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("start: %w", err))
			return
		}
		var endMs int64
		if v := q.Get("end"); v != "" {
			endMs, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("end: %w", err))
				return
			}
		}

		sel, err := s.Select(r.PathValue("show"), startMs, endMs)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sel)
	})

	mux.HandleFunc("GET /episodes/{show}/taps", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		first, err := strconv.Atoi(q.Get("first"))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("first: %w", err))
			return
		}
		second, err := strconv.Atoi(q.Get("second"))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("second: %w", err))
			return
		}

		sel, err := s.SelectTapped(r.PathValue("show"), first, second)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sel)
	})

	mux.HandleFunc("POST /episodes/{show}/clips", func(w http.ResponseWriter, r *http.Request) {
		var req createClipReq
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("decoding clip request: %w", err))
			return
		}

		c, err := s.SaveClip(r.Context(), r.PathValue("show"), req.StartMs, req.EndMs)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	})

	mux.HandleFunc("GET /clips/{fingerprint}", func(w http.ResponseWriter, r *http.Request) {
		c, err := s.Clip(r.Context(), r.PathValue("fingerprint"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	})

	mux.HandleFunc("POST /clips/{fingerprint}/rendered", func(w http.ResponseWriter, r *http.Request) {
		var req markRenderedReq
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("decoding rendered request: %w", err))
			return
		}

		if err := s.MarkRendered(r.Context(), r.PathValue("fingerprint"), req.VideoURL); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

type (
	episodeSummary struct {
		ShowID      string  `json:"show_id"`
		Blake3Hash  string  `json:"blake3_hash"`
		DurationSec float64 `json:"duration_sec"`
		Words       int     `json:"words"`
		Paragraphs  int     `json:"paragraphs"`
	}

	createClipReq struct {
		StartMs int64 `json:"start_ms"`
		EndMs   int64 `json:"end_ms"`
	}

	markRenderedReq struct {
		VideoURL string `json:"video_url"`
	}

	errorResp struct {
		Error string `json:"error"`
	}
)

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, episodes.ErrEpisodeNotLoaded),
		errors.Is(err, episodes.ErrWordNotFound),
		errors.Is(err, episodes.ErrClipNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, episodes.ErrClipRejected):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		log.Printf("internal error: %v\n", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResp{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v\n", err)
	}
}
