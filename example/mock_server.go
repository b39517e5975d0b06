package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// mockVersion mirrors one entry of the launcher manifest.
type mockVersion struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// StartMockManifestServer serves a version manifest on addr that starts
// listing target once releaseAfter has passed. Roughly one response in five
// is a 503 so the watcher's suppress mode has something to do.
// Call this in a goroutine before creating the watcher.
func StartMockManifestServer(addr, target string, releaseAfter time.Duration) {
	var (
		mu         sync.Mutex
		releasedAt time.Time
	)
	releaseAt := time.Now().Add(releaseAfter)

	versions := []mockVersion{
		{ID: "1.20.2", Type: "release", URL: "https://example.com/1.20.2.json",
			Time: "2023-09-20T09:02:57+00:00", ReleaseTime: "2023-09-20T09:02:57+00:00"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/mc/game/version_manifest.json", func(w http.ResponseWriter, r *http.Request) {
		// simulate small latency variance
		time.Sleep(time.Duration(20+rand.Intn(80)) * time.Millisecond)

		if rand.Intn(5) == 0 {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		mu.Lock()
		if releasedAt.IsZero() && time.Now().After(releaseAt) {
			releasedAt = time.Now().UTC()
			stamp := releasedAt.Format("2006-01-02T15:04:05+00:00")
			versions = append([]mockVersion{{
				ID: target, Type: "snapshot", URL: "https://example.com/" + target + ".json",
				Time: stamp, ReleaseTime: stamp,
			}}, versions...)
			slog.Info("version released", "id", target, "release_time", stamp)
		}
		body := map[string]any{
			"latest":   map[string]string{"release": "1.20.2", "snapshot": versions[0].ID},
			"versions": versions,
		}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
