// Standalone mock manifest server for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver -target 24w05a -release-after 30s
//
// Then in another terminal:
//
//	go run ./cmd/snapwatch -t 24w05a -i 5 -s -v -u http://localhost:9999/mc/game/version_manifest.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/jpalmerr/snapwatch"
)

type entry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

func main() {
	var (
		addr         = flag.String("addr", ":9999", "listen address")
		target       = flag.String("target", snapwatch.SnapshotCode(time.Now()), "version to release")
		releaseAfter = flag.Duration("release-after", 30*time.Second, "delay before the target is listed")
		failEvery    = flag.Int("fail-every", 0, "answer every Nth request with a 503 (0 disables)")
	)
	flag.Parse()

	fmt.Printf("Mock manifest server starting on %s\n", *addr)
	fmt.Printf("%s will be listed after %s\n", *target, *releaseAfter)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	var (
		mu       sync.Mutex
		requests int
		released bool
		versions = []entry{
			{ID: "1.20.2", Type: "release", URL: "https://example.com/1.20.2.json",
				Time: "2023-09-20T09:02:57+00:00", ReleaseTime: "2023-09-20T09:02:57+00:00"},
		}
	)
	releaseAt := time.Now().Add(*releaseAfter)

	http.HandleFunc("/mc/game/version_manifest.json", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		if *failEvery > 0 && requests%*failEvery == 0 {
			mu.Unlock()
			slog.Info("failing request", "n", requests)
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		if !released && time.Now().After(releaseAt) {
			released = true
			stamp := time.Now().UTC().Format("2006-01-02T15:04:05+00:00")
			versions = append([]entry{{
				ID: *target, Type: "snapshot", URL: "https://example.com/" + *target + ".json",
				Time: stamp, ReleaseTime: stamp,
			}}, versions...)
			slog.Info("version released", "id", *target, "release_time", stamp)
		}
		body := map[string]any{
			"latest":   map[string]string{"release": "1.20.2", "snapshot": versions[0].ID},
			"versions": versions,
		}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})

	if err := http.ListenAndServe(*addr, nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
