// seed_candidates.go loads candidate profiles from a JSON file and upserts
// them through the Scout API.
//
// Usage:
//
//	go run scripts/seed_candidates.go -file candidates.json -api http://localhost:8700 -token $SCOUT_ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

func main() {
	filePath := flag.String("file", "candidates.json", "path to a JSON array of candidates")
	apiURL := flag.String("api", "http://localhost:8700", "Scout API base URL")
	token := flag.String("token", os.Getenv("SCOUT_ADMIN_TOKEN"), "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print candidates without uploading")
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read %s: %v", *filePath, err)
	}

	// Records stay raw so fields the API does not know about pass through
	// to its validation untouched.
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("parse %s: %v", *filePath, err)
	}
	log.Printf("loaded %d candidates from %s", len(records), *filePath)

	client := &http.Client{Timeout: 10 * time.Second}
	var uploaded, skipped int
	for i, raw := range records {
		var head struct {
			ID   string `json:"candidate_id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &head); err != nil || strings.TrimSpace(head.ID) == "" {
			log.Printf("skip #%d: missing candidate_id", i)
			skipped++
			continue
		}

		if *dryRun {
			fmt.Printf("%s\t%s\n", head.ID, head.Name)
			continue
		}

		req, err := http.NewRequest(http.MethodPut, *apiURL+"/api/v1/candidates/"+url.PathEscape(head.ID), bytes.NewReader(raw))
		if err != nil {
			log.Printf("skip %q: %v", head.ID, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", "seed")
		if *token != "" {
			req.Header.Set("Authorization", "Bearer "+*token)
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", head.ID, err)
			skipped++
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			uploaded++
		} else {
			log.Printf("skip %q: status %d", head.ID, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d uploaded, %d skipped", uploaded, skipped)
}
