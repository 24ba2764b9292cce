// seed_candidates.go — standalone script that loads candidate profiles from a
// CSV export and scores them against a requirement via the preview endpoint.
//
// Usage:
//
//	go run scripts/seed_candidates.go -csv candidates.csv -requirement role.json -api http://localhost:8700
//
// CSV header (any order, extra columns ignored):
//
//	registration_id,full_name,personality_style,total_score,best_score,sincerity_index,sincerity_class,attempt_count,group_name
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Fitment/internal/matching"
	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

type previewRequest struct {
	Requirement   scoring.JobRequirement    `json:"requirement"`
	Candidates    []*store.CandidateProfile `json:"candidates"`
	TopN          int                       `json:"top_n"`
	MinScore      float64                   `json:"min_score"`
	IncludeCohort bool                      `json:"include_cohort"`
}

func main() {
	csvPath := flag.String("csv", "candidates.csv", "path to candidate CSV")
	reqPath := flag.String("requirement", "", "path to requirement JSON (defaults apply when empty)")
	apiURL := flag.String("api", "http://localhost:8700", "Fitment API base URL")
	token := flag.String("token", os.Getenv("FITMENT_ADMIN_TOKEN"), "admin bearer token")
	topN := flag.Int("top", 10, "number of candidates to return")
	minScore := flag.Float64("min-score", 0, "drop candidates below this composite")
	dryRun := flag.Bool("dry-run", false, "print parsed candidates without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	candidates, err := parseCandidates(f)
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}
	log.Printf("parsed %d candidates from %s", len(candidates), *csvPath)

	var req scoring.JobRequirement
	if *reqPath != "" {
		data, err := os.ReadFile(*reqPath)
		if err != nil {
			log.Fatalf("read requirement: %v", err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			log.Fatalf("parse requirement: %v", err)
		}
	}

	if *dryRun {
		for i, c := range candidates {
			fmt.Printf("[%d] #%d %s (style=%s, agile=%g, sincerity=%s)\n",
				i+1, c.RegistrationID, c.FullName, c.PersonalityStyle, c.AgileScore(), c.SincerityClass)
		}
		return
	}

	body, err := json.Marshal(previewRequest{
		Requirement:   req,
		Candidates:    candidates,
		TopN:          *topN,
		MinScore:      *minScore,
		IncludeCohort: true,
	})
	if err != nil {
		log.Fatalf("encode request: %v", err)
	}

	httpReq, err := http.NewRequest("POST", *apiURL+"/api/v1/match/preview", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Client-ID", "seed-script")
	if *token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+*token)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		log.Fatalf("post preview: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		log.Fatalf("preview failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var res matching.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		log.Fatalf("decode response: %v", err)
	}

	fmt.Printf("%s: %d evaluated, %d scored, %d matched (%dms)\n",
		res.RoleTitle, res.Evaluated, res.Scored, len(res.Matched), res.ExecutionTimeMs)
	for i, sc := range res.Matched {
		fmt.Printf("%2d. %-28s %6.1f  %-14s p%-3d risk=%s\n",
			i+1, sc.Candidate.FullName, sc.CompositeScore, sc.Tier, sc.ConfidenceLevel, sc.RetentionRisk)
	}
	if res.Cohort != nil {
		for _, gap := range res.Cohort.Gaps {
			fmt.Printf("gap: %s\n", gap)
		}
	}
}

func parseCandidates(r io.Reader) ([]*store.CandidateProfile, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["registration_id"]; !ok {
		return nil, fmt.Errorf("missing registration_id column")
	}

	var out []*store.CandidateProfile
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}

		id, err := strconv.ParseInt(get("registration_id"), 10, 64)
		if err != nil {
			log.Printf("skip line %d: bad registration_id %q", line, get("registration_id"))
			continue
		}
		c := &store.CandidateProfile{
			RegistrationID:   id,
			FullName:         get("full_name"),
			PersonalityStyle: get("personality_style"),
			TotalScore:       optFloat(get("total_score")),
			BestScore:        optFloat(get("best_score")),
			SincerityIndex:   optFloat(get("sincerity_index")),
			SincerityClass:   store.SincerityClass(strings.ToUpper(get("sincerity_class"))),
			GroupName:        get("group_name"),
		}
		if n, err := strconv.Atoi(get("attempt_count")); err == nil {
			c.AttemptCount = n
		}
		out = append(out, c)
	}
	return out, nil
}

func optFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
