package hermes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestSubjects(t *testing.T) {
	if got := SubjectMatchCompleted("abc"); got != "talent.match.abc.completed" {
		t.Errorf("unexpected subject %q", got)
	}
	if got := SubjectMatchFailed("abc"); got != "talent.match.abc.failed" {
		t.Errorf("unexpected subject %q", got)
	}
	if len(StreamSubjects) != 1 || StreamSubjects[0] != "talent.match.>" {
		t.Errorf("stream must capture every match subject: %v", StreamSubjects)
	}
	if _, err := time.ParseDuration(StreamMaxAge); err != nil {
		t.Errorf("invalid stream max age: %v", err)
	}
}

func TestMatchCompletedEventJSON(t *testing.T) {
	id := int64(42)
	ev := MatchCompletedEvent{
		RunID:            "r1",
		Scope:            "corporate",
		CorporateID:      &id,
		TierDistribution: map[string]int{"STRONG_FIT": 1},
		TopCandidateID:   &id,
		TopScore:         81.5,
	}
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"run_id", "scope", "corporate_id", "tier_distribution", "top_candidate_id", "top_score"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in %s", key, b)
		}
	}
	if _, ok := m["group_id"]; ok {
		t.Error("nil group_id should be omitted")
	}
}

func TestCloseWaitsForConnection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	// Nothing listens on port 1, so the client stays in its reconnect loop.
	c, err := NewNATSClient(ctx, "nats://127.0.0.1:1", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	c.closeWait = 2 * time.Second

	start := time.Now()
	c.Close()
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("close took %s", elapsed)
	}
	if !c.conn.IsClosed() {
		t.Error("connection should be closed when Close returns")
	}
}
