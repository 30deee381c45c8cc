package rename

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestTextReporter_Decisions(t *testing.T) {
	tests := []struct {
		name   string
		dryRun bool
		d      Decision
		want   string
	}{
		{
			name: "rename",
			d:    Decision{Name: "a b.png", NewName: "a_b.png", Action: ActionRename},
			want: "  Renamed: 'a b.png' -> 'a_b.png'\n",
		},
		{
			name:   "dry run rename",
			dryRun: true,
			d:      Decision{Name: "a b.png", NewName: "a_b.png", Action: ActionRename},
			want:   "  Would rename: 'a b.png' -> 'a_b.png'\n",
		},
		{
			name: "conflict",
			d:    Decision{Name: "a.b.png", NewName: "a_b.png", Reason: ReasonConflict},
			want: "  Skipped renaming 'a.b.png': Target 'a_b.png' already exists.\n",
		},
		{
			name: "failure",
			d:    Decision{Name: "a.b.png", NewName: "a_b.png", Reason: ReasonFailed, Error: "permission denied"},
			want: "  Error renaming 'a.b.png': permission denied\n",
		},
		{
			name: "quiet skips",
			d:    Decision{Name: "notes.txt", Reason: ReasonNotPNG},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewTextReporter(&buf, tt.dryRun).Decision(tt.d)
			if buf.String() != tt.want {
				t.Errorf("Decision() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTextReporter_DryRunSummary(t *testing.T) {
	var buf bytes.Buffer
	err := NewTextReporter(&buf, true).Summary(&Summary{Renamed: 3, Skipped: 1, DryRun: true})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "--- Renaming Summary (dry run) ---") {
		t.Errorf("missing dry-run header: %q", out)
	}
	if !strings.Contains(out, "Would rename: 3 files") {
		t.Errorf("missing planned count: %q", out)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextReporter_SummaryWriteError(t *testing.T) {
	if err := NewTextReporter(failWriter{}, false).Summary(&Summary{}); err == nil {
		t.Error("Summary() should surface write errors")
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatJSON, false)

	r.Start("cards")
	r.Found(2)
	r.Decision(Decision{Name: "a b.png", NewName: "a_b.png", Action: ActionRename})
	r.Decision(Decision{Name: "notes.txt", Reason: ReasonNotPNG})
	if err := r.Summary(&Summary{Total: 2, Renamed: 1, Skipped: 1}); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	var got struct {
		Dir       string `json:"dir"`
		Total     int    `json:"total"`
		Renamed   int    `json:"renamed"`
		Skipped   int    `json:"skipped"`
		Errors    int    `json:"errors"`
		Decisions []struct {
			Name    string `json:"name"`
			NewName string `json:"new_name"`
			Action  string `json:"action"`
			Reason  string `json:"reason"`
		} `json:"decisions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if got.Dir != "cards" || got.Total != 2 || got.Renamed != 1 || got.Skipped != 1 {
		t.Errorf("unexpected summary: %+v", got)
	}
	if len(got.Decisions) != 2 {
		t.Fatalf("decisions = %d, want 2", len(got.Decisions))
	}
	if got.Decisions[0].Action != "rename" || got.Decisions[0].NewName != "a_b.png" {
		t.Errorf("decision[0] = %+v", got.Decisions[0])
	}
	if got.Decisions[1].Action != "skip" || got.Decisions[1].Reason != "not-png" {
		t.Errorf("decision[1] = %+v", got.Decisions[1])
	}
}

func TestNewReporter_DefaultsToText(t *testing.T) {
	if _, ok := NewReporter(&bytes.Buffer{}, Format("xml"), false).(*TextReporter); !ok {
		t.Error("unknown format should fall back to text")
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "json"} {
		got, err := ParseFormat(in)
		if err != nil || string(got) != in {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "JSON", "yaml"} {
		if _, err := ParseFormat(in); err == nil {
			t.Errorf("ParseFormat(%q) should fail", in)
		}
	}
}
