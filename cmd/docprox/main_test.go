package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docprox/internal/report"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRun_WritesReport(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "gazette.txt", "a fire broke out and the ship burned near the harbour")
	missing := filepath.Join(dir, "missing.txt")
	query := writeFile(t, dir, "q.yml", "preprocess: normalize\ntargets: [ship]\nkeywords: [fire, harbour]\n")
	corpus := writeFile(t, dir, "corpus.txt", "# corpus\n"+doc+"\n\n"+missing+"\n")
	out := filepath.Join(dir, "out.json")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-query", query, "-corpus", corpus, "-out", out, "-format", "json"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var rep struct {
		Results []struct {
			Keyword string `json:"keyword"`
			Matches []struct {
				Distance int `json:"distance"`
			} `json:"matches"`
		} `json:"results"`
		Failures []struct {
			Source string `json:"source"`
		} `json:"failures"`
	}
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, data)
	}
	if len(rep.Results) != 2 {
		t.Fatalf("expected 2 keyword groups, got %d", len(rep.Results))
	}
	if rep.Results[0].Keyword != "fire" || rep.Results[0].Matches[0].Distance != 5 {
		t.Errorf("unexpected fire group %+v", rep.Results[0])
	}
	if rep.Results[1].Keyword != "harbour" || rep.Results[1].Matches[0].Distance != 4 {
		t.Errorf("unexpected harbour group %+v", rep.Results[1])
	}
	if len(rep.Failures) != 1 {
		t.Errorf("expected the missing document to be reported, got %+v", rep.Failures)
	}
	if !strings.Contains(stderr.String(), "some documents failed") {
		t.Errorf("expected failure warning on stderr, got %q", stderr.String())
	}
}

func TestRun_YAMLToStdout(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "a.txt", "ship fire")
	query := writeFile(t, dir, "q.yml", "preprocess: normalize\nexcerpts: false\ntargets: [ship]\nkeywords: [fire]\n")
	corpus := writeFile(t, dir, "corpus.txt", doc+"\n")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-query", query, "-corpus", corpus}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	got := stdout.String()
	if !strings.Contains(got, "keyword: fire") || !strings.Contains(got, "distance: 1") {
		t.Errorf("unexpected yaml output:\n%s", got)
	}
	if strings.Contains(got, "excerpt") {
		t.Errorf("expected excerpts to be suppressed:\n%s", got)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "q.yml", "preprocess: normalize\ntargets: [ship]\nkeywords: [fire]\n")
	bad := writeFile(t, dir, "bad.yml", "targets: [ship]\nkeywords: [fire]\n")
	corpus := writeFile(t, dir, "corpus.txt", "")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing flags", []string{}, 2},
		{"bad format", []string{"-query", good, "-corpus", corpus, "-format", "xml"}, 2},
		{"missing strategy", []string{"-query", bad, "-corpus", corpus}, 1},
		{"missing corpus file", []string{"-query", good, "-corpus", filepath.Join(dir, "nope.txt")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("expected exit %d, got %d: %s", tt.want, got, stderr.String())
			}
		})
	}
}

func TestRun_OutputErrors(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "a.txt", "ship fire")
	query := writeFile(t, dir, "q.yml", "preprocess: normalize\ntargets: [ship]\nkeywords: [fire]\n")
	corpus := writeFile(t, dir, "corpus.txt", doc+"\n")

	outs := map[string]string{
		"missing directory": filepath.Join(dir, "nope", "out.yml"),
	}
	if _, err := os.Stat("/dev/full"); err == nil {
		outs["device full"] = "/dev/full"
	}
	for name, out := range outs {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run([]string{"-query", query, "-corpus", corpus, "-out", out}, &stdout, &stderr); code != 1 {
				t.Errorf("expected exit 1, got %d", code)
			}
			if !strings.Contains(stderr.String(), "write output") {
				t.Errorf("expected write failure on stderr, got %q", stderr.String())
			}
		})
	}
}

func TestWriteReport_ClosesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	rep := &report.Report{Results: []report.KeywordResult{}}
	if err := writeReport(out, nil, rep, report.FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"results": []`) {
		t.Errorf("unexpected report file:\n%s", data)
	}
}
