package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/documinds/internal/config"
	"github.com/kirillkom/documinds/internal/core/domain"
)

type serviceStub struct {
	mu       sync.Mutex
	category string
	classify []map[string]string
	feedback []map[string]string
	failWith int
}

func (s *serviceStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failWith != 0 {
			http.Error(w, "boom", s.failWith)
			return
		}
		switch r.URL.Path {
		case "/classify":
			s.classify = append(s.classify, body)
			_, _ = io.WriteString(w, `{"filename":"`+body["filename"]+`","predicted_category":"`+s.category+`"}`)
		case "/feedback":
			s.feedback = append(s.feedback, body)
			_, _ = io.WriteString(w, `{"message":"Feedback received"}`)
		default:
			http.NotFound(w, r)
		}
	})
}

func testConfig(url string) config.Config {
	return config.Config{
		LogLevel:             "error",
		ClassifierURL:        url,
		RetryMaxAttempts:     1,
		TextExcerptChars:     150,
		SortSourceDir:        "source_folder",
		SortTargetDir:        "sorted",
		SortFallbackCategory: "Unsorted",
	}
}

func run(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := NewRootCommand(testConfig("http://localhost:5000"))

	want := map[string]bool{"tui": false, "classify": false, "feedback": false, "sort": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected %s command to be registered", name)
		}
	}
	for _, flag := range []string{"url", "log-level", "timeout"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("expected persistent flag --%s", flag)
		}
	}
}

func TestClassifyCommandPrintsPrediction(t *testing.T) {
	stub := &serviceStub{category: "Finance"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	path := writeFile(t, t.TempDir(), "invoice.txt", "Total due: 42 EUR")
	out, err := run(t, testConfig(server.URL), "classify", path)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if strings.TrimSpace(out) != "Prediction: Finance" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(stub.classify) != 1 || stub.classify[0]["filename"] != "invoice.txt" || stub.classify[0]["text"] != "Total due: 42 EUR" {
		t.Fatalf("unexpected classify requests %+v", stub.classify)
	}
}

func TestURLFlagOverridesConfig(t *testing.T) {
	stub := &serviceStub{category: "Work"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	path := writeFile(t, t.TempDir(), "memo.txt", "meeting at noon")
	out, err := run(t, testConfig("http://127.0.0.1:1"), "--url", server.URL, "classify", path)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !strings.Contains(out, "Prediction: Work") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestClassifyCommandMissingFile(t *testing.T) {
	_, err := run(t, testConfig("http://127.0.0.1:1"), "classify", filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrFile) {
		t.Fatalf("expected file error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Failed to read file: ") {
		t.Fatalf("unexpected status %q", err.Error())
	}
}

func TestClassifyCommandServerError(t *testing.T) {
	stub := &serviceStub{failWith: http.StatusInternalServerError}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	path := writeFile(t, t.TempDir(), "a.txt", "hello")
	_, err := run(t, testConfig(server.URL), "classify", path)
	if !domain.IsKind(err, domain.ErrProtocol) {
		t.Fatalf("expected protocol error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Error: ") {
		t.Fatalf("unexpected status %q", err.Error())
	}
}

func TestFeedbackCommandSendsCorrection(t *testing.T) {
	stub := &serviceStub{category: "Finance"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	text := strings.Repeat("x", 200)
	path := writeFile(t, t.TempDir(), "report.txt", text)
	out, err := run(t, testConfig(server.URL), "feedback", path, "--correct", "Legal")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if !strings.Contains(out, "Prediction: Finance") || !strings.Contains(out, "Feedback sent!") {
		t.Fatalf("unexpected output %q", out)
	}
	if len(stub.feedback) != 1 {
		t.Fatalf("expected one feedback request, got %d", len(stub.feedback))
	}
	got := stub.feedback[0]
	if got["filename"] != "report.txt" || got["predicted_category"] != "Finance" || got["correct_category"] != "Legal" {
		t.Fatalf("unexpected feedback %+v", got)
	}
	if got["text_excerpt"] != text[:150] {
		t.Fatalf("unexpected excerpt length %d", len(got["text_excerpt"]))
	}
}

func TestFeedbackCommandDefaultsToPrediction(t *testing.T) {
	stub := &serviceStub{category: "Finance"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	path := writeFile(t, t.TempDir(), "report.txt", "numbers")
	if _, err := run(t, testConfig(server.URL), "feedback", path); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if len(stub.feedback) != 1 || stub.feedback[0]["correct_category"] != "Finance" {
		t.Fatalf("unexpected feedback %+v", stub.feedback)
	}
}

func TestSortCommandDryRunWritesYAMLReport(t *testing.T) {
	stub := &serviceStub{category: "Work"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, source, "notes.txt", "agenda")
	reportPath := filepath.Join(t.TempDir(), "report.yaml")

	out, err := run(t, testConfig(server.URL), "sort",
		"--source", source, "--target", target, "--dry-run", "--report", reportPath)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if !strings.Contains(out, "Would move notes.txt to Work") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(source, "notes.txt")); err != nil {
		t.Fatalf("dry run must leave the file in place: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report domain.SortReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.DryRun || len(report.Entries) != 1 || report.Entries[0].Outcome != domain.SortPlanned {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestSortCommandMovesFiles(t *testing.T) {
	stub := &serviceStub{category: "Work"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, source, "notes.txt", "agenda")

	out, err := run(t, testConfig(server.URL), "sort", "--source", source, "--target", target)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if !strings.Contains(out, "1 moved, 0 planned, 0 failed") {
		t.Fatalf("unexpected summary %q", out)
	}
	if _, err := os.Stat(filepath.Join(target, "Work", "notes.txt")); err != nil {
		t.Fatalf("expected moved file: %v", err)
	}
}

func TestSortCommandReportsFailures(t *testing.T) {
	stub := &serviceStub{failWith: http.StatusBadGateway}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	source := t.TempDir()
	writeFile(t, source, "notes.txt", "agenda")

	out, err := run(t, testConfig(server.URL), "sort", "--source", source, "--target", t.TempDir())
	if err == nil {
		t.Fatalf("expected error for failed documents")
	}
	if !strings.Contains(out, "Failed: notes.txt") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, statErr := os.Stat(filepath.Join(source, "notes.txt")); statErr != nil {
		t.Fatalf("failed file must stay in place: %v", statErr)
	}
}

func TestWriteReportRejectsUnknownExtension(t *testing.T) {
	err := writeReport(filepath.Join(t.TempDir(), "report.csv"), &domain.SortReport{})
	if err == nil || !strings.Contains(err.Error(), "unsupported report format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := &domain.SortReport{RunID: "run-1", Entries: []domain.SortEntry{{Filename: "a.txt", Category: "Work", Outcome: domain.SortMoved}}}
	if err := writeReport(path, report); err != nil {
		t.Fatalf("write report: %v", err)
	}
	data, _ := os.ReadFile(path)
	var decoded domain.SortReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Entries) != 1 {
		t.Fatalf("unexpected report %+v", decoded)
	}
}

func TestStatusErrorUnwraps(t *testing.T) {
	inner := domain.WrapError(domain.ErrNetwork, "classify", errors.New("refused"))
	err := &statusError{status: "Error: refused", err: inner}
	if err.Error() != "Error: refused" || !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("unexpected status error %v", err)
	}
}

func TestExecutePrintsStatusErrorOnce(t *testing.T) {
	stub := &serviceStub{failWith: http.StatusInternalServerError}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	path := writeFile(t, t.TempDir(), "a.txt", "hello")
	var stderr bytes.Buffer
	code := Execute(context.Background(), testConfig(server.URL), []string{"classify", path}, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	line := stderr.String()
	if !strings.HasPrefix(line, "Error: ") || strings.Contains(line, "Error: Error:") {
		t.Fatalf("unexpected error line %q", line)
	}
}

func TestExecutePrefixesPlainErrors(t *testing.T) {
	var stderr bytes.Buffer
	code := Execute(context.Background(), testConfig("http://127.0.0.1:1"), []string{"classify"}, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: accepts 1 arg") {
		t.Fatalf("unexpected error line %q", stderr.String())
	}
}

func TestFeedbackCommandIgnoresErrorStatus(t *testing.T) {
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.URL.Path == "/feedback" {
			http.Error(w, "storage full", http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `{"predicted_category":"Work"}`)
	}))
	defer server.Close()

	path := writeFile(t, t.TempDir(), "a.txt", "hello")
	out, err := run(t, testConfig(server.URL), "feedback", path, "--correct", "Private")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if !strings.Contains(out, "Feedback sent!") {
		t.Fatalf("unexpected output %q", out)
	}
}
