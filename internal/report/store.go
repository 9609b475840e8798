package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CheckResult is the stored verdict of one check.
type CheckResult struct {
	Label    string
	Passed   bool
	Detail   string
	Duration time.Duration
	// Trace holds the per-step potential energies of a stability check;
	// empty for other check kinds.
	Trace []float64
}

// RunMetadata summarizes one suite run.
type RunMetadata struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Seed        int64     `json:"seed"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Total       int       `json:"total"`
}

// Store persists suite runs under a base directory, one subdirectory per
// run with metadata.json, checks.csv and a traces/ directory.
type Store struct {
	baseDir string
	log     *logrus.Entry
}

func New(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		log:     logrus.WithField("component", "report"),
	}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes a suite run and returns its run id.
func (s *Store) Save(temperature float64, seed int64, results []CheckResult) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(filepath.Join(runDir, "traces"), 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Temperature: temperature,
		Seed:        seed,
		Total:       len(results),
	}
	for _, r := range results {
		if r.Passed {
			meta.Passed++
		} else {
			meta.Failed++
		}
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := s.writeChecks(filepath.Join(runDir, "checks.csv"), results); err != nil {
		return "", err
	}

	for _, r := range results {
		if len(r.Trace) == 0 {
			continue
		}
		tracePath := filepath.Join(runDir, "traces", traceFile(r.Label))
		if err := writeTrace(tracePath, r.Trace); err != nil {
			return "", err
		}
	}

	s.log.WithFields(logrus.Fields{
		"run":    runID,
		"passed": meta.Passed,
		"failed": meta.Failed,
	}).Info("saved suite run")
	return runID, nil
}

// Load reads back the metadata of a stored run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List returns the metadata of every stored run, newest last.
func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []*RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			s.log.WithField("run", e.Name()).WithError(err).Warn("skipping unreadable run")
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// LoadResults reads back the per-check verdicts of a run.
func (s *Store) LoadResults(runID string) ([]CheckResult, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "checks.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	var results []CheckResult
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		ms, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad duration in %s row %d: %w", runID, i, err)
		}
		results = append(results, CheckResult{
			Label:    row[0],
			Passed:   row[1] == "pass",
			Duration: time.Duration(ms * float64(time.Millisecond)),
			Detail:   row[3],
		})
	}
	return results, nil
}

// LoadTrace reads back the stored potential trace of one check.
func (s *Store) LoadTrace(runID, label string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "traces", traceFile(label)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	var trace []float64
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, err
		}
		trace = append(trace, v)
	}
	return trace, nil
}

func (s *Store) writeChecks(path string, results []CheckResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"label", "status", "duration_ms", "detail"}); err != nil {
		return err
	}
	for _, r := range results {
		status := "fail"
		if r.Passed {
			status = "pass"
		}
		row := []string{
			r.Label,
			status,
			strconv.FormatFloat(float64(r.Duration)/float64(time.Millisecond), 'f', 3, 64),
			r.Detail,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrace(path string, trace []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "potential"}); err != nil {
		return err
	}
	for i, v := range trace {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(v, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func traceFile(label string) string {
	return strings.ReplaceAll(label, "/", "_") + ".csv"
}
