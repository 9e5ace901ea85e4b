// Package results holds simulation results and the operations the CLI runs on them.
package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spigell/twin-sim/internal/twin"
)

const (
	CandidateIDField = "CandidateID"
	RoleIDField      = "RoleID"
)

type Results struct {
	Items []*twin.Result `json:"results"`
}

func New(items []*twin.Result) *Results {
	return &Results{Items: items}
}

func (r *Results) Len() int {
	return len(r.Items)
}

// ToFile writes the results as indented JSON, creating missing directories.
func (r *Results) ToFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	return r.writeAndClose(file)
}

func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "results_*.json")
	if err != nil {
		return "", err
	}

	if err := r.writeAndClose(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// writeAndClose encodes the results and reports a failed close when encoding succeeded.
func (r *Results) writeAndClose(w io.WriteCloser) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	return r.encode(w)
}

func (r *Results) encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	items := r.Items
	if items == nil {
		items = []*twin.Result{}
	}
	return enc.Encode(&Results{Items: items})
}

// FromFile reads results previously written by ToFile.
func FromFile(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Results
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WriteTable prints one line per result.
func (r *Results) WriteTable(w io.Writer) error {
	for _, res := range r.Items {
		if _, err := fmt.Fprintf(w, "%-20s | %-25s | Score: %v\n", res.CandidateName, res.RoleName, res.Score); err != nil {
			return err
		}
	}
	return nil
}

// ReportByRole groups results by role, best scores first.
func (r *Results) ReportByRole() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	grouped := make(map[string][]*twin.Result)
	keys := make([]string, 0)

	for _, res := range r.Items {
		key := fmt.Sprintf("%s (%s)", res.RoleName, res.RoleID)
		if _, ok := grouped[key]; !ok {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], res)
	}

	for _, key := range keys {
		items := grouped[key]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Score > items[j].Score
		})
		for _, res := range items {
			report[key] = append(report[key], map[string]string{
				"candidate_id":   res.CandidateID,
				"candidate_name": res.CandidateName,
				"score":          fmt.Sprintf("%.2f", res.Score),
			})
		}
	}

	return report
}

// Best returns the highest scoring result of every candidate, in first-seen order.
// Ties keep the earlier role.
func (r *Results) Best() *Results {
	best := make(map[string]*twin.Result)
	order := make([]string, 0)

	for _, res := range r.Items {
		current, ok := best[res.CandidateID]
		if !ok {
			order = append(order, res.CandidateID)
		}
		if !ok || res.Score > current.Score {
			best[res.CandidateID] = res
		}
	}

	items := make([]*twin.Result, 0, len(order))
	for _, id := range order {
		items = append(items, best[id])
	}
	return New(items)
}

func getStringField(res *twin.Result, name string) string {
	switch name {
	case CandidateIDField:
		return res.CandidateID
	case RoleIDField:
		return res.RoleID
	default:
		return ""
	}
}

// Exclude removes results whose field matches any of the targets and returns
// the "candidate/role" keys of removed results. Order is preserved.
func (r *Results) Exclude(name string, targets []string) []string {
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}

	return r.removeIf(func(res *twin.Result) bool {
		_, ok := set[getStringField(res, name)]
		return ok
	})
}

// KeepRoles removes every result whose role is not listed.
func (r *Results) KeepRoles(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return r.removeIf(func(res *twin.Result) bool {
		_, ok := set[res.RoleID]
		return !ok
	})
}

// BelowScore removes results scoring under the threshold.
func (r *Results) BelowScore(threshold float64) []string {
	return r.removeIf(func(res *twin.Result) bool {
		return res.Score < threshold
	})
}

func (r *Results) removeIf(drop func(*twin.Result) bool) []string {
	var removed []string
	kept := r.Items[:0]
	for _, res := range r.Items {
		if drop(res) {
			removed = append(removed, res.CandidateID+"/"+res.RoleID)
			continue
		}
		kept = append(kept, res)
	}
	r.Items = kept
	return removed
}
