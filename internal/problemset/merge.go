package problemset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// Merge combines two problem sets. Items from the incoming set whose ids are
// not already present are appended; existing items win. Metadata tags are
// unioned, the version becomes the higher of the two, and the merge
// timestamp replaces createdAt when anything changed.
func Merge(original, incoming *ProblemSet) *ProblemSet {
	existing := make(map[string]bool, len(original.Items))
	for i := range original.Items {
		existing[original.Items[i].ID] = true
	}

	var newItems []Item
	for i := range incoming.Items {
		if !existing[incoming.Items[i].ID] {
			newItems = append(newItems, incoming.Items[i])
		}
	}

	if len(newItems) == 0 {
		return original
	}

	merged := *original
	merged.Items = append(append([]Item{}, original.Items...), newItems...)
	merged.Metadata.Tags = unionTags(original.Metadata.Tags, incoming.Metadata.Tags)
	merged.Version = higherVersion(original.Version, incoming.Version)
	merged.Metadata.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return &merged
}

// MergeAll folds a list of sets left to right. Returns nil for empty input.
func MergeAll(sets []*ProblemSet) *ProblemSet {
	if len(sets) == 0 {
		return nil
	}
	merged := sets[0]
	for _, s := range sets[1:] {
		merged = Merge(merged, s)
	}
	return merged
}

// LoadDir loads every *.json bank file in dir and merges them. Files that
// fail to parse are skipped with a note; the caller gets whatever content
// survived. Returns nil when no usable bank was found.
func LoadDir(dir string) (*ProblemSet, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("read bank dir: %w", err)}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var sets []*ProblemSet
	var errs []error
	for _, name := range names {
		ps, err := Load(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if issues := Validate(ps); HasErrors(issues) {
			errs = append(errs, fmt.Errorf("%s: %d structural errors, skipped", name, countErrors(issues)))
			continue
		}
		sets = append(sets, ps)
	}

	return MergeAll(sets), errs
}

func countErrors(issues []Issue) int {
	n := 0
	for _, i := range issues {
		if i.Severity == "error" {
			n++
		}
	}
	return n
}

func unionTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, t := range append(append([]string{}, a...), b...) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// higherVersion compares bank versions as semver ("1.2.0" style, without
// the v prefix) and returns the higher. Unparseable versions lose to
// parseable ones; two unparseable versions keep the original.
func higherVersion(a, b string) string {
	ca, cb := "v"+a, "v"+b
	va, vb := semver.IsValid(ca), semver.IsValid(cb)
	switch {
	case va && vb:
		if semver.Compare(cb, ca) > 0 {
			return b
		}
		return a
	case vb:
		return b
	default:
		return a
	}
}
