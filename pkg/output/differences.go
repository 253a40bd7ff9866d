package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mdewilde/treecomp/pkg/models"
	"github.com/mdewilde/treecomp/pkg/storage"
)

// maxDiffFileSize bounds how large a distinct file may be before the
// report skips its line-level diff
const maxDiffFileSize = 4 * 1024 * 1024

// ReportOptions controls the differences report
type ReportOptions struct {
	// Format is "human" or "json"
	Format string
	// WithDiffs includes a line-level patch for each distinct pair
	WithDiffs bool
}

// WriteDifferencesReport writes a report of every difference to a file.
// When WithDiffs is set, distinct pairs additionally carry a patch
// computed from both files' contents.
func WriteDifferencesReport(ctx context.Context, result *models.ComparisonResult, left, right storage.Backend, path string, opts ReportOptions) error {
	if result.TotalDifferences() == 0 {
		// No differences - don't create an empty file
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create differences file: %w", err)
	}
	defer file.Close()

	patches := map[string]string{}
	if opts.WithDiffs {
		patches, err = buildPatches(ctx, result, left, right)
		if err != nil {
			return err
		}
	}

	switch opts.Format {
	case "json":
		return writeDifferencesJSON(result, patches, file)
	default:
		return writeDifferencesHuman(result, patches, file)
	}
}

// buildPatches produces a textual patch per distinct file pair
func buildPatches(ctx context.Context, result *models.ComparisonResult, left, right storage.Backend) (map[string]string, error) {
	dmp := diffmatchpatch.New()
	patches := make(map[string]string, len(result.Distinct))

	for _, pair := range result.Distinct {
		if pair.Kind != models.KindFile {
			continue
		}

		leftText, ok, err := readForDiff(ctx, left, pair.RelativePath, pair.LeftPath)
		if err != nil {
			return nil, err
		}
		if !ok {
			patches[pair.RelativePath] = "(file too large for line diff)"
			continue
		}
		rightText, ok, err := readForDiff(ctx, right, pair.RightRelative(), pair.RightPath)
		if err != nil {
			return nil, err
		}
		if !ok {
			patches[pair.RelativePath] = "(file too large for line diff)"
			continue
		}

		diffs := dmp.DiffMain(leftText, rightText, true)
		dmp.DiffCleanupSemantic(diffs)
		patches[pair.RelativePath] = dmp.PatchToText(dmp.PatchMake(leftText, diffs))
	}

	return patches, nil
}

// readForDiff loads one side's content using that side's own relative
// path, which differs from the pair's display path when the match
// crossed names.
func readForDiff(ctx context.Context, backend storage.Backend, relPath, absPath string) (string, bool, error) {
	info, err := backend.Stat(ctx, relPath)
	if err != nil {
		return "", false, fmt.Errorf("failed to stat %s: %w", absPath, err)
	}
	if info.Size > maxDiffFileSize {
		return "", false, nil
	}

	rc, err := backend.Read(ctx, relPath)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	return string(data), true, nil
}

func writeDifferencesHuman(result *models.ComparisonResult, patches map[string]string, w io.Writer) error {
	fmt.Fprintf(w, "Differences Report\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Left:  %s\n", result.LeftRoot)
	fmt.Fprintf(w, "Right: %s\n\n", result.RightRoot)
	fmt.Fprintf(w, "Total Differences: %d\n\n", result.TotalDifferences())

	sections := []struct {
		label string
		pairs []models.FilePair
	}{
		{"Distinct Content", result.Distinct},
		{"Only in Left", result.LeftOnly},
		{"Only in Right", result.RightOnly},
	}

	for _, section := range sections {
		if len(section.pairs) == 0 {
			continue
		}

		label := fmt.Sprintf("%s (%d)", section.label, len(section.pairs))
		fmt.Fprintf(w, "%s\n", label)
		for i := 0; i < len(label); i++ {
			fmt.Fprint(w, "-")
		}
		fmt.Fprintf(w, "\n")

		for _, pair := range section.pairs {
			fmt.Fprintf(w, "  %s\n", pair.RelativePath)
			if patch, ok := patches[pair.RelativePath]; ok && patch != "" {
				fmt.Fprintf(w, "%s\n", patch)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

func writeDifferencesJSON(result *models.ComparisonResult, patches map[string]string, w io.Writer) error {
	type diffEntry struct {
		Path   string `json:"path"`
		Reason string `json:"reason"`
		Patch  string `json:"patch,omitempty"`
	}

	entries := make([]diffEntry, 0, result.TotalDifferences())
	for _, pair := range result.Distinct {
		entries = append(entries, diffEntry{Path: pair.RelativePath, Reason: "distinct", Patch: patches[pair.RelativePath]})
	}
	for _, pair := range result.LeftOnly {
		entries = append(entries, diffEntry{Path: pair.RelativePath, Reason: "left_only"})
	}
	for _, pair := range result.RightOnly {
		entries = append(entries, diffEntry{Path: pair.RelativePath, Reason: "right_only"})
	}

	doc := struct {
		Generated   string      `json:"generated"`
		LeftRoot    string      `json:"left_root"`
		RightRoot   string      `json:"right_root"`
		TotalCount  int         `json:"total_count"`
		Differences []diffEntry `json:"differences"`
	}{
		Generated:   time.Now().Format(time.RFC3339),
		LeftRoot:    result.LeftRoot,
		RightRoot:   result.RightRoot,
		TotalCount:  result.TotalDifferences(),
		Differences: entries,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
