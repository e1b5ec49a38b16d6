package radar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// InputSpec is one batch input: a file glob bound to the location its exports
// were collected from.
type InputSpec struct {
	Glob       string
	Location   Location
	ArchiveDir string
}

// BatchStats summarizes one batch run.
type BatchStats struct {
	FilesSeen     int
	FilesIngested int
	FilesSkipped  int
	FilesArchived int
	LeadsNew      int
}

// RunBatch ingests every file matched by the given inputs. Files whose
// (path, sha256) pair was already processed are skipped without re-parsing;
// new files are ingested, recorded, and optionally moved to the input's
// archive dir. A storage failure aborts the run; everything committed before
// it stays committed and a re-run picks up the rest.
func (p *Pipeline) RunBatch(inputs []InputSpec) (BatchStats, error) {
	stats := BatchStats{}
	items, err := expandInputs(inputs)
	if err != nil {
		return stats, err
	}
	for _, it := range items {
		stats.FilesSeen++
		p.debugf("batch ingest path=%q district=%q center=%q", it.Path, it.Location.District, it.Location.Center)
		if err := p.ingestExportFile(it, &stats); err != nil {
			return stats, err
		}
	}
	p.debugf("batch done: seen=%d ingested=%d skipped=%d archived=%d leadsNew=%d",
		stats.FilesSeen, stats.FilesIngested, stats.FilesSkipped, stats.FilesArchived, stats.LeadsNew)
	return stats, nil
}

// IngestFile ingests one export file outside of any configured batch, for
// one-shot CLI use.
func (p *Pipeline) IngestFile(filePath string, loc Location) (int, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return 0, err
	}
	return p.Ingest(string(content), loc)
}

type batchItem struct {
	Path       string
	Location   Location
	ArchiveDir string
}

func (p *Pipeline) ingestExportFile(it batchItem, stats *BatchStats) error {
	info, err := os.Stat(it.Path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Size() <= 0 {
		return nil
	}

	content, err := os.ReadFile(it.Path)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(content)
	sha := hex.EncodeToString(sum[:])

	already, err := p.store.isExportProcessed(it.Path, sha)
	if err != nil {
		return err
	}
	if already {
		p.debugf("skip already processed path=%q sha=%s", it.Path, sha)
		stats.FilesSkipped++
		return nil
	}

	newCount, err := p.Ingest(string(content), it.Location)
	if err != nil {
		return fmt.Errorf("ingest %q: %w", it.Path, err)
	}
	stats.FilesIngested++
	stats.LeadsNew += newCount

	pe := ProcessedExport{
		Path:        it.Path,
		SHA256:      sha,
		District:    it.Location.District,
		Center:      it.Location.Center,
		SizeBytes:   info.Size(),
		LeadsNew:    newCount,
		ProcessedAt: time.Now().UTC(),
	}
	if strings.TrimSpace(it.ArchiveDir) != "" {
		dst, err := MoveFileToDir(it.Path, it.ArchiveDir)
		if err != nil {
			return fmt.Errorf("archive %q: %w", it.Path, err)
		}
		pe.ArchivedTo = dst
		stats.FilesArchived++
	}
	if err := p.store.markExportProcessed(&pe); err != nil {
		return fmt.Errorf("mark processed %q: %w", it.Path, err)
	}
	return nil
}

func expandInputs(inputs []InputSpec) ([]batchItem, error) {
	seen := make(map[string]struct{})
	var out []batchItem
	for _, in := range inputs {
		if strings.TrimSpace(in.Glob) == "" {
			continue
		}
		matches, err := expandGlob(in.Glob)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, batchItem{Path: m, Location: in.Location, ArchiveDir: in.ArchiveDir})
		}
	}
	return out, nil
}

// expandGlob supports ** for recursive matches; filepath.Glob alone does not.
func expandGlob(pattern string) ([]string, error) {
	if !strings.Contains(pattern, "**") {
		return filepath.Glob(pattern)
	}

	idx := strings.Index(pattern, "**")
	base := strings.TrimRight(pattern[:idx], string(filepath.Separator)+"/")
	if base == "" {
		base = "."
	}
	base = filepath.Clean(base)

	suffix := strings.TrimLeft(pattern[idx+2:], string(filepath.Separator)+"/")
	if suffix == "" {
		suffix = "*"
	}
	suffixSlash := filepath.ToSlash(suffix)
	matchBasenameOnly := !strings.Contains(suffixSlash, "/")

	var matches []string
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimLeft(strings.TrimPrefix(filepath.ToSlash(p), filepath.ToSlash(base)), "/")
		candidate := rel
		if matchBasenameOnly {
			candidate = path.Base(rel)
		}
		ok, matchErr := path.Match(suffixSlash, candidate)
		if matchErr != nil {
			return matchErr
		}
		if ok {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
