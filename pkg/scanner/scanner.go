// Package scanner walks a source tree, applies the exclusion rules, checks
// every covered file for a compliant header, and repairs violations in fix
// mode.
//
// Enumeration is sequential and lexical for reproducible output; per-file
// work runs on a bounded worker pool. Per-file errors never abort the walk:
// the tool processes everything it can and reports at the end.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/headerguard/headerguard/pkg/config"
	"github.com/headerguard/headerguard/pkg/errors"
	"github.com/headerguard/headerguard/pkg/header"
	"github.com/headerguard/headerguard/pkg/logging"
)

// Options control a single run.
type Options struct {
	// Root is the directory to walk.
	Root string
	// Fix repairs violating files instead of only reporting them.
	Fix bool
	// Diff populates Result.Diff for violating files (check mode only).
	Diff bool
	// IncludeExcluded emits a result for files exempted by the rules.
	IncludeExcluded bool
}

// Scanner checks a tree against one loaded configuration.
type Scanner struct {
	cfg      *config.Config
	renderer *header.Renderer
	logger   zerolog.Logger
}

// New builds a scanner from a validated config. Placeholder substitution
// happens here, once: an unbound placeholder is a configuration error and
// no file is touched.
func New(cfg *config.Config) (*Scanner, error) {
	renderer, err := header.NewRenderer(cfg.Template, cfg.Properties, cfg.Registry)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		cfg:      cfg,
		renderer: renderer,
		logger:   logging.GetLogger("scanner"),
	}, nil
}

// Run walks the tree and returns the aggregated report. The context stops
// enqueuing of new files when cancelled; in-flight files finish and the
// remainder is reported as interrupted.
func (s *Scanner) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{}
	var mu sync.Mutex
	record := func(res Result) {
		mu.Lock()
		report.Results = append(report.Results, res)
		mu.Unlock()
	}

	candidates, err := s.enumerate(opts, record)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("candidates", len(candidates)).
		Int("workers", s.cfg.WorkerCount()).
		Bool("fix", opts.Fix).
		Msg("Starting scan")

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.WorkerCount())

	for _, relPath := range candidates {
		if ctx.Err() != nil {
			report.Interrupted = true
			record(Result{Path: relPath, Status: StatusInterrupted})
			continue
		}
		relPath := relPath
		g.Go(func() error {
			record(s.processFile(relPath, opts))
			return nil
		})
	}
	// workers never return errors; per-file failures are results
	_ = g.Wait()

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Path < report.Results[j].Path
	})

	counts := report.Counts()
	s.logger.Info().
		Int("compliant", counts[StatusCompliant]).
		Int("violating", counts[StatusViolating]).
		Int("fixed", counts[StatusFixed]).
		Int("errors", counts[StatusError]).
		Bool("interrupted", report.Interrupted).
		Msg("Scan complete")

	return report, nil
}

// enumerate walks the tree in lexical order and applies the rules,
// recording excluded files immediately and returning the covered ones.
func (s *Scanner) enumerate(opts Options, record func(Result)) ([]string, error) {
	if _, err := os.Stat(opts.Root); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access scan root %s", opts.Root)
	}

	var candidates []string
	walkErr := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entry: record and keep walking
			rel := s.relPath(opts.Root, path)
			record(Result{
				Path:   rel,
				Status: StatusError,
				Err:    errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", rel),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel := s.relPath(opts.Root, path)
		if s.isOwnFile(rel, path) {
			return nil
		}
		if !s.cfg.Ruleset.Covers(rel) {
			if opts.IncludeExcluded {
				record(Result{Path: rel, Status: StatusExcluded})
			}
			return nil
		}
		candidates = append(candidates, rel)
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrap(walkErr, errors.ErrFileAccess, "tree walk failed")
	}
	return candidates, nil
}

// processFile takes one covered file through detection and, in fix mode,
// repair. Failures become per-file error results, never run aborts.
func (s *Scanner) processFile(relPath string, opts Options) Result {
	fullPath := filepath.Join(opts.Root, filepath.FromSlash(relPath))

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return Result{
			Path:   relPath,
			Status: StatusError,
			Err:    errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", relPath),
		}
	}

	rendered, err := s.renderer.ForFile(relPath)
	if err != nil {
		// unknown comment style: report as unverifiable
		return Result{Path: relPath, Status: StatusError, Err: err}
	}

	if header.IsCompliant(content, rendered) {
		return Result{Path: relPath, Status: StatusCompliant}
	}

	style, _ := s.cfg.Registry.Lookup(relPath)

	if !opts.Fix {
		res := Result{Path: relPath, Status: StatusViolating}
		if opts.Diff {
			fixed := header.BuildFixed(content, rendered, style)
			res.Diff = renderDiff(string(content), string(fixed))
		}
		return res
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return Result{
			Path:   relPath,
			Status: StatusError,
			Err:    errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", relPath),
		}
	}

	fixed := header.BuildFixed(content, rendered, style)
	if err := writeFileAtomic(fullPath, fixed, info.Mode().Perm()); err != nil {
		return Result{
			Path:   relPath,
			Status: StatusError,
			Err:    errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", relPath),
		}
	}

	s.logger.Debug().Str("file", relPath).Msg("Header fixed")
	return Result{Path: relPath, Status: StatusFixed}
}

// isOwnFile exempts the scanner's own inputs: config file names by exact
// relative path, and the header template by resolved absolute path so a
// root-level file merely sharing the template's name is still scanned.
func (s *Scanner) isOwnFile(relPath, fullPath string) bool {
	for _, name := range config.DefaultFileNames {
		if relPath == name {
			return true
		}
	}
	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return false
	}
	return abs == s.cfg.TemplatePath
}

func (s *Scanner) relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "./")
}

// renderDiff produces a plain unified-ish preview of the repair using
// diffmatchpatch, with +/- line prefixes rather than terminal colors so
// the output survives CI logs.
func renderDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var b strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
