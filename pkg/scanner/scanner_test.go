// Test Type: Integration Test
// Description: Tests for the scanner - walking, matching, detection, fix mode

package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/headerguard/headerguard/pkg/config"
	"github.com/headerguard/headerguard/pkg/errors"
	"github.com/headerguard/headerguard/pkg/scanner"
	"github.com/headerguard/headerguard/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTree builds a scan root with a config, a template, and the given
// files, and returns the root plus the loaded config.
func setupTree(t *testing.T, configBody string, files map[string]string) (string, *config.Config) {
	t.Helper()
	root := t.TempDir()

	testutil.WriteTree(t, root, map[string]string{
		"LICENSE_HEADER.txt": "Copyright {inceptionYear} {copyrightOwner}",
		".headerguard.toml":  configBody,
	})
	testutil.WriteTree(t, root, files)

	cfg, err := config.Load("", root, nil)
	require.NoError(t, err)
	return root, cfg
}

const baseConfig = `
headerPath = "LICENSE_HEADER.txt"
excludes = ["**/*.lock"]

[properties]
copyrightOwner = "Acme"
inceptionYear = "2022"
`

func statusOf(report *scanner.Report, path string) scanner.Status {
	for _, res := range report.Results {
		if res.Path == path {
			return res.Status
		}
	}
	return ""
}

func TestRunCheckMode(t *testing.T) {
	root, cfg := setupTree(t, baseConfig, map[string]string{
		"good.go":    "// Copyright 2022 Acme\n\npackage main\n",
		"bad.go":     "package main\n",
		"Cargo.lock": "locked\n",
	})

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, scanner.StatusCompliant, statusOf(report, "good.go"))
	assert.Equal(t, scanner.StatusViolating, statusOf(report, "bad.go"))
	assert.Equal(t, scanner.Status(""), statusOf(report, "Cargo.lock"))
	assert.True(t, report.Failed())

	// tool's own inputs are exempt
	assert.Equal(t, scanner.Status(""), statusOf(report, ".headerguard.toml"))
	assert.Equal(t, scanner.Status(""), statusOf(report, "LICENSE_HEADER.txt"))
}

// A config outside the scan root exempts only its own template file; a
// root-level file that merely shares the template's name is still scanned.
func TestRunExternalConfigTemplateNameCollision(t *testing.T) {
	cfgDir := t.TempDir()
	testutil.WriteTree(t, cfgDir, map[string]string{
		"LICENSE_HEADER.txt": "Copyright {inceptionYear} {copyrightOwner}",
		"headerguard.toml":   baseConfig,
	})

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"LICENSE_HEADER.txt": "unrelated notes\n",
		"main.go":            "// Copyright 2022 Acme\n\npackage main\n",
	})

	cfg, err := config.Load(filepath.Join(cfgDir, "headerguard.toml"), root, nil)
	require.NoError(t, err)

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root})
	require.NoError(t, err)

	// .txt has no comment style, so the collision file surfaces per-file
	assert.Equal(t, scanner.StatusError, statusOf(report, "LICENSE_HEADER.txt"))
	assert.Equal(t, scanner.StatusCompliant, statusOf(report, "main.go"))
}

func TestRunReportsOwnExclusionsInVerboseMode(t *testing.T) {
	root, cfg := setupTree(t, baseConfig, map[string]string{
		"Cargo.lock": "locked\n",
	})

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root, IncludeExcluded: true})
	require.NoError(t, err)
	assert.Equal(t, scanner.StatusExcluded, statusOf(report, "Cargo.lock"))
}

// Exclude all TOML, re-include Cargo.toml; fix inserts a TOML-style
// header and a second pass is a no-op.
func TestRunFixScenario(t *testing.T) {
	cfgBody := `
headerPath = "LICENSE_HEADER.txt"
excludes = ["**/*.toml", "!**/Cargo.toml"]

[properties]
copyrightOwner = "Acme"
inceptionYear = "2022"
`
	root, cfg := setupTree(t, cfgBody, map[string]string{
		"Cargo.toml":    "[package]\nname = \"demo\"\n",
		"settings.toml": "[ui]\ntheme = \"dark\"\n",
	})

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root, Fix: true})
	require.NoError(t, err)

	assert.Equal(t, scanner.StatusFixed, statusOf(report, "Cargo.toml"))
	assert.Equal(t, scanner.Status(""), statusOf(report, "settings.toml"))
	assert.False(t, report.Failed())

	fixed := testutil.ReadTreeFile(t, root, "Cargo.toml")
	assert.Equal(t, "# Copyright 2022 Acme\n\n[package]\nname = \"demo\"\n", fixed)

	// settings.toml untouched
	assert.Equal(t, "[ui]\ntheme = \"dark\"\n", testutil.ReadTreeFile(t, root, "settings.toml"))

	// second pass: compliant everywhere, file bytes unchanged
	report, err = s.Run(context.Background(), scanner.Options{Root: root, Fix: true})
	require.NoError(t, err)
	assert.Equal(t, scanner.StatusCompliant, statusOf(report, "Cargo.toml"))
	assert.Equal(t, fixed, testutil.ReadTreeFile(t, root, "Cargo.toml"))
}

func TestRunFixPreservesShebangAndMode(t *testing.T) {
	root, cfg := setupTree(t, baseConfig, map[string]string{
		"deploy.sh": "#!/usr/bin/env bash\nset -e\n",
	})
	scriptPath := filepath.Join(root, "deploy.sh")
	require.NoError(t, os.Chmod(scriptPath, 0o755))

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root, Fix: true})
	require.NoError(t, err)
	assert.Equal(t, scanner.StatusFixed, statusOf(report, "deploy.sh"))

	assert.Equal(t,
		"#!/usr/bin/env bash\n# Copyright 2022 Acme\n\nset -e\n",
		testutil.ReadTreeFile(t, root, "deploy.sh"))

	info, err := os.Stat(scriptPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestRunUnsupportedLanguageIsPerFileError(t *testing.T) {
	root, cfg := setupTree(t, baseConfig, map[string]string{
		"good.go":     "// Copyright 2022 Acme\n\npackage main\n",
		"binary.wasm": "\x00asm",
	})

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, scanner.StatusError, statusOf(report, "binary.wasm"))
	// other files still processed
	assert.Equal(t, scanner.StatusCompliant, statusOf(report, "good.go"))
	assert.True(t, report.Failed())

	for _, res := range report.Results {
		if res.Path == "binary.wasm" {
			assert.True(t, errors.IsErrorCode(res.Err, errors.ErrUnsupportedLang))
		}
	}
}

func TestRunUnreadableFileIsPerFileError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	root, cfg := setupTree(t, baseConfig, map[string]string{
		"good.go":   "// Copyright 2022 Acme\n\npackage main\n",
		"secret.go": "package hidden\n",
	})
	require.NoError(t, os.Chmod(filepath.Join(root, "secret.go"), 0o000))

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, scanner.StatusError, statusOf(report, "secret.go"))
	assert.Equal(t, scanner.StatusCompliant, statusOf(report, "good.go"))
	assert.True(t, report.Failed())
}

func TestRunResultsAreSortedByPath(t *testing.T) {
	root, cfg := setupTree(t, baseConfig, map[string]string{
		"zz/last.go":   "package zz\n",
		"aa/first.go":  "package aa\n",
		"mm/middle.go": "package mm\n",
	})

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root})
	require.NoError(t, err)

	var paths []string
	for _, res := range report.Results {
		paths = append(paths, res.Path)
	}
	assert.Equal(t, []string{"aa/first.go", "mm/middle.go", "zz/last.go"}, paths)
}

func TestRunCancelledContextMarksInterrupted(t *testing.T) {
	root, cfg := setupTree(t, baseConfig, map[string]string{
		"a.go": "package a\n",
		"b.go": "package b\n",
	})

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Run(ctx, scanner.Options{Root: root})
	require.NoError(t, err)

	assert.True(t, report.Interrupted)
	assert.True(t, report.Failed())
	for _, res := range report.Results {
		assert.Equal(t, scanner.StatusInterrupted, res.Status)
	}
}

func TestRunDiffPreview(t *testing.T) {
	root, cfg := setupTree(t, baseConfig, map[string]string{
		"bad.go": "package main\n",
	})

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root, Diff: true})
	require.NoError(t, err)

	require.Equal(t, scanner.StatusViolating, statusOf(report, "bad.go"))
	for _, res := range report.Results {
		if res.Path == "bad.go" {
			assert.Contains(t, res.Diff, "+// Copyright 2022 Acme")
			assert.Contains(t, res.Diff, " package main")
		}
	}

	// check mode with diff must not mutate the file
	assert.Equal(t, "package main\n", testutil.ReadTreeFile(t, root, "bad.go"))
}

func TestRunMissingRoot(t *testing.T) {
	_, cfg := setupTree(t, baseConfig, nil)

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), scanner.Options{Root: filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestNewUnboundPlaceholderIsConfigError(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"LICENSE_HEADER.txt": "Copyright {inceptionYear} {copyrightOwner}",
		".headerguard.toml": `
headerPath = "LICENSE_HEADER.txt"

[properties]
copyrightOwner = "Acme"
`,
	})
	cfg, err := config.Load("", root, nil)
	require.NoError(t, err)

	_, err = scanner.New(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingProperty))
	assert.Equal(t, 2, errors.ExitCode(err))
}

func TestRunSkipsGitDirectory(t *testing.T) {
	root, cfg := setupTree(t, baseConfig, map[string]string{
		".git/config.go": "package notreally\n",
		"real.go":        "package main\n",
	})

	s, err := scanner.New(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background(), scanner.Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, scanner.Status(""), statusOf(report, ".git/config.go"))
	assert.Equal(t, scanner.StatusViolating, statusOf(report, "real.go"))
}
