// Package language maps file types to comment-wrapping styles.
//
// The mapping is a static lookup table keyed by extension (with a basename
// fallback for well-known extensionless files), so adding a language is a
// data change, not a code change. Config files can extend or override the
// table at load time.
package language

import (
	"path/filepath"
	"strings"
)

// Style describes how a header is embedded in a file type: either a
// line-prefix style (LinePrefix only) or a block style (BlockStart/BlockEnd
// with an optional per-line prefix in between).
type Style struct {
	BlockStart string
	LinePrefix string
	BlockEnd   string
}

// IsZero reports whether the style carries no delimiters at all.
func (s Style) IsZero() bool {
	return s == Style{}
}

type entry struct {
	style      Style
	extensions []string
	basenames  []string
}

var builtins = []entry{
	{
		style: Style{LinePrefix: "//"},
		extensions: []string{
			".go", ".c", ".h", ".cc", ".cpp", ".hpp", ".cs", ".java", ".js",
			".jsx", ".ts", ".tsx", ".rs", ".kt", ".scala", ".swift", ".dart",
			".groovy", ".proto",
		},
	},
	{
		style: Style{LinePrefix: "#"},
		extensions: []string{
			".py", ".sh", ".bash", ".zsh", ".rb", ".pl", ".toml", ".yaml",
			".yml", ".tf", ".tfvars", ".mk", ".cfg", ".conf", ".ps1", ".r",
			".ex", ".exs",
		},
		basenames: []string{"Dockerfile", "Makefile", "Rakefile", "Gemfile"},
	},
	{
		style:      Style{LinePrefix: "--"},
		extensions: []string{".sql", ".lua", ".hs"},
	},
	{
		style:      Style{LinePrefix: ";"},
		extensions: []string{".ini", ".el"},
	},
	{
		style:      Style{BlockStart: "/*", LinePrefix: " *", BlockEnd: " */"},
		extensions: []string{".css", ".scss", ".less"},
	},
	{
		style:      Style{BlockStart: "<!--", BlockEnd: "-->"},
		extensions: []string{".html", ".htm", ".xml", ".svg", ".md"},
	},
	{
		style:      Style{BlockStart: "{{/*", BlockEnd: "*/}}"},
		extensions: []string{".gotmpl", ".tpl"},
	},
}

// Registry resolves a file path to its comment style.
type Registry struct {
	byExt  map[string]Style
	byName map[string]Style
}

// NewRegistry returns a registry preloaded with the built-in table.
func NewRegistry() *Registry {
	r := &Registry{
		byExt:  make(map[string]Style),
		byName: make(map[string]Style),
	}
	for _, e := range builtins {
		r.Add(e.extensions, e.basenames, e.style)
	}
	return r
}

// Add registers a style for the given extensions and basenames, overriding
// any previous registration for the same key.
func (r *Registry) Add(extensions, basenames []string, s Style) {
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.byExt[strings.ToLower(ext)] = s
	}
	for _, name := range basenames {
		r.byName[name] = s
	}
}

// Lookup returns the comment style for the file at path. The extension is
// consulted first, then the exact basename. ok is false when the file type
// is unknown, in which case the file must be reported as unverifiable
// rather than silently skipped.
func (r *Registry) Lookup(path string) (Style, bool) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		if s, ok := r.byExt[ext]; ok {
			return s, true
		}
	}
	if s, ok := r.byName[filepath.Base(path)]; ok {
		return s, true
	}
	return Style{}, false
}
