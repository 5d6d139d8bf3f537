package header

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/headerguard/headerguard/pkg/errors"
	"github.com/headerguard/headerguard/pkg/language"
	"github.com/headerguard/headerguard/pkg/logging"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9_]*)\}`)

// Renderer substitutes template placeholders once and comment-wraps the
// result per language. Safe for concurrent use.
type Renderer struct {
	text     string // template with placeholders substituted
	registry *language.Registry

	mu    sync.Mutex
	cache map[language.Style]string
}

// NewRenderer substitutes every {placeholder} occurrence in the template
// from the properties map. An unbound placeholder with no default fails
// with a TEMPLATE_MISSING_PROPERTY error before any file is touched.
//
// The only built-in default is {year}, which falls back to the current
// year when the properties map does not bind it.
func NewRenderer(template string, properties map[string]string, registry *language.Registry) (*Renderer, error) {
	logger := logging.GetLogger("header.renderer")

	var missing []string
	text := placeholderRe.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1 : len(token)-1]
		if v, ok := properties[name]; ok {
			return v
		}
		if name == "year" {
			return strconv.Itoa(time.Now().Year())
		}
		missing = append(missing, name)
		return token
	})
	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrMissingProperty,
			"template placeholder %q has no bound value", missing[0])
	}

	logger.Debug().Int("templateBytes", len(text)).Msg("Template substituted")
	return &Renderer{
		text:     text,
		registry: registry,
		cache:    make(map[language.Style]string),
	}, nil
}

// ForFile renders the comment-wrapped header for the file at path. An
// unrecognized file type fails with a LANGUAGE_UNSUPPORTED error so the
// file is reported as unverifiable, not silently skipped.
func (r *Renderer) ForFile(path string) (string, error) {
	style, ok := r.registry.Lookup(path)
	if !ok {
		return "", errors.Newf(errors.ErrUnsupportedLang, "no comment style for %q", path)
	}
	return r.ForStyle(style), nil
}

// ForStyle renders the comment-wrapped header for a known comment style.
func (r *Renderer) ForStyle(style language.Style) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rendered, ok := r.cache[style]; ok {
		return rendered
	}
	rendered := Wrap(r.text, style)
	r.cache[style] = rendered
	return rendered
}

// Wrap embeds the substituted header text in the given comment style. The
// result always ends with a single newline; every line is right-trimmed so
// a line prefix over an empty template line does not leave trailing space.
func Wrap(text string, style language.Style) string {
	var b strings.Builder

	if style.BlockStart != "" {
		b.WriteString(style.BlockStart)
		b.WriteByte('\n')
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		prefixed := line
		if style.LinePrefix != "" {
			prefixed = style.LinePrefix
			if line != "" {
				prefixed += " " + line
			}
		}
		b.WriteString(strings.TrimRight(prefixed, " \t"))
		b.WriteByte('\n')
	}
	if style.BlockEnd != "" {
		b.WriteString(style.BlockEnd)
		b.WriteByte('\n')
	}
	return b.String()
}
