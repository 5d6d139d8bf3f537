package rules

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/headerguard/headerguard/pkg/errors"
	"github.com/headerguard/headerguard/pkg/logging"
)

// Kind is the sense of a rule: what a match does to the verdict.
type Kind int

const (
	// KindInclude marks a matching file as covered.
	KindInclude Kind = iota
	// KindExclude marks a matching file as not covered.
	KindExclude
	// KindReinclude re-admits a matching file after a broader exclusion.
	KindReinclude
)

// String returns a human-readable name for the rule kind.
func (k Kind) String() string {
	switch k {
	case KindInclude:
		return "include"
	case KindExclude:
		return "exclude"
	case KindReinclude:
		return "reinclude"
	default:
		return "unknown"
	}
}

// Rule is an ordered pair of glob pattern and sense. Order within a
// ruleset is significant: a later rule overrides earlier verdicts.
type Rule struct {
	Pattern string
	Kind    Kind
}

// Ruleset is an ordered, validated list of rules.
type Ruleset struct {
	rules []Rule
}

// New validates every pattern and returns a ruleset preserving rule order.
// A malformed glob is fatal at load time, never partial.
func New(ruleList []Rule) (*Ruleset, error) {
	logger := logging.GetLogger("rules")
	for _, r := range ruleList {
		if !doublestar.ValidatePattern(r.Pattern) {
			return nil, errors.Newf(errors.ErrPatternInvalid, "malformed glob pattern %q", r.Pattern)
		}
	}
	logger.Debug().Int("ruleCount", len(ruleList)).Msg("Compiled ruleset")
	return &Ruleset{rules: ruleList}, nil
}

// ParseExcludes builds a ruleset from a config excludes list. Plain entries
// become exclude rules; a leading "!" marks a re-inclusion override.
func ParseExcludes(patterns []string) (*Ruleset, error) {
	ruleList := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		if rest, negated := strings.CutPrefix(p, "!"); negated {
			ruleList = append(ruleList, Rule{Pattern: rest, Kind: KindReinclude})
			continue
		}
		ruleList = append(ruleList, Rule{Pattern: p, Kind: KindExclude})
	}
	return New(ruleList)
}

// Covers reports whether the file at the given slash-separated relative
// path is subject to header enforcement.
//
// The verdict starts at true (an empty ruleset covers every file, as if an
// implicit include-all rule preceded the list) and is folded left to right:
// each matching rule overwrites it according to its kind.
func (rs *Ruleset) Covers(relPath string) bool {
	relPath = normalize(relPath)

	covered := true
	for _, r := range rs.rules {
		// Patterns are validated in New, so a match error cannot occur here.
		matched, _ := doublestar.Match(r.Pattern, relPath)
		if !matched {
			continue
		}
		switch r.Kind {
		case KindInclude, KindReinclude:
			covered = true
		case KindExclude:
			covered = false
		}
	}
	return covered
}

// Len returns the number of rules in the set.
func (rs *Ruleset) Len() int {
	return len(rs.rules)
}

// normalize strips a leading "./" and cleans the path so patterns always
// see root-relative posix paths.
func normalize(p string) string {
	p = strings.TrimPrefix(p, "./")
	return path.Clean(p)
}
