// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import (
	"fmt"
	"regexp"
	"strings"
)

// GlobMatcher matches files and directories using shell glob conventions.
//
// The pattern is compiled once into a sequence of per-label matchers, where
// a label equal to "**" becomes a recursion marker matching zero or more
// path labels. Patterns are matched against normalized relative paths only:
// absolute patterns and ".." labels can never match and are rejected at
// construction.
type GlobMatcher struct {
	labels        []globLabel
	periodSpecial bool
	dirOnly       bool
}

// globLabel is one compiled pattern label.
type globLabel struct {
	// re matches labels containing a character class, nil otherwise.
	re *regexp.Regexp
	// text is the raw label for exact and wildcard matching.
	text string
	// recursive marks the "**" recursion marker.
	recursive bool
	// wildcard reports whether text contains "*" or "?".
	wildcard bool
	// dotLiteral reports whether the pattern label itself starts with ".".
	dotLiteral bool
}

// NewGlobMatcher compiles a glob pattern.
//
// When periodSpecial is true, a leading period in a candidate label is not
// matched by wildcard metacharacters unless the pattern label itself starts
// with a period, and recursion markers do not implicitly traverse dot-labels.
func NewGlobMatcher(pattern string, periodSpecial bool) (*GlobMatcher, error) {
	pattern = normalizeSeparators(pattern)

	if isAbsPattern(pattern) {
		return nil, fmt.Errorf("%w: absolute pattern %q will never match", ErrInvalidPattern, pattern)
	}

	m := &GlobMatcher{
		periodSpecial: periodSpecial,
		// A trailing separator restricts the pattern to directories.
		dirOnly: strings.HasSuffix(pattern, pathSep),
	}

	for _, label := range strings.Split(pattern, pathSep) {
		// Skip useless path labels.
		if label == "" || label == "." {
			continue
		}

		if label == ".." {
			return nil, fmt.Errorf("%w: pattern %q contains %q and will never match", ErrInvalidPattern, pattern, "..")
		}

		if label == "**" {
			m.labels = append(m.labels, globLabel{recursive: true})
			continue
		}

		if strings.Contains(label, "**") {
			return nil, fmt.Errorf("%w: double-star mixed with other characters in label %q", ErrUnsupportedPattern, label)
		}

		compiled, err := compileGlobLabel(label)
		if err != nil {
			return nil, err
		}

		m.labels = append(m.labels, compiled)
	}

	if len(m.labels) == 0 {
		return nil, fmt.Errorf("%w: empty after normalization (%q)", ErrInvalidPattern, pattern)
	}

	return m, nil
}

// ShouldDescend reports whether traversal should recurse into the directory.
//
// The decision is a cheap over-approximation of ShouldReport: it may permit
// directories that end up contributing nothing, but never refuses a
// directory below which a reportable path exists.
func (m *GlobMatcher) ShouldDescend(path string) bool {
	for idx, label := range splitLabels(path) {
		// Always descend below a recursion marker, the tail match on deeper
		// labels cannot be predicted here.
		if m.labels[idx].recursive {
			return true
		}

		// The final pattern label can only match this directory itself, not
		// anything below it. Whether the directory is reported is a separate,
		// independent decision.
		if idx == len(m.labels)-1 {
			return false
		}

		if !m.labels[idx].match(label, m.periodSpecial) {
			return false
		}
	}

	// The path matched a proper pattern prefix, keep going deeper.
	return true
}

// ShouldReport reports whether the node should be emitted.
func (m *GlobMatcher) ShouldReport(path string, isDir bool) bool {
	if m.dirOnly && !isDir {
		return false
	}

	return m.matchLabels(splitLabels(path), 0, 0, isDir)
}

// matchLabels recursively matches candidate labels against pattern labels
// starting at the given indices, backtracking across recursion markers.
func (m *GlobMatcher) matchLabels(labels []string, idxPat int, idxPath int, isDir bool) bool {
	for idxPat < len(m.labels) && !m.labels[idxPat].recursive {
		if idxPath >= len(labels) {
			// The pattern refers to something below this path: report it
			// only when it is a directory on the way to a deeper match.
			return isDir
		}

		if !m.labels[idxPat].match(labels[idxPath], m.periodSpecial) {
			return false
		}

		idxPat++
		idxPath++
	}

	if idxPat == len(m.labels) {
		// End of pattern: a preceding recursion marker absorbs the remaining
		// labels (subject to dot-suppression), otherwise lengths must agree.
		if m.labels[idxPat-1].recursive {
			return !m.periodSpecial || !strings.HasPrefix(labels[idxPath], ".")
		}

		return idxPath == len(labels)
	}

	// Recursion marker reached: try the pattern remainder against every
	// suffix of the remaining candidate labels.
	idxPat++
	for idxPath < len(labels) {
		if m.matchLabels(labels, idxPat, idxPath, isDir) {
			return true
		}

		// Recursion markers do not implicitly traverse dot-labels.
		if m.periodSpecial && strings.HasPrefix(labels[idxPath], ".") {
			break
		}

		idxPath++
	}

	return false
}

// match matches one candidate label against one compiled pattern label.
func (l globLabel) match(candidate string, periodSpecial bool) bool {
	if periodSpecial && !l.dotLiteral && strings.HasPrefix(candidate, ".") {
		return false
	}

	if l.re != nil {
		return l.re.MatchString(candidate)
	}

	if l.wildcard {
		return matchLabelWildcard(l.text, candidate)
	}

	return candidate == l.text
}

// compileGlobLabel compiles one pattern label into the cheapest matching
// strategy: exact text, iterative wildcard, or regexp for char classes.
func compileGlobLabel(label string) (globLabel, error) {
	compiled := globLabel{
		text:       label,
		dotLiteral: strings.HasPrefix(label, "."),
	}

	if labelHasCharClass(label) {
		re, err := regexp.Compile("^(?:" + globToRegexLabel(label) + ")$")
		if err != nil {
			return globLabel{}, fmt.Errorf("%w: compile label %q: %v", ErrInvalidPattern, label, err)
		}

		compiled.re = re
		return compiled, nil
	}

	compiled.wildcard = strings.ContainsAny(label, "*?")
	return compiled, nil
}

// matchLabelWildcard matches a "*" and "?" wildcard pattern against one label.
func matchLabelWildcard(pattern string, input string) bool {
	pIdx := 0
	sIdx := 0
	starPattern := -1
	starInput := 0

	for sIdx < len(input) {
		if pIdx < len(pattern) && (pattern[pIdx] == '?' || pattern[pIdx] == input[sIdx]) {
			pIdx++
			sIdx++
			continue
		}

		if pIdx < len(pattern) && pattern[pIdx] == '*' {
			// Remember star position and continue greedily from current input index.
			starPattern = pIdx
			pIdx++
			starInput = sIdx
			continue
		}

		if starPattern >= 0 {
			// Mismatch after a previous star: backtrack pattern to token after '*'
			// and let '*' consume one more input byte.
			pIdx = starPattern + 1
			starInput++
			sIdx = starInput
			continue
		}

		return false
	}

	for pIdx < len(pattern) && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(pattern)
}

// labelHasCharClass reports whether label contains at least one valid "[...]" class.
func labelHasCharClass(label string) bool {
	for i := 0; i < len(label); i++ {
		if label[i] != '[' {
			continue
		}

		if findCharClassEnd(label, i) >= 0 {
			return true
		}
	}

	return false
}

// globToRegexLabel converts one glob label to a regex body.
func globToRegexLabel(label string) string {
	var b strings.Builder

	for i := 0; i < len(label); i++ {
		if next, ok := appendCharClassRegex(label, i, &b); ok {
			i = next
			continue
		}

		switch c := label[i]; c {
		case '*':
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexEscapeByte(c))
		}
	}

	return b.String()
}

// appendCharClassRegex appends a parsed glob char class (`[...]`) as regex class.
func appendCharClassRegex(label string, start int, b *strings.Builder) (int, bool) {
	if start < 0 || start >= len(label) || label[start] != '[' {
		return start, false
	}

	end := findCharClassEnd(label, start)
	if end < 0 {
		return start, false
	}

	b.WriteByte('[')

	idx := start + 1
	if idx < end && label[idx] == '!' {
		// Shell-style class negation "[!x]" maps to regex "[^x]".
		b.WriteByte('^')
		idx++
	} else if idx < end && label[idx] == '^' {
		// Literal leading '^' must be escaped in regex char class.
		b.WriteString(`\^`)
		idx++
	}

	if idx < end && label[idx] == ']' {
		// Leading ']' is treated as literal in both glob and regex classes.
		b.WriteString(`\]`)
		idx++
	}

	for ; idx < end; idx++ {
		if label[idx] == '\\' {
			b.WriteString(`\\`)
			continue
		}

		b.WriteByte(label[idx])
	}

	b.WriteByte(']')
	return end, true
}

// findCharClassEnd locates the closing bracket for a glob char class.
func findCharClassEnd(label string, start int) int {
	if start < 0 || start >= len(label) || label[start] != '[' {
		return -1
	}

	idx := start + 1
	if idx < len(label) && (label[idx] == '!' || label[idx] == '^') {
		idx++
	}

	if idx < len(label) && label[idx] == ']' {
		idx++
	}

	for ; idx < len(label); idx++ {
		if label[idx] == ']' {
			return idx
		}
	}

	return -1
}

// regexEscapeByte escapes one byte for regexp source.
func regexEscapeByte(c byte) string {
	switch c {
	case '.', '+', '(', ')', '|', '{', '}', '[', ']', '^', '$', '\\', '*', '?':
		return `\` + string(c)
	default:
		return string(c)
	}
}
