// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package cache

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// AhoCorasick finds every occurrence of a set of patterns in O(n + m + z)
// (text length, total pattern length, match count) instead of scanning once
// per pattern.
//
//	ac := NewAhoCorasick()
//	ac.AddPattern("techno", "electronic")
//	ac.AddPattern("salsa", "latin")
//	ac.Build()
//	ac.Search("Salsa night with a techno afterparty")
//
// In whole-word mode a match only counts when it is not embedded in a longer
// word; a single trailing "s" is tolerated so plurals still match
// ("raves" matches "rave", "warehouse" does not match "house").
type AhoCorasick struct {
	mu        sync.RWMutex
	root      *acNode
	patterns  []Pattern
	built     bool
	wholeWord bool
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices into patterns ending at this node
}

// Pattern is a search pattern with associated data.
type Pattern struct {
	Text string
	Data any
}

// Match is a pattern occurrence. Position is the byte offset of the match
// start in the lowercased text.
type Match struct {
	Pattern  string
	Data     any
	Position int
}

// NewAhoCorasick creates a case-insensitive automaton.
func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{root: newACNode()}
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// SetWholeWord toggles whole-word matching. Takes effect immediately.
func (ac *AhoCorasick) SetWholeWord(on bool) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.wholeWord = on
}

// AddPattern adds a pattern. The same text may be added more than once with
// different data; each registration produces its own match.
func (ac *AhoCorasick) AddPattern(pattern string, data any) {
	if pattern == "" {
		return
	}
	pattern = strings.ToLower(pattern)

	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.built = false
	ac.patterns = append(ac.patterns, Pattern{Text: pattern, Data: data})
}

// AddPatterns adds several patterns sharing the same data.
func (ac *AhoCorasick) AddPatterns(patterns []string, data any) {
	for _, p := range patterns {
		ac.AddPattern(p, data)
	}
}

// Build constructs the trie and failure links. Must be called before searching.
func (ac *AhoCorasick) Build() {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if ac.built {
		return
	}

	ac.root = newACNode()
	for i, p := range ac.patterns {
		node := ac.root
		for _, ch := range p.Text {
			next, ok := node.children[ch]
			if !ok {
				next = newACNode()
				node.children[ch] = next
			}
			node = next
		}
		node.output = append(node.output, i)
	}

	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}

	ac.built = true
}

// Search returns all matches in text order of their end position.
func (ac *AhoCorasick) Search(text string) []Match {
	var matches []Match
	ac.scan(text, func(m Match) bool {
		matches = append(matches, m)
		return true
	})
	return matches
}

// SearchFirst returns the first match to complete while scanning text.
func (ac *AhoCorasick) SearchFirst(text string) (Match, bool) {
	var (
		found Match
		ok    bool
	)
	ac.scan(text, func(m Match) bool {
		found, ok = m, true
		return false
	})
	return found, ok
}

// Contains reports whether any pattern matches.
func (ac *AhoCorasick) Contains(text string) bool {
	_, ok := ac.SearchFirst(text)
	return ok
}

// scan walks text and calls emit for each accepted match until emit
// returns false.
func (ac *AhoCorasick) scan(text string, emit func(Match) bool) {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if !ac.built || len(ac.patterns) == 0 {
		return
	}
	text = strings.ToLower(text)

	node := ac.root
	for i, ch := range text {
		for node != ac.root && node.children[ch] == nil {
			node = node.failure
		}
		next, ok := node.children[ch]
		if !ok {
			continue
		}
		node = next

		end := i + utf8.RuneLen(ch)
		for _, idx := range node.output {
			p := ac.patterns[idx]
			start := end - len(p.Text)
			if ac.wholeWord && !isWholeWord(text, start, end) {
				continue
			}
			if !emit(Match{Pattern: p.Text, Data: p.Data, Position: start}) {
				return
			}
		}
	}
}

// isWholeWord reports whether text[start:end] is bounded by non-word runes,
// allowing one plural "s" after the match.
func isWholeWord(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end >= len(text) {
		return true
	}
	r, size := utf8.DecodeRuneInString(text[end:])
	if !isWordRune(r) {
		return true
	}
	if r != 's' {
		return false
	}
	if end+size >= len(text) {
		return true
	}
	r, _ = utf8.DecodeRuneInString(text[end+size:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// PatternMatcher is a built, read-only automaton.
type PatternMatcher struct {
	ac *AhoCorasick
}

// KeywordRule associates a list of keywords with a label.
type KeywordRule struct {
	Label    string
	Keywords []string
}

// NewPatternMatcher creates a whole-word matcher from rules. A keyword may
// appear in several rules; Labels then reports every owning label.
func NewPatternMatcher(rules []KeywordRule) *PatternMatcher {
	ac := NewAhoCorasick()
	ac.SetWholeWord(true)
	for _, r := range rules {
		ac.AddPatterns(r.Keywords, r.Label)
	}
	ac.Build()
	return &PatternMatcher{ac: ac}
}

// NewPatternMatcherFromSlice creates a whole-word matcher where every
// pattern carries the same data value.
func NewPatternMatcherFromSlice(patterns []string, data any) *PatternMatcher {
	ac := NewAhoCorasick()
	ac.SetWholeWord(true)
	ac.AddPatterns(patterns, data)
	ac.Build()
	return &PatternMatcher{ac: ac}
}

// Contains reports whether any pattern matches text.
func (pm *PatternMatcher) Contains(text string) bool {
	return pm.ac.Contains(text)
}

// Labels returns the set of string labels that matched, as a lookup map.
func (pm *PatternMatcher) Labels(text string) map[string]bool {
	found := make(map[string]bool)
	for _, m := range pm.ac.Search(text) {
		if label, ok := m.Data.(string); ok {
			found[label] = true
		}
	}
	return found
}
