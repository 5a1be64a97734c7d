package usecase

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/gearcheck/backend/internal/domain"
)

// nonItemValues are right-hand values that look like item assignments but are
// mode keywords, booleans, or stance names.
var nonItemValues = map[string]bool{
	"none": true, "empty": true, "true": true, "false": true, "nil": true,
	"normal": true, "acc": true, "dt": true, "pdt": true, "mdt": true,
	"idle": true, "engaged": true, "defense": true, "offense": true,
	"physical": true, "magical": true, "hybrid": true,
}

// slotNames are equipment-slot identifiers. When one appears as a right-hand
// value it is a key being assigned around, not an item name.
var slotNames = map[string]bool{
	"main": true, "sub": true, "range": true, "ammo": true, "head": true,
	"neck": true, "ear1": true, "ear2": true, "left_ear": true, "right_ear": true,
	"body": true, "hands": true, "ring1": true, "ring2": true,
	"left_ring": true, "right_ring": true,
	"back": true, "waist": true, "legs": true, "feet": true,
}

// Extractor scans gearswap script text for item references.
//
// Two encodings are recognized, augmented blocks first:
//
//	slot = { name = "Item Name", augments = {...} }
//	slot = "Item Name"
//
// Scanning is an explicit quote-aware pass over the text rather than a
// pattern engine, so the priority of the two rules stays visible and each
// rule is testable on its own.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Extract returns the distinct references found in one script text.
// Text with no recognizable patterns yields an empty set, not an error.
func (e *Extractor) Extract(text string) domain.ReferenceSet {
	refs := domain.NewReferenceSet()
	e.scanAugmentedBlocks(text, refs)
	e.scanAssignments(text, refs)
	return refs
}

// ExtractAll unions the references of several script texts.
func (e *Extractor) ExtractAll(texts []string) domain.ReferenceSet {
	refs := domain.NewReferenceSet()
	for _, text := range texts {
		refs.Merge(e.Extract(text))
	}
	e.log.Debug("extracted references",
		zap.Int("sources", len(texts)),
		zap.Int("references", refs.Len()),
		zap.Int("augmented", refs.AugmentedCount()))
	return refs
}

// scanAugmentedBlocks applies the augmented-block rule at every opening brace.
func (e *Extractor) scanAugmentedBlocks(text string, refs domain.ReferenceSet) {
	src := []rune(text)
	for i := 0; i < len(src); i++ {
		if src[i] != '{' {
			continue
		}
		s := &scanner{src: src, pos: i}
		ref, ok := s.augmentedBlock()
		if !ok {
			continue
		}
		if isValidItemName(ref.Name) {
			refs.Add(ref)
		}
		i = s.pos - 1
	}
}

// scanAssignments applies the simple key-value rule. The `name` key is
// suppressed: it belongs to the augmented-block encoding, not a standalone
// reference.
func (e *Extractor) scanAssignments(text string, refs domain.ReferenceSet) {
	s := &scanner{src: []rune(text)}
	for !s.eof() {
		if !isIdentStart(s.peek()) {
			s.pos++
			continue
		}
		key := s.ident()
		s.skipSpace()
		if !s.accept('=') {
			continue
		}
		s.skipSpace()
		value, ok := s.quoted()
		if !ok {
			continue
		}
		if strings.EqualFold(key, "name") {
			continue
		}
		name := strings.TrimSpace(value)
		if isValidItemName(name) {
			refs.Add(domain.Reference{Name: name})
		}
	}
}

// isValidItemName rejects right-hand values that cannot be item names:
// too short, known non-item tokens, function-call-looking values, pure
// numbers, and slot identifiers.
func isValidItemName(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}
	lower := strings.ToLower(name)
	if nonItemValues[lower] || slotNames[lower] {
		return false
	}
	if strings.ContainsAny(name, "()") {
		return false
	}
	if isNumeric(name) {
		return false
	}
	return true
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// scanner is a minimal cursor over script text shared by both match rules.
type scanner struct {
	src []rune
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() rune {
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

// accept consumes r if it is next.
func (s *scanner) accept(r rune) bool {
	if s.eof() || s.src[s.pos] != r {
		return false
	}
	s.pos++
	return true
}

// ident consumes an identifier run: [A-Za-z_][A-Za-z0-9_]*.
func (s *scanner) ident() string {
	start := s.pos
	for !s.eof() && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

// keyword consumes an identifier and requires a case-insensitive match.
func (s *scanner) keyword(word string) bool {
	return strings.EqualFold(s.ident(), word)
}

// quoted consumes a single- or double-quoted string and returns its content.
// The closing quote must match the opening one; the other quote character may
// appear inside. Empty strings do not match.
func (s *scanner) quoted() (string, bool) {
	if s.eof() {
		return "", false
	}
	q := s.src[s.pos]
	if q != '"' && q != '\'' {
		return "", false
	}
	for j := s.pos + 1; j < len(s.src); j++ {
		if s.src[j] != q {
			continue
		}
		if j == s.pos+1 {
			return "", false
		}
		content := string(s.src[s.pos+1 : j])
		s.pos = j + 1
		return content, true
	}
	return "", false
}

// braceBody consumes a brace-delimited run and returns the raw content
// between the braces. Nested braces are not recognized; the body ends at the
// first closing brace.
func (s *scanner) braceBody() (string, bool) {
	if s.eof() || s.src[s.pos] != '{' {
		return "", false
	}
	for j := s.pos + 1; j < len(s.src); j++ {
		if s.src[j] == '}' {
			content := string(s.src[s.pos+1 : j])
			s.pos = j + 1
			return content, true
		}
	}
	return "", false
}

// augmentedBlock matches `{ name = "X", augments = {...} }` starting at the
// current opening brace. Field keywords are case-insensitive and whitespace
// is flexible around `=`.
func (s *scanner) augmentedBlock() (domain.Reference, bool) {
	if !s.accept('{') {
		return domain.Reference{}, false
	}
	s.skipSpace()
	if !s.keyword("name") {
		return domain.Reference{}, false
	}
	s.skipSpace()
	if !s.accept('=') {
		return domain.Reference{}, false
	}
	s.skipSpace()
	name, ok := s.quoted()
	if !ok {
		return domain.Reference{}, false
	}
	s.skipSpace()
	if !s.accept(',') {
		return domain.Reference{}, false
	}
	s.skipSpace()
	if !s.keyword("augments") {
		return domain.Reference{}, false
	}
	s.skipSpace()
	if !s.accept('=') {
		return domain.Reference{}, false
	}
	s.skipSpace()
	body, ok := s.braceBody()
	if !ok {
		return domain.Reference{}, false
	}
	s.skipSpace()
	if !s.accept('}') {
		return domain.Reference{}, false
	}

	return domain.Reference{
		Name:        strings.TrimSpace(name),
		AugmentText: strings.TrimSpace(body),
	}, true
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}
