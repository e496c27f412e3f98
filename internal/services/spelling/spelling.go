// Package spelling corrects misspelled words against an English word list.
//
// Only words the model doesn't know are touched. Lower-case words and
// capitalised words at the start of a sentence are candidates; anything else
// with capitals (names, acronyms) is left alone, as are contractions, numbers
// and punctuation. A corrected word keeps the capitalisation of the original.
//
// The model is trained on word frequencies from public-domain English text
// (frequency.txt) plus a short list of words that text never uses
// (words.txt). Corrections are kept close to the input: a word is only
// replaced by a known word one edit away, or two edits for long words.
package spelling

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sajari/fuzzy"
	log "github.com/sirupsen/logrus"
)

//go:embed frequency.txt
var builtinFrequencies string

//go:embed words.txt
var builtinWords string

// modelDepth is how many deletions the model indexes per dictionary word.
const modelDepth = 1

// longWord is the length from which a correction may be two edits away.
const longWord = 7

// minCompoundPart is the shortest half of a compound word that counts.
const minCompoundPart = 3

var wordPattern = regexp.MustCompile(`\p{L}+(?:'\p{L}+)?`)

// inflections map a suffix to the endings a dictionary stem may take instead.
// "studies" -> "study", "making" -> "make", "pollinators" -> "pollinate".
var inflections = []struct {
	suffix      string
	replacement []string
}{
	{"ies", []string{"y"}},
	{"ied", []string{"y"}},
	{"ing", []string{"", "e"}},
	{"ed", []string{"", "e"}},
	{"es", []string{"", "e"}},
	{"s", []string{""}},
	{"ly", []string{"", "le"}},
	{"er", []string{"", "e"}},
	{"ers", []string{"", "e"}},
	{"est", []string{"", "e"}},
	{"or", []string{"e", ""}},
	{"ors", []string{"e", ""}},
	{"ation", []string{"e", ""}},
	{"ations", []string{"e", ""}},
	{"ment", []string{""}},
	{"ments", []string{""}},
	{"ness", []string{""}},
	{"ful", []string{""}},
	{"less", []string{""}},
	{"able", []string{"", "e"}},
	{"ity", []string{"", "e"}},
	{"al", []string{"", "e"}},
	{"ally", []string{""}},
	{"ist", []string{"", "e"}},
	{"ists", []string{"", "e"}},
	{"ism", []string{""}},
	{"ize", []string{"", "e"}},
	{"ized", []string{"", "e"}},
	{"izes", []string{"", "e"}},
}

// Checker corrects spelling with a fuzzy-matching model.
// It is safe for concurrent use.
type Checker struct {
	model *fuzzy.Model
	known map[string]bool
}

// NewChecker trains a model on the built-in dictionary plus, when extraPath
// is not empty, the words of that file (one per line, optionally followed by
// a count; '#' starts a comment).
func NewChecker(extraPath string) (*Checker, error) {
	counts := make(map[string]int, 32000)
	readCounts(strings.NewReader(builtinFrequencies), counts)
	readCounts(strings.NewReader(builtinWords), counts)

	if extraPath != "" {
		f, err := os.Open(extraPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open spelling dictionary: %w", err)
		}
		defer f.Close()
		n := readCounts(f, counts)
		log.Printf("📖 Loaded %d extra dictionary words from %s", n, extraPath)
	}

	return newChecker(counts), nil
}

func newChecker(counts map[string]int) *Checker {
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(modelDepth)
	model.SetUseAutocomplete(false)

	known := make(map[string]bool, len(counts))
	for w, n := range counts {
		model.SetCount(w, n, true)
		known[w] = true
	}
	return &Checker{model: model, known: known}
}

// readCounts adds the words of r to counts and returns how many lines it read.
// A line without a count adds one.
func readCounts(r io.Reader, counts map[string]int) int {
	n := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		count := 1
		if len(fields) > 1 {
			if c, err := strconv.Atoi(fields[1]); err == nil && c > 0 {
				count = c
			}
		}
		counts[strings.ToLower(fields[0])] += count
		n++
	}
	return n
}

// Correct returns text with misspelled words replaced by their most likely
// correction. Text that is already correct comes back unchanged.
func (c *Checker) Correct(text string) string {
	matches := wordPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		sb.WriteString(text[last:start])
		sb.WriteString(c.correctWord(text[start:end], atSentenceStart(text, start)))
		last = end
	}
	sb.WriteString(text[last:])
	return sb.String()
}

func (c *Checker) correctWord(word string, sentenceStart bool) string {
	if strings.ContainsRune(word, '\'') || utf8.RuneCountInString(word) < 3 {
		return word
	}

	lower := strings.ToLower(word)
	title := isTitle(word)
	switch {
	case word == lower:
	case title && sentenceStart:
	default:
		return word
	}

	if c.isKnown(lower) {
		return word
	}

	suggestion := c.model.SpellCheck(lower)
	if suggestion == "" || suggestion == lower || !closeEnough(lower, suggestion) {
		return word
	}
	if title {
		return capitalize(suggestion)
	}
	return suggestion
}

// closeEnough limits corrections to one edit, or two for long words.
// A word further from anything in the dictionary is more likely a word
// the dictionary lacks than a typo.
func closeEnough(word, suggestion string) bool {
	maxDistance := 1
	if utf8.RuneCountInString(word) >= longWord {
		maxDistance = 2
	}
	return fuzzy.Levenshtein(&word, &suggestion) <= maxDistance
}

// isKnown accepts dictionary words, regular inflections and derivations of
// them, and compounds of two known words ("beekeepers").
func (c *Checker) isKnown(word string) bool {
	if c.isKnownForm(word) {
		return true
	}
	for i := minCompoundPart; i <= len(word)-minCompoundPart; i++ {
		if c.known[word[:i]] && c.isKnownForm(word[i:]) {
			return true
		}
	}
	return false
}

func (c *Checker) isKnownForm(word string) bool {
	if c.known[word] {
		return true
	}
	for _, inf := range inflections {
		stem, ok := strings.CutSuffix(word, inf.suffix)
		if !ok || len(stem) < 2 {
			continue
		}
		for _, r := range inf.replacement {
			if c.known[stem+r] {
				return true
			}
		}
		// "running" -> "run", "stopped" -> "stop"
		if n := len(stem); n > 2 && stem[n-1] == stem[n-2] && c.known[stem[:n-1]] {
			return true
		}
	}
	return false
}

// atSentenceStart reports whether the word at byte offset i opens a sentence.
func atSentenceStart(text string, i int) bool {
	prev := strings.TrimRightFunc(text[:i], func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '(' || r == '\''
	})
	if prev == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(prev)
	return r == '.' || r == '!' || r == '?'
}

func isTitle(word string) bool {
	r, size := utf8.DecodeRuneInString(word)
	rest := word[size:]
	return unicode.IsUpper(r) && rest == strings.ToLower(rest)
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + word[size:]
}
