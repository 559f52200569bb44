package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mozillazg/go-unidecode"
)

// Match is a ranked hit from Rank
type Match struct {
	Index int // Index in source slice
	Score int // Lower is better
}

// Fold transliterates text to lowercase ASCII so that "Amélie" and
// "amelie" compare equal and non-Latin titles can be typed in Latin script.
func Fold(text string) string {
	folded := strings.ToLower(unidecode.Unidecode(text))
	return strings.Join(strings.FieldsFunc(folded, isSeparator), " ")
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Rank matches a query against titles. Every query word must match some
// part of the title, in any order ("robot mr" finds "Mr. Robot"). Results
// are sorted by score, then by shorter title, then by index.
func Rank(query string, titles []string) []Match {
	words := strings.Fields(Fold(query))
	if len(words) == 0 {
		return nil
	}

	var matches []Match
	for i, title := range titles {
		if score, ok := scoreTitle(words, Fold(title)); ok {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score < matches[b].Score
		}
		return len(titles[matches[a].Index]) < len(titles[matches[b].Index])
	})
	return matches
}

func scoreTitle(words []string, title string) (int, bool) {
	titleWords := strings.Fields(title)
	total := 0
	for _, w := range words {
		score, ok := scoreWord(w, title, titleWords)
		if !ok {
			return 0, false
		}
		total += score
	}

	// Penalize titles with many extra words
	if extra := len(titleWords) - len(words); extra > 0 {
		total += extra * 5
	}
	return total, true
}

// scoreWord finds the best match for one query word
func scoreWord(word, title string, titleWords []string) (int, bool) {
	best := -1
	for _, tw := range titleWords {
		var score int
		switch {
		case tw == word:
			score = 0
		case strings.HasPrefix(tw, word):
			score = 10
		case strings.Contains(tw, word):
			score = 50
		default:
			dist := fuzzy.LevenshteinDistance(word, tw)
			if dist > allowedTypos(len(word)) {
				continue
			}
			score = 100 + dist*20
		}
		if best < 0 || score < best {
			best = score
		}
	}
	if best >= 0 {
		return best, true
	}

	// Scattered characters across the whole title, e.g. "lotr"
	if rank := fuzzy.RankMatch(word, title); rank >= 0 {
		return 150 + rank, true
	}
	return 0, false
}

// allowedTypos returns the number of typos allowed based on word length
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}
