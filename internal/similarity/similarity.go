// Package similarity flags interview questions that closely resemble
// questions already in the approved bank.
//
// Scores are advisory. Nothing in this package blocks a submission; callers
// show the matches as a warning and let the author decide.
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode/utf16"

	"medprep/internal/model"
)

const (
	// DefaultThreshold is the edit-distance score at which two texts count as similar.
	DefaultThreshold = 70

	// MinCandidateLength is the shortest candidate worth checking. Anything
	// shorter carries too little signal and yields no matches.
	MinCandidateLength = 3

	// MaxMatches caps how many matches are reported.
	MaxMatches = 3

	// CommonWordTrigger is the number of shared words that flags a match on its own.
	CommonWordTrigger = 3

	// CommonWordFloorScore is the lowest score displayed for a match flagged
	// only by shared words.
	CommonWordFloorScore = 60

	// minWordLength excludes short tokens ("a", "of", "to") from word overlap.
	minWordLength = 3
)

// Reason says which signal flagged a match
type Reason string

const (
	ReasonEditDistance Reason = "edit_distance"
	ReasonCommonWords  Reason = "common_words"
	ReasonBoth         Reason = "both"
)

// Match is one approved question that resembles the candidate.
//
// Score is the number shown to the author. When the match was flagged by word
// overlap alone it is floored at CommonWordFloorScore and no longer reflects
// edit distance; EditScore and CommonWords carry the two raw signals.
type Match struct {
	Question    model.Question `json:"question"`
	Score       int            `json:"score"`
	EditScore   int            `json:"editScore"`
	CommonWords int            `json:"commonWords"`
	Reason      Reason         `json:"reason"`
}

// codeUnits splits s into UTF-16 code units, the symbol the distance counts.
func codeUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Levenshtein returns the edit distance between a and b. Comparison is
// case-sensitive and counts UTF-16 code units.
func Levenshtein(a, b string) int {
	s, t := codeUnits(a), codeUnits(b)

	matrix := make([][]int, len(t)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(t); i++ {
		for j := 1; j <= len(s); j++ {
			if t[i-1] == s[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = 1 + min(
				matrix[i-1][j-1], // substitution
				matrix[i][j-1],   // insertion
				matrix[i-1][j],   // deletion
			)
		}
	}

	return matrix[len(t)][len(s)]
}

// CalculateSimilarity scores a against b from 0 to 100, ignoring case and
// surrounding whitespace. Identical texts score 100; otherwise an empty text
// scores 0.
func CalculateSimilarity(a, b string) int {
	s1 := strings.TrimSpace(strings.ToLower(a))
	s2 := strings.TrimSpace(strings.ToLower(b))

	if s1 == s2 {
		return 100
	}
	if s1 == "" || s2 == "" {
		return 0
	}

	maxLen := max(len(codeUnits(s1)), len(codeUnits(s2)))
	distance := Levenshtein(s1, s2)
	return int(math.Floor(float64(maxLen-distance)/float64(maxLen)*100 + 0.5))
}

// CountCommonWords counts the words of a (longer than two characters) that
// also occur in b. Repeated words in a count each time they appear.
func CountCommonWords(a, b string) int {
	inB := make(map[string]struct{})
	for _, w := range words(b) {
		inB[w] = struct{}{}
	}

	count := 0
	for _, w := range words(a) {
		if _, ok := inB[w]; ok {
			count++
		}
	}
	return count
}

func words(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := fields[:0]
	for _, f := range fields {
		if len(codeUnits(f)) >= minWordLength {
			out = append(out, f)
		}
	}
	return out
}

// Checkable reports whether candidate is long enough to be compared
func Checkable(candidate string) bool {
	return len(codeUnits(candidate)) >= MinCandidateLength
}

// FindSimilar scores candidate against the title and text of every existing
// question and returns up to MaxMatches matches, best first. A question
// matches when its best score reaches threshold or when it shares at least
// CommonWordTrigger words with the candidate. A threshold <= 0 means
// DefaultThreshold.
func FindSimilar(candidate string, existing []model.Question, threshold int) []Match {
	if !Checkable(candidate) {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var matches []Match
	for _, q := range existing {
		editScore := max(
			CalculateSimilarity(candidate, q.Title),
			CalculateSimilarity(candidate, q.QuestionText),
		)
		common := max(
			CountCommonWords(candidate, q.Title),
			CountCommonWords(candidate, q.QuestionText),
		)

		byScore := editScore >= threshold
		byWords := common >= CommonWordTrigger
		if !byScore && !byWords {
			continue
		}

		m := Match{
			Question:    q,
			Score:       editScore,
			EditScore:   editScore,
			CommonWords: common,
		}
		switch {
		case byScore && byWords:
			m.Reason = ReasonBoth
		case byScore:
			m.Reason = ReasonEditDistance
		default:
			m.Reason = ReasonCommonWords
			m.Score = max(editScore, CommonWordFloorScore)
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}
