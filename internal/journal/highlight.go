package journal

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/mmynk/tripwrap/internal/models"
)

// Rand is the random source used when no item carries any signal.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Score rates how good a highlight candidate m is.
// A favorite adds 100, a 1..5 rating adds ten per star and every two
// characters of review text add one point up to 50.
func Score(m models.Media) int {
	score := 0
	if m.IsFavorite {
		score += 100
	}
	if m.Rating >= 1 && m.Rating <= 5 {
		score += m.Rating * 10
	}
	reviewLen := utf8.RuneCountInString(strings.TrimSpace(m.Review))
	score += min(50, reviewLen/2)
	return score
}

// PickHighlight returns the best scoring item, the first one on ties.
// When every item scores zero it picks one uniformly at random from rng
// (a nil rng uses the global source). ok is false for empty input.
func PickHighlight(items []models.Media, rng Rand) (best models.Media, ok bool) {
	if len(items) == 0 {
		return models.Media{}, false
	}

	bestIdx, bestScore := 0, Score(items[0])
	for i := 1; i < len(items); i++ {
		if s := Score(items[i]); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}

	if bestScore == 0 {
		if rng == nil {
			rng = globalRand{}
		}
		return items[rng.IntN(len(items))], true
	}
	return items[bestIdx], true
}
