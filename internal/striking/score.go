package striking

import (
	"math"

	"github.com/shopspring/decimal"

	"strikingdistance/pkg/contracts/domain"
)

// Null-fill policy for scoring: a missing difficulty scores as 0 and a
// missing volume as one search.
const (
	DefaultVolume     = 1.0
	DefaultDifficulty = 0.0
)

// ZScorePlaces is the rounding precision of opportunity z-scores
const ZScorePlaces = 2

// OpportunityScore is (100 - difficulty) * volume
func OpportunityScore(volume, difficulty float64) float64 {
	return (100 - difficulty) * volume
}

// Score default-fills volume and difficulty, computes opportunity scores and
// their population z-scores. degenerate is true when the scores have zero
// variance, in which case every z-score is 0.
func Score(rows []joinedRow) (scored []domain.OpportunityRow, degenerate bool) {
	scored = make([]domain.OpportunityRow, 0, len(rows))
	scores := make([]float64, 0, len(rows))
	for _, r := range rows {
		volume := DefaultVolume
		if r.kw.Volume != nil {
			volume = *r.kw.Volume
		}
		difficulty := DefaultDifficulty
		if r.kw.Difficulty != nil {
			difficulty = *r.kw.Difficulty
		}
		score := OpportunityScore(volume, difficulty)
		scores = append(scores, score)
		scored = append(scored, domain.OpportunityRow{
			Keyword:          r.kw.Keyword,
			LandingPage:      r.page.LandingPage,
			AveragePosition:  *r.query.AveragePosition,
			Volume:           volume,
			Difficulty:       difficulty,
			OpportunityScore: score,
			Intents:          r.kw.Intents,
		})
	}

	z, ok := ZScores(scores)
	for i := range scored {
		scored[i].OpportunityZScore = z[i]
	}
	return scored, !ok
}

// ZScores returns population z-scores rounded to ZScorePlaces, half away
// from zero. ok is false when the values are all equal (or fewer than two),
// in which case every z-score is 0.
func ZScores(values []float64) (z []float64, ok bool) {
	z = make([]float64, len(values))
	if len(values) < 2 || allEqual(values) {
		return z, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(values)))
	if std == 0 {
		return z, false
	}

	for i, v := range values {
		z[i] = RoundZScore((v - mean) / std)
	}
	return z, true
}

// RoundZScore rounds to ZScorePlaces, half away from zero
func RoundZScore(v float64) float64 {
	return decimal.NewFromFloat(v).Round(ZScorePlaces).InexactFloat64()
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
