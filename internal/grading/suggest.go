package grading

// Band classifies a score ratio.
type Band string

const (
	BandExcellent   Band = "excellent"
	BandGood        Band = "good"
	BandNeedsReview Band = "needs_review"
)

// Suggestion texts per band.
const (
	SuggestionExcellent   = "Excellent! Keep up the great work!"
	SuggestionGood        = "Good job, but there's room for improvement."
	SuggestionNeedsReview = "Don't worry, try reviewing the material and attempt again!"
)

// Classify maps score/total to a band. Comparisons are done as
// score >= total*threshold, so total 0 lands in the excellent band.
func Classify(score, total int) Band {
	switch {
	case float64(score) >= float64(total)*0.8:
		return BandExcellent
	case float64(score) >= float64(total)*0.5:
		return BandGood
	default:
		return BandNeedsReview
	}
}

// Suggest returns the suggestion text for score/total.
func Suggest(score, total int) string {
	return Text(Classify(score, total))
}

// Text returns the suggestion text for band.
func Text(band Band) string {
	switch band {
	case BandExcellent:
		return SuggestionExcellent
	case BandGood:
		return SuggestionGood
	default:
		return SuggestionNeedsReview
	}
}
