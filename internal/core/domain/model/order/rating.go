package order

import (
	"gochop/internal/pkg/errs"
)

const (
	// MinRatingScore is the lowest rating a customer can give.
	MinRatingScore = 1
	// MaxRatingScore is the highest rating a customer can give.
	MaxRatingScore = 5
)

// Rating is a post-delivery score with an optional comment.
// An order carries up to two of these, one for the restaurant and one for
// the rider, each settable at most once.
type Rating struct {
	score   int
	comment string
}

// NewRating creates a validated rating. Score must be within [1, 5].
func NewRating(score int, comment string) (Rating, error) {
	if score < MinRatingScore || score > MaxRatingScore {
		return Rating{}, errs.NewValueIsOutOfRangeError("rating", score, MinRatingScore, MaxRatingScore)
	}
	return Rating{score: score, comment: comment}, nil
}

// Score returns the rating score.
func (r Rating) Score() int {
	return r.score
}

// Comment returns the free-text comment, possibly empty.
func (r Rating) Comment() string {
	return r.comment
}
