package rating

import (
	"context"

	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type Kind string

const (
	KindService  Kind = "service"
	KindEmployee Kind = "employee"
)

const (
	MinScore = 0.0
	MaxScore = 5.0
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindService, KindEmployee:
		return Kind(s), nil
	}
	return "", httperr.ValidationErr("invalid_rating_type")
}

func ValidateScore(score float64) error {
	if score < MinScore || score > MaxScore {
		return httperr.ValidationErr("score_out_of_range")
	}
	return nil
}

// Aggregate is the rating state stored on a service or employee. Latest is
// the last submitted score; Count and Mean summarize every score.
type Aggregate struct {
	Latest float64 `json:"rating"`
	Count  int     `json:"rating_count"`
	Mean   float64 `json:"rating_mean"`
}

func (a Aggregate) Apply(score float64) Aggregate {
	count := a.Count + 1
	return Aggregate{
		Latest: score,
		Count:  count,
		Mean:   a.Mean + (score-a.Mean)/float64(count),
	}
}

type Target struct {
	Kind Kind
	ID   uint
}

// Repository records a rating and folds it into the target in one
// transaction. Unknown targets return domain.ErrNotFound.
type Repository interface {
	Record(
		ctx context.Context,
		target Target,
		r *models.Rating,
		apply func(Aggregate) Aggregate,
	) (Aggregate, error)
}
