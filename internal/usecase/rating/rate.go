package rating

import (
	"context"

	"github.com/matchsage/booking-api/internal/audit"
	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/domain"
	domainrating "github.com/matchsage/booking-api/internal/domain/rating"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type RateInput struct {
	Actor    authz.Actor
	Kind     string
	TargetID uint
	Score    float64
}

type RateOutput struct {
	Rating    models.Rating
	Aggregate domainrating.Aggregate
}

type Rate struct {
	repo  domainrating.Repository
	audit *audit.Dispatcher
}

func NewRate(repo domainrating.Repository, audit *audit.Dispatcher) *Rate {
	return &Rate{repo: repo, audit: audit}
}

// Execute records a score for a service or an employee. The target keeps the
// latest score as its rating plus the running count and mean.
func (uc *Rate) Execute(ctx context.Context, in RateInput) (*RateOutput, error) {
	if !authz.Authorize(in.Actor, authz.Rate, authz.Resource{}) {
		return nil, httperr.ForbiddenErr("authentication_required")
	}

	kind, err := domainrating.ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}
	if err := domainrating.ValidateScore(in.Score); err != nil {
		return nil, err
	}

	row := &models.Rating{
		RaterID: in.Actor.ID,
		Score:   in.Score,
	}

	agg, err := uc.repo.Record(
		ctx,
		domainrating.Target{Kind: kind, ID: in.TargetID},
		row,
		func(a domainrating.Aggregate) domainrating.Aggregate { return a.Apply(in.Score) },
	)
	if err != nil {
		return nil, domain.NotFoundAs(err, string(kind)+"_not_found")
	}

	ev := audit.Event{
		UserID:   audit.Ptr(in.Actor.ID),
		Action:   "rating_recorded",
		Entity:   string(kind),
		EntityID: audit.Ptr(in.TargetID),
		Metadata: map[string]any{"score": in.Score},
	}
	if kind == domainrating.KindService {
		ev.ServiceID = audit.Ptr(in.TargetID)
	}
	uc.audit.Dispatch(ev)

	return &RateOutput{Rating: *row, Aggregate: agg}, nil
}
