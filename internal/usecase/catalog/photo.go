package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/matchsage/booking-api/internal/audit"
	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/domain"
	domaincatalog "github.com/matchsage/booking-api/internal/domain/catalog"
	"github.com/matchsage/booking-api/internal/httperr"
)

// PhotoStore keeps uploaded images.
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
}

// Normalizer converts an uploaded image into the stored format.
type Normalizer interface {
	Normalize(r io.Reader) ([]byte, error)
}

type UploadPhoto struct {
	repo       domaincatalog.Repository
	store      PhotoStore
	normalizer Normalizer
	audit      *audit.Dispatcher
}

func NewUploadPhoto(
	repo domaincatalog.Repository,
	store PhotoStore,
	normalizer Normalizer,
	audit *audit.Dispatcher,
) *UploadPhoto {
	return &UploadPhoto{
		repo:       repo,
		store:      store,
		normalizer: normalizer,
		audit:      audit,
	}
}

// Execute normalizes the image, stores it and records its URL on the service.
func (uc *UploadPhoto) Execute(
	ctx context.Context,
	actor authz.Actor,
	serviceID uint,
	body io.Reader,
) (string, error) {

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return "", domain.NotFoundAs(err, "service_not_found")
	}

	if !authz.Authorize(actor, authz.ManageService, authz.Resource{OwnerID: service.OwnerID}) {
		return "", httperr.ForbiddenErr("not_service_owner")
	}

	img, err := uc.normalizer.Normalize(body)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("services/%d/%s.webp", serviceID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, "image/webp", bytes.NewReader(img))
	if err != nil {
		return "", err
	}

	if err := uc.repo.UpdateServicePhoto(ctx, serviceID, url); err != nil {
		return "", domain.NotFoundAs(err, "service_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		ServiceID: audit.Ptr(serviceID),
		UserID:    audit.Ptr(actor.ID),
		Action:    "service_photo_updated",
		Entity:    "service",
		EntityID:  audit.Ptr(serviceID),
	})

	return url, nil
}
