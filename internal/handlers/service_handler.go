package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/httpresp"
	"github.com/matchsage/booking-api/internal/middleware"
	"github.com/matchsage/booking-api/internal/validators"
	ucCatalog "github.com/matchsage/booking-api/internal/usecase/catalog"
	ucRating "github.com/matchsage/booking-api/internal/usecase/rating"
)

const maxPhotoBytes = 8 << 20

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	services *ucCatalog.Services
	photoUC  *ucCatalog.UploadPhoto
	rateUC   *ucRating.Rate
}

func NewServiceHandler(
	services *ucCatalog.Services,
	photoUC *ucCatalog.UploadPhoto,
	rateUC *ucRating.Rate,
) *ServiceHandler {
	return &ServiceHandler{services: services, photoUC: photoUC, rateUC: rateUC}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name         string  `json:"name" binding:"required"`
	PricePerHour float64 `json:"price_per_hour"`
	DurationMin  int     `json:"duration_min"`
	OwnerID      uint    `json:"owner_id"`
}

type AddEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Gender    string `json:"gender"`
}

type RateRequest struct {
	Score      *float64 `json:"score" binding:"required"`
	RatingType string   `json:"rating_type"`
}

// ======================================================
// SERVICE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name is required.")
		return
	}

	s, err := h.services.Create(c.Request.Context(), ucCatalog.CreateServiceInput{
		Actor:        middleware.Actor(c),
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		PricePerHour: req.PricePerHour,
		DurationMin:  req.DurationMin,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	s, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *ServiceHandler) AddEmployee(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var req AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "first_name is required.")
		return
	}
	if req.Email != "" && !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Invalid email.")
		return
	}

	e, err := h.services.AddEmployee(c.Request.Context(), ucCatalog.EmployeeInput{
		Actor:     middleware.Actor(c),
		ServiceID: id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Gender:    req.Gender,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

func (h *ServiceHandler) UploadPhoto(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "photo_required", "Multipart field 'photo' is required.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "photo_unreadable", "Photo could not be read.")
		return
	}
	defer f.Close()

	url, err := h.photoUC.Execute(c.Request.Context(), middleware.Actor(c), id, f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}

// ======================================================
// RATING
// ======================================================

func (h *ServiceHandler) Rate(c *gin.Context) {
	h.rate(c, "service")
}

func (h *ServiceHandler) RateEmployee(c *gin.Context) {
	h.rate(c, "employee")
}

// rate serves both rating routes. The path decides the target kind; a
// rating_type in the body must agree with it.
func (h *ServiceHandler) rate(c *gin.Context, kind string) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "score is required.")
		return
	}
	if req.RatingType != "" && req.RatingType != kind {
		httperr.BadRequest(c, "invalid_rating_type", "rating_type does not match the target.")
		return
	}

	out, err := h.rateUC.Execute(c.Request.Context(), ucRating.RateInput{
		Actor:    middleware.Actor(c),
		Kind:     kind,
		TargetID: id,
		Score:    *req.Score,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"rating_type":  kind,
		"target_id":    id,
		"rating":       out.Aggregate.Latest,
		"rating_count": out.Aggregate.Count,
		"rating_mean":  out.Aggregate.Mean,
		"rater_id":     out.Rating.RaterID,
	})
}

// ======================================================
// EMPLOYEE
// ======================================================

func (h *ServiceHandler) GetEmployee(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid employee id.")
		return
	}

	e, err := h.services.GetEmployee(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, e)
}
