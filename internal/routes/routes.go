package routes

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchsage/booking-api/internal/audit"
	"github.com/matchsage/booking-api/internal/config"
	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	domainreceipt "github.com/matchsage/booking-api/internal/domain/receipt"
	"github.com/matchsage/booking-api/internal/handlers"
	"github.com/matchsage/booking-api/internal/infra/imaging"
	"github.com/matchsage/booking-api/internal/infra/lock"
	"github.com/matchsage/booking-api/internal/infra/payment"
	"github.com/matchsage/booking-api/internal/infra/pdf"
	infraRepo "github.com/matchsage/booking-api/internal/infra/repository"
	"github.com/matchsage/booking-api/internal/infra/storage"
	"github.com/matchsage/booking-api/internal/middleware"
	"github.com/matchsage/booking-api/internal/queue"
	ucCatalog "github.com/matchsage/booking-api/internal/usecase/catalog"
	ucRating "github.com/matchsage/booking-api/internal/usecase/rating"
	ucReceipt "github.com/matchsage/booking-api/internal/usecase/receipt"
	ucReservation "github.com/matchsage/booking-api/internal/usecase/reservation"
)

// notifier is what both reservation and receipt use cases publish through.
type notifier interface {
	resv.Notifier
	domainreceipt.Notifier
}

// store serves receipt documents and service photos.
type store interface {
	domainreceipt.Store
	ucCatalog.PhotoStore
}

// RegisterRoutes builds the object graph and mounts every endpoint. The
// returned func releases background workers and broker connections.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) func() {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	ratingRepo := infraRepo.NewRatingGormRepository(db)
	receiptRepo := infraRepo.NewReceiptGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var locker resv.SlotLocker = lock.NewLocalLocker()
	if client := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); client != nil {
		locker = lock.NewRedisLocker(client, cfg.SlotLockTTL)
	}

	var events notifier = queue.LogNotifier{Logger: log.New(os.Stdout, "[event] ", log.LstdFlags)}
	var publisher *queue.Publisher
	if cfg.RabbitMQURL != "" {
		publisher = queue.NewPublisher(cfg.RabbitMQURL)
		events = publisher
	}

	var files store = storage.NewMemoryStore()
	if cfg.S3Bucket != "" {
		files = storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			KeyID:     cfg.AWSKeyID,
			Secret:    cfg.AWSSecret,
			PublicURL: cfg.S3PublicURL,
		})
	}

	var gateway domainreceipt.Gateway = payment.OfflineGateway{}
	if cfg.MercadoPagoToken != "" {
		mp, err := payment.NewMercadoPagoGateway(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("mercadopago disabled: %v", err)
		} else {
			gateway = mp
		}
	}

	renderer := pdf.NewReceiptRenderer()

	// ======================================================
	// USE CASES: RESERVATIONS
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		locker,
		events,
		auditDispatcher,
		cfg.SlotDuration(),
	)
	cancelReservationUC := ucReservation.NewCancelReservation(reservationRepo, events, auditDispatcher)
	viewReservationUC := ucReservation.NewViewReservation(reservationRepo)
	availabilityUC := ucReservation.NewGetAvailableEmployees(reservationRepo, cfg.SlotDuration())
	listReservationsUC := ucReservation.NewListReservations(reservationRepo)

	// ======================================================
	// USE CASES: CATALOG / RATING / RECEIPTS
	// ======================================================
	servicesUC := ucCatalog.NewServices(catalogRepo, auditDispatcher)
	uploadPhotoUC := ucCatalog.NewUploadPhoto(catalogRepo, files, imaging.NewNormalizer(), auditDispatcher)
	rateUC := ucRating.NewRate(ratingRepo, auditDispatcher)

	issueReceiptUC := ucReceipt.NewIssueReceipt(ucReceipt.IssueReceiptDeps{
		Repo:           receiptRepo,
		Gateway:        gateway,
		Renderer:       renderer,
		Store:          files,
		Notifier:       events,
		Audit:          auditDispatcher,
		AllowCancelled: cfg.ReceiptAllowCancelled,
	})
	receiptsUC := ucReceipt.NewReceipts(receiptRepo, renderer, files)

	// ======================================================
	// HANDLERS
	// ======================================================
	reservationHandler := handlers.NewReservationHandler(
		createReservationUC,
		cancelReservationUC,
		viewReservationUC,
		availabilityUC,
		listReservationsUC,
	)
	serviceHandler := handlers.NewServiceHandler(servicesUC, uploadPhotoUC, rateUC)
	receiptHandler := handlers.NewReceiptHandler(issueReceiptUC, receiptsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	// ======================================================
	// API (JSON, authenticated)
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// SERVICES / EMPLOYEES
		// ------------------------------
		secured.POST("/services/new", serviceHandler.Create)
		secured.GET("/services/:id", serviceHandler.Get)
		secured.POST("/services/:id/add_employee", serviceHandler.AddEmployee)
		secured.POST("/services/:id/photo", serviceHandler.UploadPhoto)
		secured.POST("/services/:id/rate", serviceHandler.Rate)
		secured.POST("/services/:id/avai_employees", reservationHandler.AvailableEmployees)
		secured.GET("/services/:id/reservations", reservationHandler.ListByService)

		secured.GET("/employees/:id", serviceHandler.GetEmployee)
		secured.POST("/employees/:id/rate", serviceHandler.RateEmployee)

		// ------------------------------
		// RESERVATIONS
		// ------------------------------
		secured.POST("/reservations/new", reservationHandler.Create)
		secured.GET("/reservations", reservationHandler.List)
		secured.GET("/reservations/:id", reservationHandler.Get)
		secured.GET("/reservations/:id/cancel", reservationHandler.Cancel)
		secured.POST("/reservations/:id/cancel", reservationHandler.Cancel)

		// ------------------------------
		// RECEIPTS
		// ------------------------------
		secured.POST("/receipts/new", receiptHandler.Create)
		secured.GET("/receipts", receiptHandler.List)
		secured.GET("/receipts/:id", receiptHandler.Get)
		secured.GET("/receipts/:id/download", receiptHandler.Download)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}

	return func() {
		auditDispatcher.Close()
		if publisher != nil {
			publisher.Close()
		}
	}
}
