// Package api собирает маршруты HTTP API.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getMeHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_me"
	getSalonBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_salon_bookings"
	getSalonByCodeHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_salon_by_code"
	getWorkingHoursHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_working_hours"
	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers/health"
	listMyServicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_my_services"
	listSalonServicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_salon_services"
	registerOwnerHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/register_owner"
	syncUserHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/sync_user"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking_status"
	updateServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_service"
	updateWorkingHoursHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_working_hours"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	registerOwnerUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/register_owner"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

// uuidPattern ограничивает {id}, чтобы /bookings/book и подобные пути не попадали в маршруты владельца
const uuidPattern = `[0-9a-f-]{36}`

// Dependencies готовые use cases, сервисы и инфраструктура для маршрутов
type Dependencies struct {
	CreateBooking     *createBookingUC.UseCase
	GetAvailableSlots *getAvailableSlotsUC.UseCase
	RegisterOwner     *registerOwnerUC.UseCase

	Bookings *bookings.Service
	Catalog  *catalog.Service
	Salons   *salons.Service
	Users    *users.Service

	Verifier middleware.TokenVerifier
	Pinger   health.Pinger // nil для хранилища в памяти

	// RateLimiter nil отключает ограничение
	RateLimiter middleware.RateLimiter
	// Metrics nil отключает HTTP метрики и эндпоинт
	Metrics     *metrics.Metrics
	MetricsPath string

	Location *time.Location
	Logger   *logger.Logger
}

// NewRouter регистрирует все маршруты под /api
func NewRouter(d Dependencies) *mux.Router {
	log := d.Logger

	// Инициализируем handlers
	healthH := health.NewHandler(d.Pinger, log)
	salonByCode := getSalonByCodeHandler.NewHandler(d.Salons, log)
	availableSlots := getAvailableSlotsHandler.NewHandler(d.GetAvailableSlots, d.Location, log)
	createBooking := createBookingHandler.NewHandler(d.CreateBooking, d.Location, log)
	salonBookings := getSalonBookingsHandler.NewHandler(d.Bookings, d.Location, log)
	getBooking := getBookingHandler.NewHandler(d.Bookings, log)
	updateStatus := updateBookingStatusHandler.NewHandler(d.Bookings, log)
	listSalonServices := listSalonServicesHandler.NewHandler(d.Catalog, log)
	listMyServices := listMyServicesHandler.NewHandler(d.Catalog, log)
	createService := createServiceHandler.NewHandler(d.Catalog, log)
	updateService := updateServiceHandler.NewHandler(d.Catalog, log)
	deleteService := deleteServiceHandler.NewHandler(d.Catalog, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(d.Salons, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(d.Salons, log)
	registerOwner := registerOwnerHandler.NewHandler(d.RegisterOwner, log)
	syncUser := syncUserHandler.NewHandler(d.Users, log)
	getMe := getMeHandler.NewHandler(d.Users, log)

	auth := middleware.NewAuth(d.Verifier, d.Users, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	if d.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.Metrics))
		r.Handle(d.MetricsPath, d.Metrics.Handler()).Methods(http.MethodGet)
	}

	limited := func(route string, h http.HandlerFunc) http.Handler {
		if d.RateLimiter == nil {
			return h
		}
		var recorder middleware.RateLimitRecorder
		if d.Metrics != nil {
			recorder = d.Metrics
		}
		return middleware.RateLimit(d.RateLimiter, route, recorder, log)(h)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/health", healthH.Live).Methods(http.MethodGet)
	api.HandleFunc("/ready", healthH.Ready).Methods(http.MethodGet)

	api.HandleFunc("/bookings/salon/{code}", salonByCode.Handle).Methods(http.MethodGet)
	api.Handle("/bookings/available-slots", limited("available-slots", availableSlots.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings/book", limited("book", createBooking.Handle)).Methods(http.MethodPost)

	api.HandleFunc("/services/salon/{salonId}", listSalonServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", registerOwner.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/sync-user", syncUser.Handle).Methods(http.MethodPost)

	// Токен проверяется, локальный пользователь может еще не существовать
	api.Handle("/auth/me", auth.VerifyToken(http.HandlerFunc(getMe.Handle))).Methods(http.MethodGet)

	// ============================================================
	// OWNER ROUTES (Bearer token + роль SALON_OWNER)
	// ============================================================

	owner := api.PathPrefix("").Subrouter()
	owner.Use(auth.Authenticate, middleware.RequireSalonOwner)

	// --- Бронирования ---
	owner.HandleFunc("/bookings/salon-bookings", salonBookings.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/bookings/{id:"+uuidPattern+"}", getBooking.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/bookings/{id:"+uuidPattern+"}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// --- Услуги ---
	owner.HandleFunc("/services/my-services", listMyServices.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/services/{id:"+uuidPattern+"}", updateService.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/services/{id:"+uuidPattern+"}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Расписание ---
	owner.HandleFunc("/salons/my/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

	return r
}
