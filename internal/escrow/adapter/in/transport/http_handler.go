package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"rideescrow/internal/catalog"
	"rideescrow/internal/escrow/application/ports/in"
	"rideescrow/internal/escrow/domain"
	"rideescrow/internal/funds"
	"rideescrow/internal/registry"
	"rideescrow/internal/shared/logger"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler exposes the settlement, registry, catalog and wallet
// operations over HTTP. The caller identity always comes from the JWT
// middleware, never from the request body.
type HTTPHandler struct {
	registry *registry.Service
	catalog  *catalog.Service
	wallet   funds.Gateway

	bookUC     in.BookRideUseCase
	completeUC in.CompleteRideUseCase
	cancelUC   in.CancelRideUseCase
	getUC      in.GetRideUseCase

	log *logger.Logger
}

func NewHTTPHandler(
	reg *registry.Service,
	cat *catalog.Service,
	wallet funds.Gateway,
	bookUC in.BookRideUseCase,
	completeUC in.CompleteRideUseCase,
	cancelUC in.CancelRideUseCase,
	getUC in.GetRideUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		registry:   reg,
		catalog:    cat,
		wallet:     wallet,
		bookUC:     bookUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		getUC:      getUC,
		log:        log,
	}
}

// RegisterRoutes wires all HTTP routes onto the mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	// liveness
	mux.HandleFunc("GET /health", h.handleHealth)

	// registry
	mux.HandleFunc("POST /participants", authMiddleware(h.handleRegisterParticipant))

	// catalog
	mux.HandleFunc("POST /destinations", authMiddleware(h.handleAddDestination))
	mux.HandleFunc("GET /destinations/{destination_id}", authMiddleware(h.handleGetDestination))

	// wallet
	mux.HandleFunc("POST /wallet/deposits", authMiddleware(h.handleDeposit))
	mux.HandleFunc("GET /wallet", authMiddleware(h.handleGetWallet))

	// settlement
	mux.HandleFunc("POST /rides", authMiddleware(h.handleBookRide))
	mux.HandleFunc("GET /rides/{ride_id}", authMiddleware(h.handleGetRide))
	mux.HandleFunc("POST /rides/{ride_id}/complete", authMiddleware(h.handleCompleteRide))
	mux.HandleFunc("POST /rides/{ride_id}/cancel", authMiddleware(h.handleCancelRide))

	h.log.Info(logger.Entry{
		Action:  "http_routes_registered",
		Message: "Escrow routes registered",
	})
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// RegisterParticipantRequest registers the caller for one role.
type RegisterParticipantRequest struct {
	Role string `json:"role"`
}

func (h *HTTPHandler) handleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID, ok := CallerID(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req RegisterParticipantRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	role, err := registry.ParseRole(req.Role)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "role must be RIDER or DRIVER")
		return
	}

	if err := h.registry.Register(ctx, callerID, role); err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]string{
		"participant_id": callerID,
		"role":           string(role),
	})
}

// AddDestinationRequest adds a catalog entry owned by the caller.
type AddDestinationRequest struct {
	Location string `json:"location"`
	Fare     int64  `json:"fare"`
}

func (h *HTTPHandler) handleAddDestination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID, ok := CallerID(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddDestinationRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Location == "" {
		h.respondError(w, http.StatusBadRequest, "location is required")
		return
	}

	dest, err := h.catalog.AddDestination(ctx, callerID, req.Location, req.Fare)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dest)
}

func (h *HTTPHandler) handleGetDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "destination_id")
	if !ok {
		return
	}

	dest, err := h.catalog.GetDestination(r.Context(), id)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dest)
}

// DepositRequest credits the caller's payable account.
type DepositRequest struct {
	Amount int64 `json:"amount"`
}

func (h *HTTPHandler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID, ok := CallerID(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req DepositRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Amount <= 0 {
		h.respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	balance, err := h.wallet.Deposit(ctx, callerID, req.Amount)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"participant_id": callerID,
		"balance":        balance,
	})
}

func (h *HTTPHandler) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID, ok := CallerID(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	balance, err := h.wallet.BalanceOf(ctx, callerID)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"participant_id": callerID,
		"balance":        balance,
	})
}

// BookRideRequest books a ride; the driver is the destination's owner.
type BookRideRequest struct {
	DestinationID int64 `json:"destination_id"`
	PaymentAmount int64 `json:"payment_amount"`
}

func (h *HTTPHandler) handleBookRide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID, ok := CallerID(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req BookRideRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	output, err := h.bookUC.BookRide(ctx, in.BookRideInput{
		RiderID:       callerID,
		DestinationID: req.DestinationID,
		PaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, output)
}

func (h *HTTPHandler) handleGetRide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID, ok := CallerID(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rideID, ok := h.pathID(w, r, "ride_id")
	if !ok {
		return
	}

	output, err := h.getUC.GetRide(ctx, in.GetRideInput{
		RideID:   rideID,
		CallerID: callerID,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

func (h *HTTPHandler) handleCompleteRide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID, ok := CallerID(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rideID, ok := h.pathID(w, r, "ride_id")
	if !ok {
		return
	}

	output, err := h.completeUC.CompleteRide(ctx, in.CompleteRideInput{
		RideID:   rideID,
		CallerID: callerID,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// CancelRideRequest carries the optional cancellation reason.
type CancelRideRequest struct {
	Reason string `json:"reason"`
}

func (h *HTTPHandler) handleCancelRide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID, ok := CallerID(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rideID, ok := h.pathID(w, r, "ride_id")
	if !ok {
		return
	}

	var req CancelRideRequest
	if r.ContentLength > 0 && !h.decodeBody(w, r, &req) {
		return
	}

	output, err := h.cancelUC.CancelRide(ctx, in.CancelRideInput{
		RideID:   rideID,
		CallerID: callerID,
		Reason:   req.Reason,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

func (h *HTTPHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 0 {
		h.respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return false
		}
		h.log.Error(logger.Entry{
			Action:  "parse_request_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return false
	}
	return true
}

func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrUnknownRole):
		h.respondError(w, http.StatusBadRequest, "role must be RIDER or DRIVER")
	case errors.Is(err, registry.ErrAlreadyRegistered):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrNotDriver),
		errors.Is(err, registry.ErrNotRegistered),
		errors.Is(err, domain.ErrNotRegistered):
		h.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUnauthorizedCaller):
		h.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, catalog.ErrInvalidFare),
		errors.Is(err, domain.ErrIncorrectPaymentAmount),
		errors.Is(err, funds.ErrInvalidAmount):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrDestinationNotFound),
		errors.Is(err, domain.ErrRideNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDestinationUnavailable),
		errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrAlreadyCancelled):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTransferFailure),
		errors.Is(err, domain.ErrInsufficientPoolBalance),
		errors.Is(err, funds.ErrInsufficientFunds):
		h.respondError(w, http.StatusPaymentRequired, err.Error())
	default:
		h.log.Error(logger.Entry{
			Action:  "usecase_error",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error(logger.Entry{
			Action:  "encode_response_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
