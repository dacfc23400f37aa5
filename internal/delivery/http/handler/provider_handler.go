package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"health-first-server/internal/converter"
	"health-first-server/internal/delivery/dto"
	"health-first-server/internal/delivery/http/middleware"
	"health-first-server/internal/usecase"
	"health-first-server/pkg/metrics"
	"health-first-server/pkg/response"
	"health-first-server/pkg/validator"

	"github.com/sirupsen/logrus"
)

var registerMessages = map[error]string{
	usecase.ErrInvalidSpecialization: "Invalid specialization",
	usecase.ErrPasswordMismatch:      "Passwords do not match",
	usecase.ErrWeakPassword:          "Password does not meet strength requirements",
	usecase.ErrEmailAlreadyExists:    "Email already exists",
	usecase.ErrPhoneAlreadyExists:    "Phone number already exists",
	usecase.ErrLicenseAlreadyExists:  "License number already exists",
}

var loginMessages = map[error]string{
	usecase.ErrInvalidCredentials:         "Invalid credentials",
	usecase.ErrAccountNotActiveOrVerified: "Account not active or not verified",
}

const resultSuccess = "success"

type ProviderHandler struct {
	log             *logrus.Logger
	providerUsecase usecase.ProviderUsecase
	validator       *validator.CustomValidator
	metrics         *metrics.Metrics
}

func NewProviderHandler(log *logrus.Logger, providerUsecase usecase.ProviderUsecase, validator *validator.CustomValidator, metrics *metrics.Metrics) *ProviderHandler {
	return &ProviderHandler{
		log:             log,
		providerUsecase: providerUsecase,
		validator:       validator,
		metrics:         metrics,
	}
}

// Register handles provider self-registration
// @Summary Register a new provider
// @Tags Provider
// @Accept json
// @Produce json
// @Param request body dto.RegisterProviderRequest true "Register Provider Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /provider/register [post]
func (h *ProviderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.metrics.Registrations.WithLabelValues(usecase.CodeValidationFailed).Inc()
		response.ValidationError(w, http.StatusUnprocessableEntity, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.providerUsecase.Register(r.Context(), &req)
	h.metrics.Registrations.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		var validationErr *usecase.ValidationError
		if errors.As(err, &validationErr) {
			response.ValidationError(w, http.StatusUnprocessableEntity, validationErr.Fields)
			return
		}
		if message, ok := lookupMessage(registerMessages, err); ok {
			response.ErrorWithCode(w, http.StatusUnprocessableEntity, message, usecase.ErrorCode(err), nil)
			return
		}
		h.log.Errorf("Failed to register provider: %+v", err)
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusCreated, "Provider registered successfully. Verification email sent.", converter.ProviderToRegisterResponse(provider))
}

// Login handles provider login
// @Summary Login provider
// @Tags Provider
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /provider/login [post]
func (h *ProviderHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.providerUsecase.Login(r.Context(), &req)
	h.metrics.LoginAttempts.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		if message, ok := lookupMessage(loginMessages, err); ok {
			response.ErrorWithCode(w, http.StatusUnauthorized, message, usecase.ErrorCode(err), nil)
			return
		}
		h.log.Errorf("Failed to login provider: %+v", err)
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", result)
}

// Me returns the authenticated provider
// @Summary Get current provider
// @Tags Provider
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /provider/me [get]
func (h *ProviderHandler) Me(w http.ResponseWriter, r *http.Request) {
	provider, ok := middleware.ProviderFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	response.Success(w, http.StatusOK, "Provider retrieved successfully", converter.ProviderToResponse(provider))
}

// resultLabel keeps metric labels to the fixed set of error codes.
func resultLabel(err error) string {
	if err == nil {
		return resultSuccess
	}
	if code := usecase.ErrorCode(err); code != "" {
		return code
	}
	return "error"
}

func lookupMessage(messages map[error]string, err error) (string, bool) {
	for target, message := range messages {
		if errors.Is(err, target) {
			return message, true
		}
	}
	return "", false
}
