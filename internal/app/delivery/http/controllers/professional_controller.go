package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ProfessionalController struct {
	Log                 *zap.Logger
	ProfessionalUsecase contracts.ProfessionalUsecase
}

var (
	professionalControllerInstance *ProfessionalController
	onceProfessionalController     sync.Once
)

func NewProfessionalController(logger *zap.Logger, professionalUsecase contracts.ProfessionalUsecase) *ProfessionalController {
	onceProfessionalController.Do(func() {
		professionalControllerInstance = &ProfessionalController{
			Log:                 logger,
			ProfessionalUsecase: professionalUsecase,
		}
	})
	return professionalControllerInstance
}

func (ctrl *ProfessionalController) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CreateProfessional)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	professional, err := ctrl.ProfessionalUsecase.CreateProfessional(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "professional_created", requestID,
		zap.String(constvars.LoggingProfessionalIDKey, professional.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateProfessionalSuccessMessage, professional)
}

func (ctrl *ProfessionalController) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	request := &requests.ListProfessionals{
		Category:      query.Get("category"),
		AvailableOnly: query.Get("available") == "true",
		Page:          page,
		PageSize:      pageSize,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	professionals, total, err := ctrl.ProfessionalUsecase.ListProfessionals(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetProfessionalsSuccessMessage, pagination, professionals)
}

func (ctrl *ProfessionalController) GetProfessionalByID(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "professionalId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	professional, err := ctrl.ProfessionalUsecase.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfessionalSuccessMessage, professional)
}

func (ctrl *ProfessionalController) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	professionalID := chi.URLParam(r, "professionalId")

	request := new(requests.UpdateAvailability)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	professional, err := ctrl.ProfessionalUsecase.UpdateAvailability(ctx, professionalID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "professional_availability_updated", requestID,
		zap.String(constvars.LoggingProfessionalIDKey, professionalID),
		zap.Bool("availability", professional.Availability),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAvailabilitySuccessMessage, professional)
}

func (ctrl *ProfessionalController) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "professionalId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary, err := ctrl.ProfessionalUsecase.GetDashboardSummary(ctx, professionalID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardSummarySuccessMessage, summary)
}
