package testimonial

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lagoon/infras/otel"
	"lagoon/internal/domains/testimonial/model"
	"lagoon/internal/domains/testimonial/model/dto"
	"lagoon/internal/domains/testimonial/service"
	"lagoon/permissions"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/validator"
	"lagoon/transport/http/middleware"
	"lagoon/transport/http/response"
)

type Handler struct {
	service service.Testimonial
	mw      middleware.AuthRole
	otel    otel.Otel
}

func New(service service.Testimonial, mw middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service: service,
		mw:      mw,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/testimonials", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTestimonial)
		routerGroup.Get("/", handler.GetPublicTestimonials)

		routerGroup.Group(func(private chi.Router) {
			private.Use(handler.mw.Auth)
			private.Use(handler.mw.RBAC(permissions.AdminOnly))

			private.Get("/all", handler.GetTestimonials)
			private.Get("/{id}", handler.GetTestimonialByID)
			private.Patch("/{id}/status", handler.ModerateTestimonial)
			private.Delete("/{id}", handler.DeleteTestimonial)
		})
	})
}

// CreateTestimonial handles a public testimonial submission.
// @Summary Submit a testimonial
// @Description Submit a testimonial. It stays private until approved by an admin.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param request body dto.CreateTestimonialRequest true "Create Testimonial Request"
// @Success 201 {object} response.Data[dto.PublicTestimonialResponse] "Testimonial created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials [post]
func (handler *Handler) CreateTestimonial(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTestimonial")
	defer scope.End()

	req := dto.CreateTestimonialRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create testimonial")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Testimonial created successfully with code " + res.Code)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetPublicTestimonials lists approved, publicly visible testimonials.
// @Summary Get public testimonials
// @Description Retrieve approved testimonials, newest first. No authentication required.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPublicTestimonialsResponse] "List of public testimonials"
// @Failure 500 {object} response.Error
// @Router /v1/testimonials [get]
func (handler *Handler) GetPublicTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicTestimonials")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	testimonials, err := handler.service.GetAllPublic(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get public testimonials")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Public testimonials retrieved successfully")

	response.WithJSON(w, http.StatusOK, testimonials)
}

// GetTestimonials retrieves all testimonials regardless of moderation state.
// @Summary Get all testimonials
// @Description Retrieve all testimonials with optional filtering and pagination.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param visit_type query string false "Filter by visit type"
// @Param search query string false "Substring search across name, email, code and message"
// @Param date_from query string false "Creation lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Creation upper bound (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetTestimonialsResponse] "List of testimonials"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials/all [get]
// @Security BearerAuth
func (handler *Handler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTestimonials")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	testimonials, err := handler.service.GetAll(ctx, queryParams, listFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get testimonials")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Testimonials retrieved successfully")

	response.WithJSON(w, http.StatusOK, testimonials)
}

// GetTestimonialByID retrieves a testimonial by its code or id.
// @Summary Get a testimonial
// @Description Retrieve a testimonial including its moderation trail.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param id path string true "Testimonial code or ID"
// @Success 200 {object} response.Data[dto.TestimonialResponse] "Testimonial details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTestimonialByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTestimonialByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	testimonial, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get testimonial")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Testimonial retrieved successfully")

	response.WithJSON(w, http.StatusOK, testimonial)
}

// ModerateTestimonial approves or rejects a testimonial.
// @Summary Moderate a testimonial
// @Description Approve or reject a testimonial. Approval makes it publicly visible.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Param request body dto.ModerateTestimonialRequest true "Moderate Testimonial Request"
// @Success 200 {object} response.Message "Testimonial moderated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) ModerateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ModerateTestimonial")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ModerateTestimonialRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Moderate(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to moderate testimonial")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Testimonial moderated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Testimonial moderated successfully")
}

// DeleteTestimonial deletes a testimonial by its ID.
// @Summary Delete a testimonial
// @Description Remove a testimonial.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Message "Testimonial deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTestimonial")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete testimonial")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Testimonial deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Testimonial deleted successfully")
}

func listFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := query.Get(constant.RequestParamStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if visitType := query.Get(model.FieldVisitType); visitType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVisitType,
			Operator: gDto.FilterOperatorEq,
			Value:    visitType,
			Table:    model.TableName,
		})
	}

	if search := query.Get(constant.RequestParamSearch); search != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: search, Table: model.TableName},
				gDto.Filter{ArgName: "search_email", Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: search, Table: model.TableName},
				gDto.Filter{ArgName: "search_code", Field: model.FieldCode, Operator: gDto.FilterOperatorLike, Value: search, Table: model.TableName},
				gDto.Filter{ArgName: "search_message", Field: model.FieldMessage, Operator: gDto.FilterOperatorLike, Value: search, Table: model.TableName},
			},
		})
	}

	if dateFrom := query.Get(constant.RequestParamDateFrom); dateFrom != "" {
		if from, err := time.Parse(constant.DateOnlyFormat, dateFrom); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  constant.RequestParamDateFrom,
				Field:    constant.FieldCreatedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    model.TableName,
			})
		}
	}

	if dateTo := query.Get(constant.RequestParamDateTo); dateTo != "" {
		if to, err := time.Parse(constant.DateOnlyFormat, dateTo); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  constant.RequestParamDateTo,
				Field:    constant.FieldCreatedAt,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to.AddDate(0, 0, 1),
				Table:    model.TableName,
			})
		}
	}

	return filterGroup
}
