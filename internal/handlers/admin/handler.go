package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lagoon/infras/otel"
	"lagoon/internal/domains/admin/model/dto"
	"lagoon/internal/domains/admin/service"
	bookingModel "lagoon/internal/domains/booking/model"
	contactModel "lagoon/internal/domains/contact/model"
	"lagoon/permissions"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/validator"
	"lagoon/transport/http/middleware"
	"lagoon/transport/http/response"
)

type Handler struct {
	dashboard service.Dashboard
	export    service.Export
	mw        middleware.AuthRole
	otel      otel.Otel
}

func New(dashboard service.Dashboard, export service.Export, mw middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		dashboard: dashboard,
		export:    export,
		mw:        mw,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Use(handler.mw.Auth)
		routerGroup.Use(handler.mw.RBAC(permissions.AdminOnly))

		routerGroup.Get("/dashboard", handler.GetDashboard)
		routerGroup.Get("/export", handler.Export)
	})
}

// GetDashboard returns the aggregated admin dashboard.
// @Summary Get the admin dashboard
// @Description Booking and contact counters, revenue aggregates, recent records and the 6-month trend.
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse] "Dashboard figures"
// @Failure 500 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	res, err := handler.dashboard.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Export streams a bulk export of bookings or contacts.
// @Summary Export records
// @Description Download the full filtered set of bookings or contacts as JSON, CSV or XLSX.
// @Tags Admin
// @Accept json
// @Produce json
// @Param resource query string true "Resource (bookings, contacts)"
// @Param format query string true "Format (json, csv, xlsx)"
// @Param status query string false "Filter by status"
// @Param search query string false "Substring search, same fields as the list endpoint"
// @Param date_from query string false "Creation lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Creation upper bound (YYYY-MM-DD)"
// @Success 200 {file} binary "Export file"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/export [get]
// @Security BearerAuth
func (handler *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Export")
	defer scope.End()

	req := dto.ExportRequest{
		Resource: r.URL.Query().Get(constant.RequestParamResource),
		Format:   r.URL.Query().Get(constant.RequestParamFormat),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate export request")

		response.WithError(w, err)

		return
	}

	res, err := handler.export.Export(ctx, req, exportFilter(r, req.Resource))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export records")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Export generated successfully by user " + user)

	disposition := fmt.Sprintf("attachment; filename=%q", res.FileName)
	response.WithFile(w, res.ContentType, disposition, res.Data)
}

// exportFilter mirrors the list endpoints' filter vocabulary for the chosen
// resource.
func exportFilter(r *http.Request, resource string) gDto.FilterGroup {
	query := r.URL.Query()

	table := bookingModel.TableName
	searchFields := []string{bookingModel.FieldGuestName, bookingModel.FieldGuestEmail, bookingModel.FieldCode}

	if resource == dto.ResourceContacts {
		table = contactModel.TableName
		searchFields = []string{contactModel.FieldName, contactModel.FieldEmail, contactModel.FieldCode, contactModel.FieldMessage}
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := query.Get(constant.RequestParamStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    "status",
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    table,
		})
	}

	if search := query.Get(constant.RequestParamSearch); search != "" {
		searchGroup := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters:  []any{},
		}

		for i, field := range searchFields {
			searchGroup.Filters = append(searchGroup.Filters, gDto.Filter{
				ArgName:  fmt.Sprintf("search_%d", i),
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    search,
				Table:    table,
			})
		}

		filterGroup.Filters = append(filterGroup.Filters, searchGroup)
	}

	if dateFrom := query.Get(constant.RequestParamDateFrom); dateFrom != "" {
		if from, err := time.Parse(constant.DateOnlyFormat, dateFrom); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  constant.RequestParamDateFrom,
				Field:    constant.FieldCreatedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    table,
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
				Table:    table,
			})
		}
	}

	return filterGroup
}
