package contact

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lagoon/infras/otel"
	"lagoon/internal/domains/contact/model"
	"lagoon/internal/domains/contact/model/dto"
	"lagoon/internal/domains/contact/service"
	"lagoon/permissions"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/validator"
	"lagoon/transport/http/middleware"
	"lagoon/transport/http/response"
)

type Handler struct {
	service service.Contact
	mw      middleware.AuthRole
	otel    otel.Otel
}

func New(service service.Contact, mw middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service: service,
		mw:      mw,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contacts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)

		routerGroup.Group(func(private chi.Router) {
			private.Use(handler.mw.Auth)
			private.Use(handler.mw.RBAC(permissions.AdminOnly))

			private.Get("/", handler.GetContacts)
			private.Get("/{id}", handler.GetContactByID)
			private.Patch("/{id}/status", handler.UpdateContactStatus)
			private.Put("/{id}", handler.UpdateContactStatus)
			private.Post("/{id}/reply", handler.ReplyContact)
			private.Delete("/{id}", handler.DeleteContact)
		})
	})
}

// CreateContact handles a public contact form submission.
// @Summary Submit a contact message
// @Description Submit a contact message. No authentication required.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Create Contact Request"
// @Success 201 {object} response.Data[dto.PublicContactResponse] "Contact created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts [post]
func (handler *Handler) CreateContact(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Contact created successfully with code " + res.Code)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetContacts retrieves all contact messages based on query parameters.
// @Summary Get all contacts
// @Description Retrieve all contact messages with optional filtering and pagination.
// @Tags Contact
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (new, read, replied, resolved)"
// @Param priority query string false "Filter by priority (low, medium, high, urgent)"
// @Param subject query string false "Filter by subject"
// @Param search query string false "Substring search across name, email, code and message"
// @Param date_from query string false "Creation lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Creation upper bound (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetContactsResponse] "List of contacts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts [get]
// @Security BearerAuth
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	contacts, err := handler.service.GetAll(ctx, queryParams, listFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contacts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contacts retrieved successfully")

	response.WithJSON(w, http.StatusOK, contacts)
}

// GetContactByID retrieves a contact message. Fetching a message still in the
// new status marks it as read.
// @Summary Get a contact message
// @Description Retrieve a contact message by code or id. A new message is marked read on first fetch.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact code or ID"
// @Success 200 {object} response.Data[dto.ContactResponse] "Contact details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContactByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	contact, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact retrieved successfully")

	response.WithJSON(w, http.StatusOK, contact)
}

// UpdateContactStatus updates status and priority of a contact message.
// @Summary Update contact status
// @Description Change a contact message's status or priority.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactStatusRequest true "Update Contact Status Request"
// @Success 200 {object} response.Message "Contact updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContactStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateContactStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Contact updated successfully")
}

// ReplyContact records an admin response on a contact message.
// @Summary Reply to a contact message
// @Description Record an admin response, stamping the responder and forcing status to replied.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.ReplyContactRequest true "Reply Contact Request"
// @Success 200 {object} response.Message "Reply recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id}/reply [post]
// @Security BearerAuth
func (handler *Handler) ReplyContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplyContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ReplyContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reply(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reply to contact")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact replied successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Reply recorded successfully")
}

// DeleteContact deletes a contact message by its ID.
// @Summary Delete a contact message
// @Description Remove a contact message.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Message "Contact deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Contact deleted successfully")
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

	if priority := query.Get(model.FieldPriority); priority != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPriority,
			Operator: gDto.FilterOperatorEq,
			Value:    priority,
			Table:    model.TableName,
		})
	}

	if subject := query.Get(model.FieldSubject); subject != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSubject,
			Operator: gDto.FilterOperatorEq,
			Value:    subject,
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
