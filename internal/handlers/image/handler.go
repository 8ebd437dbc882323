package image

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lagoon/infras/otel"
	"lagoon/internal/domains/image/model/dto"
	"lagoon/internal/domains/image/service"
	"lagoon/permissions"
	"lagoon/shared/constant"
	"lagoon/shared/failure"
	"lagoon/shared/validator"
	"lagoon/transport/http/middleware"
	"lagoon/transport/http/response"
)

type Handler struct {
	service service.Image
	mw      middleware.AuthRole
	otel    otel.Otel
}

func New(service service.Image, mw middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service: service,
		mw:      mw,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/images", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}/file", handler.ServeImageFile)

		routerGroup.Group(func(private chi.Router) {
			private.Use(handler.mw.Auth)
			private.Use(handler.mw.RBAC(permissions.AdminOnly))

			private.Post("/", handler.UploadImage)
			private.Get("/", handler.GetImages)
			private.Get("/{id}", handler.GetImageByID)
			private.Patch("/{id}", handler.UpdateImage)
			private.Delete("/{id}", handler.DeleteImage)
			private.Delete("/", handler.DeleteImages)
		})
	})
}

// UploadImage handles a multipart image upload.
// @Summary Upload an image
// @Description Upload an image file with category and description metadata.
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file (max 5 MB)"
// @Param category formData string true "Category (rooms, amenities, dining, events, general)"
// @Param description formData string false "Description"
// @Success 201 {object} response.Data[dto.ImageResponse] "Image uploaded"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequestFromString("missing file field"))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		File:        fileHeader,
		FileReader:  file,
		Category:    r.FormValue(constant.FormCategory),
		Description: r.FormValue(constant.FormDescription),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate upload request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetImages lists image metadata, optionally restricted to one category.
// @Summary Get all images
// @Description Retrieve image metadata, newest first, optionally filtered by category.
// @Tags Image
// @Accept json
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} response.Data[dto.GetImagesResponse] "List of images"
// @Failure 500 {object} response.Error
// @Router /v1/images [get]
// @Security BearerAuth
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	category := r.URL.Query().Get(constant.RequestParamCategory)

	images, err := handler.service.GetAll(ctx, category)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get images")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Images retrieved successfully")

	response.WithJSON(w, http.StatusOK, images)
}

// GetImageByID retrieves one image's metadata.
// @Summary Get an image
// @Description Retrieve image metadata by id.
// @Tags Image
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Data[dto.ImageResponse] "Image details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	image, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Image retrieved successfully")

	response.WithJSON(w, http.StatusOK, image)
}

// ServeImageFile streams the image bytes. Uploaded files never change, so the
// response carries a one-year cache header.
// @Summary Serve an image file
// @Description Stream the raw image bytes with its stored content type. No authentication required.
// @Tags Image
// @Produce octet-stream
// @Param id path string true "Image ID"
// @Success 200 {file} binary "Image bytes"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{id}/file [get]
func (handler *Handler) ServeImageFile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ServeImageFile")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	data, mimeType, err := handler.service.Download(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to serve image file")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Image file served successfully")

	w.Header().Set(constant.RequestHeaderCacheControl, constant.CacheControlImmutableYear)
	response.WithFile(w, mimeType, constant.Empty, data)
}

// UpdateImage edits image metadata.
// @Summary Update image metadata
// @Description Update the category or description of an image.
// @Tags Image
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Param request body dto.UpdateImageRequest true "Update Image Request"
// @Success 200 {object} response.Data[dto.ImageResponse] "Updated image"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteImage deletes one image and its backing file.
// @Summary Delete an image
// @Description Remove image metadata and the stored file. A repeated delete returns 404.
// @Tags Image
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Message "Image deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}

// DeleteImages deletes several images at once.
// @Summary Delete images in bulk
// @Description Remove multiple images by id. Unknown ids are skipped.
// @Tags Image
// @Accept json
// @Produce json
// @Param request body dto.DeleteImagesRequest true "Delete Images Request"
// @Success 200 {object} response.Data[dto.DeleteImagesResponse] "Deletion summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImages")
	defer scope.End()

	req := dto.DeleteImagesRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.DeleteBulk(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete images")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Images deleted successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
