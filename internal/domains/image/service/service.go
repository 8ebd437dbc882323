package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lagoon/config"
	"lagoon/infras/otel"
	"lagoon/infras/s3"
	"lagoon/internal/domains/image/model"
	"lagoon/internal/domains/image/model/dto"
	"lagoon/internal/domains/image/store"
	"lagoon/shared/constant"
	"lagoon/shared/failure"
	"lagoon/shared/timezone"
)

type Image interface {
	Upload(ctx context.Context, req dto.UploadImageRequest) (dto.ImageResponse, error)
	GetAll(ctx context.Context, category string) (dto.GetImagesResponse, error)
	Get(ctx context.Context, id string) (dto.ImageResponse, error)
	Download(ctx context.Context, id string) (data []byte, mimeType string, err error)
	Update(ctx context.Context, req dto.UpdateImageRequest, id string) (dto.ImageResponse, error)
	Delete(ctx context.Context, id string) error
	DeleteBulk(ctx context.Context, req dto.DeleteImagesRequest) (dto.DeleteImagesResponse, error)
}

type serviceImpl struct {
	store store.Store
	s3    s3.S3
	cfg   *config.Config
	otel  otel.Otel
}

func New(store store.Store, s3 s3.S3, cfg *config.Config, otel otel.Otel) Image {
	return &serviceImpl{
		store: store,
		s3:    s3,
		cfg:   cfg,
		otel:  otel,
	}
}

// Upload stores the file bytes on S3 and keeps the metadata in the local
// store. The stored file name is a fresh uuid so uploads never collide,
// whatever the client named the file.
func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	maxBytes := int64(s.cfg.Image.MaxUploadSizeMB * 1024 * 1024)
	if req.File.Size > maxBytes {
		return res, failure.BadRequestFromString( // nolint:wrapcheck
			fmt.Sprintf("file exceeds the maximum upload size of %.0f MB", s.cfg.Image.MaxUploadSizeMB))
	}

	reader := req.FileReader
	if reader == nil {
		reader, err = req.File.Open()
		if err != nil {
			log.Error().Err(err).Msg("failed to open uploaded file")

			return res, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer reader.Close()
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	mimeType := req.File.Header.Get(constant.RequestHeaderContentType)

	id := uuid.NewString()
	fileName := id + strings.ToLower(path.Ext(req.File.Filename))

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.S3Directory, fileName, mimeType, reader)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	now := timezone.Now()
	image := model.Image{
		ID:           id,
		FileName:     fileName,
		OriginalName: req.File.Filename,
		MimeType:     mimeType,
		Size:         req.File.Size,
		Category:     req.Category,
		Description:  req.Description,
		UploadedBy:   user,
		URL:          url,
		UploadedAt:   now,
		ModifiedAt:   now,
	}

	s.store.Insert(image)

	res.FromModel(image)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, category string) (res dto.GetImagesResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()

	res.FromModels(s.store.List(category))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	image, ok := s.store.Get(id)
	if !ok {
		return res, failure.NotFound("image not found") // nolint:wrapcheck
	}

	res.FromModel(image)

	return res, nil
}

// Download fetches the raw file bytes for serving. The mime type comes from
// the metadata recorded at upload time, not from S3.
func (s *serviceImpl) Download(ctx context.Context, id string) (data []byte, mimeType string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Download")
	defer scope.End()
	defer scope.TraceIfError(err)

	image, ok := s.store.Get(id)
	if !ok {
		return nil, constant.Empty, failure.NotFound("image not found") // nolint:wrapcheck
	}

	data, _, err = s.s3.DownloadFile(ctx, s.cfg.External.S3.BucketName, model.S3Directory, image.FileName)
	if err != nil {
		log.Error().Err(err).Str("fileName", image.FileName).Msg("failed to download image")

		return nil, constant.Empty, fmt.Errorf("failed to download image: %w", err)
	}

	return data, image.MimeType, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateImageRequest, id string) (res dto.ImageResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateImageRequest{}) {
		return res, failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	image, ok := s.store.Get(id)
	if !ok {
		return res, failure.NotFound("image not found") // nolint:wrapcheck
	}

	if req.Category != constant.Empty {
		image.Category = req.Category
	}

	if req.Description != constant.Empty {
		image.Description = req.Description
	}

	image.ModifiedAt = timezone.Now()

	s.store.Update(image)

	res.FromModel(image)

	return res, nil
}

// Delete removes the metadata first so a repeated delete of the same id is a
// clean not-found. A failed S3 delete only logs; the object is orphaned, not
// resurrected.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	image, ok := s.store.Get(id)
	if !ok {
		return failure.NotFound("image not found") // nolint:wrapcheck
	}

	s.store.Delete(id)

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.S3Directory, image.FileName); err != nil {
		log.Error().Err(err).Str("fileName", image.FileName).Msg("failed to delete image object")
	}

	return nil
}

// DeleteBulk removes every listed image. Unknown ids are skipped, so the
// response reports how many were actually deleted.
func (s *serviceImpl) DeleteBulk(ctx context.Context, req dto.DeleteImagesRequest) (res dto.DeleteImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBulk")
	defer scope.End()

	for _, id := range req.IDs {
		image, ok := s.store.Get(id)
		if !ok {
			continue
		}

		s.store.Delete(id)

		if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.S3Directory, image.FileName); err != nil {
			log.Error().Err(err).Str("fileName", image.FileName).Msg("failed to delete image object")
		}

		res.Deleted++
	}

	return res, nil
}
