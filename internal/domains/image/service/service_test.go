package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lagoon/config"
	otelMocks "lagoon/infras/otel/mocks"
	s3Mocks "lagoon/infras/s3/mocks"
	"lagoon/internal/domains/image/model"
	"lagoon/internal/domains/image/model/dto"
	"lagoon/internal/domains/image/service"
	"lagoon/internal/domains/image/store"
	"lagoon/shared/constant"
	"lagoon/shared/failure"
	"lagoon/shared/timezone"
)

type fileReader struct {
	*bytes.Reader
}

func (fileReader) Close() error { return nil }

func newService(t *testing.T) (service.Image, store.Store, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	s3Mock := s3Mocks.NewMockS3(ctrl)
	imageStore := store.NewMemoryStore()

	cfg := &config.Config{}
	cfg.Image.MaxUploadSizeMB = 5
	cfg.External.S3.BucketName = "lagoon-media"

	svc := service.New(imageStore, s3Mock, cfg, otelMocks.NewOtel())

	return svc, imageStore, s3Mock
}

func uploadRequest(name string, size int64) dto.UploadImageRequest {
	return dto.UploadImageRequest{
		File: &multipart.FileHeader{
			Filename: name,
			Size:     size,
			Header: textproto.MIMEHeader{
				constant.RequestHeaderContentType: []string{"image/jpeg"},
			},
		},
		FileReader: fileReader{bytes.NewReader([]byte("jpeg-bytes"))},
		Category:   model.CategoryRooms,
	}
}

func adminCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")
}

func TestImageUpload(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, imageStore, s3Mock := newService(t)

		s3Mock.EXPECT().
			UploadFile(gomock.Any(), "lagoon-media", model.S3Directory, gomock.Any(), "image/jpeg", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, fileName, _ string, _ any) (string, error) {
				assert.Regexp(t, `^[0-9a-f-]{36}\.jpg$`, fileName)

				return "https://lagoon-media.s3.ap-southeast-1.amazonaws.com/images/" + fileName, nil
			})

		res, err := svc.Upload(adminCtx(), uploadRequest("pool.JPG", 1024))
		require.NoError(t, err)

		assert.Equal(t, "pool.JPG", res.OriginalName)
		assert.Equal(t, "admin", res.UploadedBy)
		assert.Equal(t, model.CategoryRooms, res.Category)
		assert.NotEmpty(t, res.URL)

		stored, ok := imageStore.Get(res.ID)
		require.True(t, ok)
		assert.Equal(t, res.FileName, stored.FileName)
	})

	t.Run("file too large", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		_, err := svc.Upload(adminCtx(), uploadRequest("huge.jpg", 6*1024*1024))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("s3 failure", func(t *testing.T) {
		t.Parallel()

		svc, imageStore, s3Mock := newService(t)

		s3Mock.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket unreachable"))

		_, err := svc.Upload(adminCtx(), uploadRequest("pool.jpg", 1024))
		require.Error(t, err)
		assert.Empty(t, imageStore.List(""))
	})
}

func TestImageDownload(t *testing.T) {
	t.Parallel()

	t.Run("serves stored mime type", func(t *testing.T) {
		t.Parallel()

		svc, imageStore, s3Mock := newService(t)

		imageStore.Insert(model.Image{
			ID:       "img-1",
			FileName: "img-1.png",
			MimeType: "image/png",
		})

		s3Mock.EXPECT().
			DownloadFile(gomock.Any(), "lagoon-media", model.S3Directory, "img-1.png").
			Return([]byte("png-bytes"), "application/octet-stream", nil)

		data, mimeType, err := svc.Download(context.Background(), "img-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
		assert.Equal(t, "image/png", mimeType)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		_, _, err := svc.Download(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestImageUpdate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc, imageStore, _ := newService(t)

		imageStore.Insert(model.Image{ID: "img-1", Category: model.CategoryGeneral, UploadedAt: timezone.Now()})

		res, err := svc.Update(context.Background(), dto.UpdateImageRequest{
			Category:    model.CategoryDining,
			Description: "breakfast buffet",
		}, "img-1")
		require.NoError(t, err)
		assert.Equal(t, model.CategoryDining, res.Category)
		assert.Equal(t, "breakfast buffet", res.Description)
	})

	t.Run("empty request", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		_, err := svc.Update(context.Background(), dto.UpdateImageRequest{}, "img-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t)

		_, err := svc.Update(context.Background(), dto.UpdateImageRequest{Category: model.CategoryRooms}, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestImageDelete(t *testing.T) {
	t.Parallel()

	t.Run("second delete is not found", func(t *testing.T) {
		t.Parallel()

		svc, imageStore, s3Mock := newService(t)

		imageStore.Insert(model.Image{ID: "img-1", FileName: "img-1.jpg"})

		s3Mock.EXPECT().
			DeleteFile(gomock.Any(), "lagoon-media", model.S3Directory, "img-1.jpg").
			Return(nil)

		require.NoError(t, svc.Delete(context.Background(), "img-1"))

		err := svc.Delete(context.Background(), "img-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("metadata removed even when s3 delete fails", func(t *testing.T) {
		t.Parallel()

		svc, imageStore, s3Mock := newService(t)

		imageStore.Insert(model.Image{ID: "img-1", FileName: "img-1.jpg"})

		s3Mock.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("object already gone"))

		require.NoError(t, svc.Delete(context.Background(), "img-1"))

		_, ok := imageStore.Get("img-1")
		assert.False(t, ok)
	})
}

func TestImageDeleteBulk(t *testing.T) {
	t.Parallel()

	svc, imageStore, s3Mock := newService(t)

	imageStore.Insert(model.Image{ID: "img-1", FileName: "img-1.jpg"})
	imageStore.Insert(model.Image{ID: "img-2", FileName: "img-2.jpg"})

	s3Mock.EXPECT().
		DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)

	res, err := svc.DeleteBulk(context.Background(), dto.DeleteImagesRequest{
		IDs: []string{"img-1", "missing", "img-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)
	assert.Empty(t, imageStore.List(""))
}

func TestImageGetAll(t *testing.T) {
	t.Parallel()

	svc, imageStore, _ := newService(t)

	imageStore.Insert(model.Image{ID: "img-1", Category: model.CategoryRooms, UploadedAt: timezone.Now()})
	imageStore.Insert(model.Image{ID: "img-2", Category: model.CategoryDining, UploadedAt: timezone.Now()})

	all, err := svc.GetAll(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalData)

	dining, err := svc.GetAll(context.Background(), model.CategoryDining)
	require.NoError(t, err)
	require.Len(t, dining.Images, 1)
	assert.Equal(t, "img-2", dining.Images[0].ID)
}
