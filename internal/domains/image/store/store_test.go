package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lagoon/internal/domains/image/model"
	"lagoon/internal/domains/image/store"
)

func sample(id, category string, uploadedAt time.Time) model.Image {
	return model.Image{
		ID:         id,
		FileName:   id + ".jpg",
		MimeType:   "image/jpeg",
		Category:   category,
		UploadedAt: uploadedAt,
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()

	base := time.Now()
	s.Insert(sample("old", model.CategoryRooms, base.Add(-2*time.Hour)))
	s.Insert(sample("new", model.CategoryRooms, base))
	s.Insert(sample("mid", model.CategoryDining, base.Add(-time.Hour)))

	all := s.List("")
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)

	rooms := s.List(model.CategoryRooms)
	require.Len(t, rooms, 2)
	assert.Equal(t, "new", rooms[0].ID)
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	s.Insert(sample("a", model.CategoryGeneral, time.Now()))

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"), "second delete of the same id must report missing")

	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestMemoryStoreUpdate(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	img := sample("a", model.CategoryGeneral, time.Now())
	s.Insert(img)

	img.Description = "pool at dusk"
	require.True(t, s.Update(img))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "pool at dusk", got.Description)

	assert.False(t, s.Update(model.Image{ID: "missing"}))
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()

	done := make(chan struct{})

	go func() {
		defer close(done)

		for i := 0; i < 100; i++ {
			s.Insert(sample(string(rune('a'+i%26)), model.CategoryGeneral, time.Now()))
		}
	}()

	for i := 0; i < 100; i++ {
		s.List("")
	}

	<-done
}
