package store

import (
	"sort"
	"sync"

	"lagoon/internal/domains/image/model"
)

// Store holds image metadata. The in-memory implementation is process-local
// and lost on restart; a persistent backend can replace it without touching
// the service layer.
type Store interface {
	Insert(image model.Image)
	Get(id string) (model.Image, bool)
	List(category string) []model.Image
	Update(image model.Image) bool
	Delete(id string) bool
}

type memoryStore struct {
	mu     sync.RWMutex
	images map[string]model.Image
}

func NewMemoryStore() Store {
	return &memoryStore{
		images: make(map[string]model.Image),
	}
}

func (s *memoryStore) Insert(image model.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.images[image.ID] = image
}

func (s *memoryStore) Get(id string) (model.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	image, ok := s.images[id]

	return image, ok
}

// List returns images newest-first, optionally restricted to one category.
func (s *memoryStore) List(category string) []model.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()

	images := make([]model.Image, 0, len(s.images))

	for _, image := range s.images {
		if category != "" && image.Category != category {
			continue
		}

		images = append(images, image)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].UploadedAt.After(images[j].UploadedAt)
	})

	return images
}

func (s *memoryStore) Update(image model.Image) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.images[image.ID]; !ok {
		return false
	}

	s.images[image.ID] = image

	return true
}

func (s *memoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.images[id]; !ok {
		return false
	}

	delete(s.images, id)

	return true
}
