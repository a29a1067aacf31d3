package serviceRepo

import (
	"context"
	"sort"
	"sync"

	"slotwise/models"
)

// MemoryServiceRepo is the in-memory reference implementation, used by tests.
type MemoryServiceRepo struct {
	mu       sync.RWMutex
	services map[string]models.Service
}

func NewMemoryServiceRepo() *MemoryServiceRepo {
	return &MemoryServiceRepo{services: make(map[string]models.Service)}
}

func (repo *MemoryServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	svc, ok := repo.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &svc, nil
}

func (repo *MemoryServiceRepo) GetActive(_ context.Context) ([]models.Service, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var out []models.Service
	for _, svc := range repo.services {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (repo *MemoryServiceRepo) Upsert(_ context.Context, service *models.Service) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.services[service.ID] = *service
	return nil
}
