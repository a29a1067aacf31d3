package staffRepo

import (
	"context"
	"sort"
	"sync"

	"slotwise/models"
)

// MemoryStaffRepo is the in-memory reference implementation, used by tests.
type MemoryStaffRepo struct {
	mu    sync.RWMutex
	staff map[string]models.Staff
}

func NewMemoryStaffRepo() *MemoryStaffRepo {
	return &MemoryStaffRepo{staff: make(map[string]models.Staff)}
}

func (repo *MemoryStaffRepo) GetByID(_ context.Context, id string) (*models.Staff, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	st, ok := repo.staff[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &st, nil
}

func (repo *MemoryStaffRepo) GetActive(_ context.Context) ([]models.Staff, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var out []models.Staff
	for _, st := range repo.staff {
		if st.IsActive {
			out = append(out, st)
		}
	}
	sortByID(out)
	return out, nil
}

func (repo *MemoryStaffRepo) GetWithSkills(_ context.Context, skills []string) ([]models.Staff, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var out []models.Staff
	for _, st := range repo.staff {
		if !st.IsActive {
			continue
		}
		hasAll := true
		for _, skill := range skills {
			if !st.HasSkill(skill) {
				hasAll = false
				break
			}
		}
		if hasAll {
			out = append(out, st)
		}
	}
	sortByID(out)
	return out, nil
}

func (repo *MemoryStaffRepo) Upsert(_ context.Context, staff *models.Staff) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.staff[staff.ID] = *staff
	return nil
}

func sortByID(staff []models.Staff) {
	sort.Slice(staff, func(i, j int) bool { return staff[i].ID < staff[j].ID })
}
