package matching

import (
	"context"
	"fmt"
	"sort"

	"slotwise/models"
)

const maxRecommendations = 5

// SkillGapAnalysis runs the "one skill away" search: for each skill the
// staff member is missing, count the active services where that skill is
// the only remaining gap. The top skills by services unlocked become the
// recommendations.
func (e *DefaultEngine) SkillGapAnalysis(ctx context.Context, staffID string) (*models.GapAnalysis, error) {
	staff, err := e.StaffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staff %s: %w", staffID, err)
	}

	services, err := e.ServiceRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active services: %w", err)
	}

	unlocked := make(map[string][]string) // candidate skill -> service ids it would unlock
	for _, service := range services {
		var missing []string
		for _, skill := range service.RequiredSkills {
			if !staff.HasSkill(skill) {
				missing = append(missing, skill)
			}
		}
		// Exactly one missing skill means learning it unlocks the service:
		// every other required skill is already held.
		if len(missing) == 1 {
			unlocked[missing[0]] = append(unlocked[missing[0]], service.ID)
		}
	}

	recommendations := make([]models.SkillRecommendation, 0, len(unlocked))
	for skill, serviceIDs := range unlocked {
		sort.Strings(serviceIDs)
		recommendations = append(recommendations, models.SkillRecommendation{
			Skill:            skill,
			ServicesUnlocked: len(serviceIDs),
			ServiceIDs:       serviceIDs,
		})
	}
	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].ServicesUnlocked == recommendations[j].ServicesUnlocked {
			return recommendations[i].Skill < recommendations[j].Skill
		}
		return recommendations[i].ServicesUnlocked > recommendations[j].ServicesUnlocked
	})
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return &models.GapAnalysis{StaffID: staffID, Recommendations: recommendations}, nil
}
