package matching

import (
	"context"
	"fmt"
	"sort"

	serviceRepo "slotwise/database/repository/service"
	staffRepo "slotwise/database/repository/staff"
	"slotwise/models"
)

// Options tune a matching query.
type Options struct {
	RequireAllSkills  bool    // hard-filter matches with less than full skill coverage
	MinimumMatchScore float64 // soft threshold; matches below are dropped
	PreferExactMatch  bool    // penalize extra skills instead of rewarding them
}

const (
	overqualifyBonusPerSkill  = 5.0
	overqualifyBonusCap       = 20.0
	exactMatchPenaltyPerSkill = 2.0
)

// Engine scores staff fitness for services based on skill overlap.
type Engine interface {
	FindQualifiedStaff(ctx context.Context, serviceID string, opts Options) ([]models.SkillMatch, error)
	FindServicesForStaff(ctx context.Context, staffID string, opts Options) ([]models.ServiceMatch, error)
	SkillGapAnalysis(ctx context.Context, staffID string) (*models.GapAnalysis, error)
}

// DefaultEngine implements Engine over the catalog and directory repositories.
type DefaultEngine struct {
	ServiceRepo serviceRepo.ServiceRepository
	StaffRepo   staffRepo.StaffRepository
}

func NewEngine(services serviceRepo.ServiceRepository, staff staffRepo.StaffRepository) *DefaultEngine {
	return &DefaultEngine{ServiceRepo: services, StaffRepo: staff}
}

// Score computes the skill match for one staff member against one service.
// A service with no required skills is open to all: every staff member
// scores 100 and is fully qualified.
func Score(staff models.Staff, service models.Service, opts Options) models.SkillMatch {
	match := models.SkillMatch{StaffID: staff.ID}

	required := service.RequiredSkills
	if len(required) == 0 {
		match.MatchScore = 100
		match.HasAllRequiredSkills = true
		match.OverqualifiedSkills = append([]string(nil), staff.Skills...)
		sort.Strings(match.OverqualifiedSkills)
		return match
	}

	requiredSet := make(map[string]bool, len(required))
	for _, skill := range required {
		requiredSet[skill] = true
	}

	held := 0
	for _, skill := range required {
		if staff.HasSkill(skill) {
			held++
		} else {
			match.MissingSkills = append(match.MissingSkills, skill)
		}
	}
	for _, skill := range staff.Skills {
		if !requiredSet[skill] {
			match.OverqualifiedSkills = append(match.OverqualifiedSkills, skill)
		}
	}
	sort.Strings(match.MissingSkills)
	sort.Strings(match.OverqualifiedSkills)

	score := float64(held) / float64(len(required)) * 100
	match.HasAllRequiredSkills = held == len(required)

	extras := float64(len(match.OverqualifiedSkills))
	if opts.PreferExactMatch {
		score -= extras * exactMatchPenaltyPerSkill
	} else if extras > 0 {
		bonus := extras * overqualifyBonusPerSkill
		if bonus > overqualifyBonusCap {
			bonus = overqualifyBonusCap
		}
		score += bonus
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	match.MatchScore = score
	return match
}

// FindQualifiedStaff scores every active staff member against the service,
// sorted by score descending with staff id as the deterministic tie-break.
func (e *DefaultEngine) FindQualifiedStaff(ctx context.Context, serviceID string, opts Options) ([]models.SkillMatch, error) {
	service, err := e.ServiceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service %s: %w", serviceID, err)
	}

	roster, err := e.StaffRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active staff: %w", err)
	}

	matches := make([]models.SkillMatch, 0, len(roster))
	for _, staff := range roster {
		match := Score(staff, *service, opts)
		if opts.RequireAllSkills && !match.HasAllRequiredSkills {
			continue
		}
		if match.MatchScore < opts.MinimumMatchScore {
			continue
		}
		matches = append(matches, match)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchScore == matches[j].MatchScore {
			return matches[i].StaffID < matches[j].StaffID
		}
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches, nil
}

// FindServicesForStaff is the symmetric query: every active service scored
// for one staff member, sorted descending.
func (e *DefaultEngine) FindServicesForStaff(ctx context.Context, staffID string, opts Options) ([]models.ServiceMatch, error) {
	staff, err := e.StaffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staff %s: %w", staffID, err)
	}

	services, err := e.ServiceRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active services: %w", err)
	}

	matches := make([]models.ServiceMatch, 0, len(services))
	for _, service := range services {
		match := Score(*staff, service, opts)
		if opts.RequireAllSkills && !match.HasAllRequiredSkills {
			continue
		}
		if match.MatchScore < opts.MinimumMatchScore {
			continue
		}
		matches = append(matches, models.ServiceMatch{Service: service, Match: match})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Match.MatchScore == matches[j].Match.MatchScore {
			return matches[i].Service.ID < matches[j].Service.ID
		}
		return matches[i].Match.MatchScore > matches[j].Match.MatchScore
	})
	return matches, nil
}
