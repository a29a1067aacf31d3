package models

// SkillMatch scores a staff member's fitness for a service. It is computed
// on demand and never cached across requests, because skills can change
// between calls.
type SkillMatch struct {
	StaffID              string   `json:"staffId"`
	MatchScore           float64  `json:"matchScore"` // 0-100
	HasAllRequiredSkills bool     `json:"hasAllRequiredSkills"`
	MissingSkills        []string `json:"missingSkills,omitempty"`
	OverqualifiedSkills  []string `json:"overqualifiedSkills,omitempty"`
}

// ServiceMatch pairs a service with the match a staff member scores for it.
type ServiceMatch struct {
	Service Service    `json:"service"`
	Match   SkillMatch `json:"match"`
}

// SkillRecommendation ranks a skill by how many services learning it would
// newly unlock for a staff member.
type SkillRecommendation struct {
	Skill            string   `json:"skill"`
	ServicesUnlocked int      `json:"servicesUnlocked"`
	ServiceIDs       []string `json:"serviceIds"`
}

// GapAnalysis is the result of the "one skill away" search for a staff member.
type GapAnalysis struct {
	StaffID         string                `json:"staffId"`
	Recommendations []SkillRecommendation `json:"recommendations"` // top 5, ranked by services unlocked
}
