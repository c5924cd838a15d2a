package types

// MatchResult is the outcome of scoring one candidate against one job. It is
// a derived value: recomputed on each request and owned by the caller, except
// for the snapshot an Application persists at submission time.
type MatchResult struct {
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	SkillScore      float64  `json:"skill_score"`
	SemanticScore   float64  `json:"semantic_score"`
	MatchPercentage float64  `json:"match_percentage"`

	// ExperienceMet records whether the candidate meets the job's minimum
	// experience. It never feeds the score; ranking uses it as a tie-break.
	ExperienceMet bool `json:"experience_met"`

	// Degraded marks results computed without the semantic scorer (skill
	// ratio only).
	Degraded bool `json:"degraded,omitempty"`
}

// ScoredCandidate pairs a candidate with a fresh MatchResult for a job.
type ScoredCandidate struct {
	Candidate CandidateProfile `json:"candidate"`
	Result    MatchResult      `json:"result"`
}

// ScoredJob pairs a job with a fresh MatchResult for a candidate.
type ScoredJob struct {
	Job    JobRequirement `json:"job"`
	Result MatchResult    `json:"result"`
}
