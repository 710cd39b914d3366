package enrich

// ScoreInput holds the fields that feed the transparency score.
type ScoreInput struct {
	Name           string
	Mission        string
	Description    string
	Email          string
	Phone          string
	Website        string
	Address        string
	City           string
	State          string
	RegistrationNo string
	Verified       bool
}

// Score computes the completeness-based transparency score in [0,100].
// It is a pure function of its input: the same snapshot always scores the same.
func Score(in ScoreInput) int {
	score := 0

	// Basic info (30 points)
	if in.Name != "" {
		score += 5
	}
	if in.Mission != "" {
		score += 10
	}
	if in.Description != "" {
		score += 15
	}

	// Contact info (20 points)
	if in.Email != "" {
		score += 10
	}
	if in.Phone != "" {
		score += 5
	}
	if in.Website != "" {
		score += 5
	}

	// Location (20 points)
	if in.Address != "" {
		score += 10
	}
	if in.City != "" && in.State != "" {
		score += 10
	}

	// Verification (30 points)
	if in.RegistrationNo != "" {
		score += 20
	}
	if in.Verified {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
