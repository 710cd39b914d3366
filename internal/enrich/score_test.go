package enrich

import "testing"

// TestScore_Empty tests that a bare record scores zero
func TestScore_Empty(t *testing.T) {
	if got := Score(ScoreInput{}); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

// TestScore_Complete tests that a fully populated record hits the cap
func TestScore_Complete(t *testing.T) {
	in := ScoreInput{
		Name:           "Helping Hands",
		Mission:        "help",
		Description:    "desc",
		Email:          "a@b.org",
		Phone:          "123",
		Website:        "https://example.org",
		Address:        "1 Main St",
		City:           "Pune",
		State:          "Maharashtra",
		RegistrationNo: "REG-1",
		Verified:       true,
	}
	if got := Score(in); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}
}

// TestScore_Deterministic tests that scoring the same snapshot twice agrees
func TestScore_Deterministic(t *testing.T) {
	in := ScoreInput{Name: "X", Mission: "m", Email: "x@y.org", City: "Delhi"}
	if Score(in) != Score(in) {
		t.Error("Expected identical scores for identical input")
	}
}

// TestScore_Rubric walks the individual field weights
func TestScore_Rubric(t *testing.T) {
	cases := []struct {
		name string
		in   ScoreInput
		want int
	}{
		{"name only", ScoreInput{Name: "X"}, 5},
		{"mission only", ScoreInput{Mission: "m"}, 10},
		{"description only", ScoreInput{Description: "d"}, 15},
		{"email only", ScoreInput{Email: "e"}, 10},
		{"phone only", ScoreInput{Phone: "p"}, 5},
		{"website only", ScoreInput{Website: "w"}, 5},
		{"address only", ScoreInput{Address: "a"}, 10},
		{"city without state", ScoreInput{City: "c"}, 0},
		{"city and state", ScoreInput{City: "c", State: "s"}, 10},
		{"registration only", ScoreInput{RegistrationNo: "r"}, 20},
		{"verified only", ScoreInput{Verified: true}, 10},
	}

	for _, tc := range cases {
		if got := Score(tc.in); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
