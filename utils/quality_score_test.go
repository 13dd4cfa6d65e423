package utils

import "testing"

func TestQualityScore(t *testing.T) {
	cases := []struct {
		name                                string
		calories, caloriesGoal              float64
		protein, proteinGoal                float64
		waterMl                             float64
		want                                float64
	}{
		{"no logged food", 0, 2000, 100, 150, 2000, 0},
		{"perfect day", 2000, 2000, 150, 150, 2000, 10},
		{"no water", 2000, 2000, 150, 150, 0, 9},
		{"half of everything", 1000, 2000, 75, 150, 1000, 7.8},
		{"zero calorie goal", 500, 0, 0, 150, 0, 5.5},
		{"heavy overshoot is capped", 5000, 2000, 400, 150, 2000, 8.7},
	}

	for _, c := range cases {
		got := QualityScore(c.calories, c.caloriesGoal, c.protein, c.proteinGoal, c.waterMl)
		if got != c.want {
			t.Errorf("%s: QualityScore(%v, %v, %v, %v, %v) = %v, want %v",
				c.name, c.calories, c.caloriesGoal, c.protein, c.proteinGoal, c.waterMl, got, c.want)
		}
	}
}

func TestQualityScoreBounds(t *testing.T) {
	// any day with food scores at least 1 and at most 10
	for cal := 100.0; cal <= 6000; cal += 700 {
		for wat := 0.0; wat <= 4000; wat += 1000 {
			got := QualityScore(cal, 2000, cal/15, 150, wat)
			if got < 1 || got > 10 {
				t.Fatalf("score out of bounds: QualityScore(%v, 2000, %v, 150, %v) = %v", cal, cal/15, wat, got)
			}
		}
	}
}
