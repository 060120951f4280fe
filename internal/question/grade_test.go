package question

import "testing"

func TestGrade(t *testing.T) {
	spec := loadValidSpec(t)
	cases := []struct {
		name    string
		answers map[string]string
		score   int
		percent int
	}{
		{name: "all correct", answers: map[string]string{"q1": "2", "q2": "1"}, score: 8, percent: 100},
		{name: "partial", answers: map[string]string{"q1": " 2 ", "q2": "3"}, score: 3, percent: 38},
		{name: "unanswered", answers: map[string]string{}, score: 0, percent: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Grade(spec, tc.answers)
			if err != nil {
				t.Fatalf("grade: %v", err)
			}
			if result.MaxScore != 8 {
				t.Fatalf("expected max score 8, got %d", result.MaxScore)
			}
			if result.Score != tc.score {
				t.Fatalf("expected score %d, got %d", tc.score, result.Score)
			}
			if result.Percent() != tc.percent {
				t.Fatalf("expected percent %d, got %d", tc.percent, result.Percent())
			}
			if len(result.Questions) != 2 {
				t.Fatalf("expected 2 question grades, got %d", len(result.Questions))
			}
		})
	}
}

func TestGradeMarksUnanswered(t *testing.T) {
	result, err := Grade(loadValidSpec(t), map[string]string{"q1": "2"})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !result.Questions[0].Correct || result.Questions[1].Answered {
		t.Fatalf("unexpected grades: %+v", result.Questions)
	}
}
