package adaptive

import "testing"

func TestEvaluateStreak(t *testing.T) {
	tests := []struct {
		name       string
		outcome    Outcome
		seconds    int
		prior      int
		wantStreak int
		wantMult   float64
	}{
		{"unknown resets", OutcomeUnknown, 3, 7, 0, 1},
		{"incorrect resets", OutcomeIncorrect, 3, 7, 0, 1},
		{"none resets", OutcomeNone, 0, 4, 0, 1},
		{"instant correct", OutcomeCorrect, 0, 0, 3, 3},
		{"5s boundary is fastest tier", OutcomeCorrect, 5, 1, 4, 3},
		{"6s second tier", OutcomeCorrect, 6, 1, 3, 2},
		{"10s boundary", OutcomeCorrect, 10, 0, 2, 2},
		{"12s one and a half", OutcomeCorrect, 12, 2, 3, 1.5},
		{"15s boundary", OutcomeCorrect, 15, 0, 1, 1.5},
		{"16s no bonus", OutcomeCorrect, 16, 5, 6, 1},
		{"19s no bonus", OutcomeCorrect, 19, 5, 6, 1},
		{"20s slow reset", OutcomeCorrect, 20, 9, 1, 0},
		{"very slow reset", OutcomeCorrect, 300, 0, 1, 0},
		{"negative seconds clamp", OutcomeCorrect, -4, 0, 3, 3},
		{"negative prior clamp", OutcomeCorrect, 8, -3, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateStreak(tt.outcome, tt.seconds, tt.prior)
			if got.Streak != tt.wantStreak {
				t.Errorf("Streak = %d, want %d", got.Streak, tt.wantStreak)
			}
			if got.Multiplier != tt.wantMult {
				t.Errorf("Multiplier = %v, want %v", got.Multiplier, tt.wantMult)
			}
		})
	}
}

func TestEvaluateStreak_SlowCorrectAlwaysOne(t *testing.T) {
	for seconds := 20; seconds <= 60; seconds += 7 {
		for prior := 0; prior <= 12; prior += 3 {
			got := EvaluateStreak(OutcomeCorrect, seconds, prior)
			if got.Streak != 1 || !got.SlowReset() {
				t.Fatalf("EvaluateStreak(correct, %d, %d) = %+v, want streak 1 with slow reset", seconds, prior, got)
			}
		}
	}
}

func TestEvaluateStreak_FastCorrectAddsThree(t *testing.T) {
	for seconds := 0; seconds <= 5; seconds++ {
		for prior := 0; prior <= 10; prior++ {
			got := EvaluateStreak(OutcomeCorrect, seconds, prior)
			if got.Streak-prior != 3 {
				t.Fatalf("increase at %ds from %d = %d, want 3", seconds, prior, got.Streak-prior)
			}
		}
	}
}

func TestEvaluateStreak_WrongOrUnknownAlwaysZero(t *testing.T) {
	for _, o := range []Outcome{OutcomeIncorrect, OutcomeUnknown} {
		for seconds := 0; seconds <= 40; seconds += 5 {
			got := EvaluateStreak(o, seconds, 10)
			if got.Streak != 0 || got.Multiplier != 1 {
				t.Fatalf("EvaluateStreak(%s, %d, 10) = %+v, want {0 1}", o, seconds, got)
			}
		}
	}
}

func TestStreakResult_Label(t *testing.T) {
	tests := []struct {
		r    StreakResult
		want string
	}{
		{StreakResult{Streak: 1, Multiplier: 0}, "too slow, streak reset to 1"},
		{StreakResult{Streak: 3, Multiplier: 3}, "x3 speed bonus"},
		{StreakResult{Streak: 2, Multiplier: 1.5}, "x1.5 speed bonus"},
		{StreakResult{Streak: 0, Multiplier: 1}, "no bonus"},
	}
	for _, tt := range tests {
		if got := tt.r.Label(); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}
