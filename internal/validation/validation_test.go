package validation

import (
	"testing"

	"github.com/oskarlind/dayqueue/internal/models"
)

func TestValidateInput(t *testing.T) {
	est := 30
	negEst := -5

	tests := []struct {
		name       string
		in         Input
		wantValid  bool
		wantReason string
	}{
		{
			name:      "valid scheduled",
			in:        Input{Description: "run", Kind: models.KindScheduled, StartTime: "09:00", DurationMin: 30},
			wantValid: true,
		},
		{
			name:      "valid unscheduled with defaults",
			in:        Input{Description: "someday", Kind: models.KindUnscheduled},
			wantValid: true,
		},
		{
			name:      "valid unscheduled with est duration",
			in:        Input{Description: "someday", Kind: models.KindUnscheduled, Priority: models.PriorityHigh, EstDuration: &est},
			wantValid: true,
		},
		{
			name:       "empty description",
			in:         Input{Description: "   ", Kind: models.KindScheduled, StartTime: "09:00"},
			wantValid:  false,
			wantReason: "Task description is required.",
		},
		{
			name:       "unknown kind",
			in:         Input{Description: "x", Kind: models.Kind("bogus")},
			wantValid:  false,
			wantReason: "Invalid task type.",
		},
		{
			name:       "negative duration",
			in:         Input{Description: "x", Kind: models.KindScheduled, StartTime: "09:00", DurationMin: -1},
			wantValid:  false,
			wantReason: "Duration must be a non-negative number for scheduled tasks.",
		},
		{
			name:       "missing start time",
			in:         Input{Description: "x", Kind: models.KindScheduled, StartTime: ""},
			wantValid:  false,
			wantReason: "Start time is required for scheduled tasks.",
		},
		{
			name:       "malformed start time",
			in:         Input{Description: "x", Kind: models.KindScheduled, StartTime: "9am"},
			wantValid:  false,
			wantReason: "Invalid start time format. Use HH:MM format.",
		},
		{
			name:       "invalid priority",
			in:         Input{Description: "x", Kind: models.KindUnscheduled, Priority: models.Priority("urgent")},
			wantValid:  false,
			wantReason: "Invalid priority. Use high, medium, or low.",
		},
		{
			name:       "negative est duration",
			in:         Input{Description: "x", Kind: models.KindUnscheduled, EstDuration: &negEst},
			wantValid:  false,
			wantReason: "Estimated duration must be a non-negative number for unscheduled tasks.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateInput(tt.in)
			if got.Valid != tt.wantValid {
				t.Fatalf("ValidateInput(%+v).Valid = %v, want %v", tt.in, got.Valid, tt.wantValid)
			}
			if !tt.wantValid && got.Reason != tt.wantReason {
				t.Errorf("ValidateInput(%+v).Reason = %q, want %q", tt.in, got.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateIndex(t *testing.T) {
	tests := []struct {
		name string
		i, n int
		want bool
	}{
		{"in range", 0, 3, true},
		{"last valid", 2, 3, true},
		{"negative", -1, 3, false},
		{"equal to length", 3, 3, false},
		{"empty collection", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateIndex(tt.i, tt.n).Valid; got != tt.want {
				t.Errorf("ValidateIndex(%d, %d) = %v, want %v", tt.i, tt.n, got, tt.want)
			}
		})
	}
}
