package severity

import (
	"testing"

	"quiz-integrity-service/internal/models"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name          string
		violationType string
		count         int
		expected      string
	}{
		{"tab switch single", models.ViolationTabSwitch, 1, models.SeverityLow},
		{"tab switch boundary low", models.ViolationTabSwitch, 2, models.SeverityLow},
		{"tab switch medium", models.ViolationTabSwitch, 3, models.SeverityMedium},
		{"tab switch boundary medium", models.ViolationTabSwitch, 5, models.SeverityMedium},
		{"tab switch high", models.ViolationTabSwitch, 6, models.SeverityHigh},
		{"tab switch very high", models.ViolationTabSwitch, 50, models.SeverityHigh},
		{"focus loss single", models.ViolationPageFocusLoss, 1, models.SeverityLow},
		{"focus loss medium", models.ViolationPageFocusLoss, 2, models.SeverityMedium},
		{"focus loss boundary medium", models.ViolationPageFocusLoss, 3, models.SeverityMedium},
		{"focus loss high", models.ViolationPageFocusLoss, 4, models.SeverityHigh},
		{"devtools once", models.ViolationDevtools, 1, models.SeverityHigh},
		{"devtools any count", models.ViolationDevtools, 100, models.SeverityHigh},
		{"copy paste once", models.ViolationCopyPaste, 1, models.SeverityHigh},
		{"copy paste zero count", models.ViolationCopyPaste, 0, models.SeverityHigh},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.violationType, tc.count)
			if got != tc.expected {
				t.Errorf("Classify(%q, %d) = %q, expected %q", tc.violationType, tc.count, got, tc.expected)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		if got := Classify(models.ViolationTabSwitch, 6); got != models.SeverityHigh {
			t.Fatalf("run %d: expected high, got %q", i, got)
		}
	}
}
