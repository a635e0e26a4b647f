// Package severity classifies integrity violations. The mapping is a pure
// function of violation type and cumulative count so it can be tested
// without any storage dependency.
package severity

import "quiz-integrity-service/internal/models"

// Classify maps a violation report to a severity level.
//
// Devtools and copy/paste are always high: they are deliberate actions,
// not side effects of window management. Tab switches and focus loss
// escalate with repetition.
func Classify(violationType string, count int) string {
	switch violationType {
	case models.ViolationTabSwitch:
		if count > 5 {
			return models.SeverityHigh
		}
		if count > 2 {
			return models.SeverityMedium
		}
		return models.SeverityLow
	case models.ViolationPageFocusLoss:
		if count > 3 {
			return models.SeverityHigh
		}
		if count > 1 {
			return models.SeverityMedium
		}
		return models.SeverityLow
	case models.ViolationDevtools, models.ViolationCopyPaste:
		return models.SeverityHigh
	default:
		return models.SeverityLow
	}
}
