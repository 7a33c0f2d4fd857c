package ui

import (
	"strings"

	apperrors "fixdesk/internal/errors"
)

// Dialog frame padding, matching styleOverlay.
const (
	overlayHPadding = 2
	overlayVPadding = 1

	// dialogWidth is the content width of confirmation and rename dialogs.
	dialogWidth = 44
)

// extractShortError returns the first line of an error, truncated.
func extractShortError(fullError string, maxLen int) string {
	msg := fullError
	if idx := strings.Index(msg, "\n"); idx >= 0 {
		msg = msg[:idx]
	}
	msg = strings.TrimSpace(msg)
	if len(msg) > maxLen && maxLen > 3 {
		msg = msg[:maxLen-3] + "..."
	}
	return msg
}

// errorTitle names the failure class for a toast headline.
func errorTitle(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeDuplicateName:
		return "Already exists"
	case apperrors.CodeInUse:
		return "Still in use"
	case apperrors.CodeInvalidName:
		return "Invalid name"
	case apperrors.CodeNotFound:
		return "Not found"
	case apperrors.CodeStorage:
		return "Storage error"
	}
	return "Error"
}

// dialogFooter renders key hints under a divider-width rule.
func dialogFooter(hints []footerHint, width int) string {
	return renderHints(trimHintsToFit(hints, width))
}
