package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type checkStatus string

const (
	checkOK   checkStatus = "ok"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

func formatCheckStatus(status checkStatus, detail string) string {
	label, style := statusLabelForCheck(status)
	return paint(style, formatStatusLabel(label, detail))
}

func statusLabelForCheck(status checkStatus) (string, lipgloss.Style) {
	switch status {
	case checkOK:
		return "OK", styles.Success
	case checkWarn:
		return "WARN", styles.Warning
	default:
		return "ERR", styles.Error
	}
}

func formatStatusLabel(label, detail string) string {
	normalized := strings.TrimSpace(detail)
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}
