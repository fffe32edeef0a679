package models

import "strings"

// NormalizePriority maps free-text priority variants onto the fixed
// enumeration. Total: anything unrecognized, including the empty string,
// falls back to media.
func NormalizePriority(input string) TaskPriority {
	v := strings.ToLower(strings.TrimSpace(input))

	switch {
	case strings.Contains(v, "urg"):
		return PriorityUrgente
	case strings.Contains(v, "alt"), strings.Contains(v, "high"):
		return PriorityAlta
	case strings.Contains(v, "med"), strings.Contains(v, "méd"):
		return PriorityMedia
	case strings.Contains(v, "baix"), strings.Contains(v, "low"):
		return PriorityBaixa
	default:
		return PriorityMedia
	}
}

// NormalizeColumn maps free-text column/status variants onto a board column.
// Total: anything unrecognized, including the empty string, falls back to
// backlog so a card is never left without a column.
func NormalizeColumn(input string) string {
	v := strings.ToLower(strings.TrimSpace(input))

	switch {
	case strings.Contains(v, "backlog"):
		return ColumnBacklog
	case strings.Contains(v, "doing"),
		strings.Contains(v, "progress"),
		strings.Contains(v, "andamento"):
		return ColumnDoing
	case strings.Contains(v, "done"),
		strings.Contains(v, "conclu"),
		strings.Contains(v, "finaliz"):
		return ColumnDone
	default:
		return ColumnBacklog
	}
}
