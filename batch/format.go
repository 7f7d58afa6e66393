package batch

import "fmt"

// TruncatePath shortens a path or URL for display, keeping the end which is
// more informative.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return path[:min(len(path), maxLen)]
	}
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Ratio formats the size of the outputs relative to the inputs.
func (r *Result) Ratio() string {
	if r.BytesIn == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(r.BytesOut)/float64(r.BytesIn))
}
