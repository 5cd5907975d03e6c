package utils

import "fmt"

// FormatFileSize renders a byte count for display, e.g. "1.5 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	const k = 1024
	units := []string{"Bytes", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	i := 0
	for size >= k && i < len(units)-1 {
		size /= k
		i++
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}
