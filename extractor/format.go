package extractor

import (
	"fmt"
	"strings"

	"github.com/vidgrab/vidgrab/utils"
)

// humanDuration formats seconds as M:SS or H:MM:SS.
func humanDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 3600 {
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// humanCount formats a view count with thousands separators.
func humanCount(n int64) string {
	if n < 0 {
		return "Unknown"
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// humanSize formats a byte count, or "Unknown" when the platform did not
// report one.
func humanSize(bytes int64) string {
	if bytes <= 0 {
		return "Unknown"
	}
	return utils.FormatFileSize(bytes)
}

// sanitizeFilename strips characters that are invalid in filenames and
// caps the length.
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, ch := range invalid {
		result = strings.ReplaceAll(result, ch, "")
	}
	if len(result) > 200 {
		result = result[:200]
	}
	return strings.TrimSpace(result)
}

// mimeExt extracts the container extension from a MIME type such as
// "video/mp4; codecs=\"avc1\"".
func mimeExt(mimeType string) string {
	mt := mimeType
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	if i := strings.Index(mt, "/"); i >= 0 {
		mt = mt[i+1:]
	}
	mt = strings.TrimSpace(mt)
	if mt == "" {
		return "mp4"
	}
	return mt
}
