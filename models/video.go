package models

type FormatKind string

const (
	KindProgressiveVideo FormatKind = "video_progressive"
	KindAdaptiveVideo    FormatKind = "video_adaptive"
	KindAudioOnly        FormatKind = "audio"
)

// FormatOption describes one retrievable stream within a single metadata
// response. The selector is only meaningful against the VideoInfo that
// produced it; adaptive streams may be re-ordered between fetches.
type FormatOption struct {
	Selector   string     `json:"itag"`
	Label      string     `json:"quality"`
	Kind       FormatKind `json:"type"`
	ApproxSize string     `json:"filesize"`
}

type VideoInfo struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Author         string         `json:"author"`
	Duration       string         `json:"duration"`
	Views          string         `json:"views"`
	ThumbnailURL   string         `json:"thumbnail_url"`
	QualityOptions []FormatOption `json:"quality_options"`
}

type VideoInfoRequest struct {
	URL string `json:"url"`
}

type DownloadRequest struct {
	URL  string `json:"url"`
	Itag string `json:"itag"`
}
