package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"

	"github.com/vidgrab/vidgrab/models"
)

// Platforms serviced through yt-dlp. YouTube is handled natively, and an
// unmatched host must surface as an unsupported platform, so the list is
// explicit rather than "anything yt-dlp might know".
var ytDlpHosts = []string{
	"vimeo.com",
	"dailymotion.com",
	"twitch.tv",
	"soundcloud.com",
}

// IsYtDlpURL is the registry predicate for the yt-dlp extractor.
func IsYtDlpURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, h := range ytDlpHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// YtDlp extracts via the yt-dlp binary.
type YtDlp struct {
	outDir string
}

func NewYtDlp(outDir string) *YtDlp {
	return &YtDlp{outDir: outDir}
}

// ytDlpInfo matches the single-JSON dump of yt-dlp.
type ytDlpInfo struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Uploader  string  `json:"uploader"`
	Duration  float64 `json:"duration"`
	ViewCount int64   `json:"view_count"`
	Thumbnail string  `json:"thumbnail"`
	Formats   []struct {
		FormatID   string  `json:"format_id"`
		Ext        string  `json:"ext"`
		Height     int     `json:"height"`
		VCodec     string  `json:"vcodec"`
		ACodec     string  `json:"acodec"`
		FormatNote string  `json:"format_note"`
		Filesize   int64   `json:"filesize"`
		ABR        float64 `json:"abr"`
	} `json:"formats"`
}

func (e *YtDlp) FetchInfo(ctx context.Context, rawURL string) (*models.VideoInfo, error) {
	res, err := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		DumpSingleJSON().
		Run(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	info, err := parseInfoDump([]byte(res.Stdout))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return info, nil
}

func parseInfoDump(dump []byte) (*models.VideoInfo, error) {
	var data ytDlpInfo
	if err := json.Unmarshal(dump, &data); err != nil {
		return nil, err
	}

	info := &models.VideoInfo{
		ID:           data.ID,
		Title:        data.Title,
		Author:       data.Uploader,
		Duration:     humanDuration(int(data.Duration)),
		Views:        humanCount(data.ViewCount),
		ThumbnailURL: data.Thumbnail,
	}

	for _, f := range data.Formats {
		hasVideo := f.VCodec != "" && f.VCodec != "none"
		hasAudio := f.ACodec != "" && f.ACodec != "none"

		var kind models.FormatKind
		label := f.FormatNote
		switch {
		case hasVideo && hasAudio:
			kind = models.KindProgressiveVideo
			if label == "" && f.Height > 0 {
				label = fmt.Sprintf("%dp", f.Height)
			}
		case hasVideo:
			kind = models.KindAdaptiveVideo
			if label == "" && f.Height > 0 {
				label = fmt.Sprintf("%dp", f.Height)
			}
		case hasAudio:
			kind = models.KindAudioOnly
			if label == "" {
				label = "Audio Only"
			}
		default:
			continue
		}
		if label == "" {
			label = f.FormatID
		}

		info.QualityOptions = append(info.QualityOptions, models.FormatOption{
			Selector:   f.FormatID,
			Label:      label,
			Kind:       kind,
			ApproxSize: humanSize(f.Filesize),
		})
	}
	return info, nil
}

func (e *YtDlp) Download(ctx context.Context, rawURL, selector string, progress ProgressFunc) (*DownloadResult, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, fmt.Errorf("%w: empty format id", ErrSelectorNotFound)
	}

	// Unique prefix keeps concurrent downloads of the same video apart.
	key := uuid.NewString()[:8]
	tpl := filepath.Join(e.outDir, key+"-%(title)s.%(ext)s")

	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		NoPlaylist().
		Format(selector).
		Output(tpl)

	dl.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes > 0 {
			progress(int(update.DownloadedBytes * 100 / update.TotalBytes))
		}
	})

	res, err := dl.Run(ctx, rawURL)
	if err != nil {
		if strings.Contains(err.Error(), "Requested format is not available") {
			return nil, fmt.Errorf("%w: format %q is no longer offered", ErrSelectorNotFound, selector)
		}
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	result, err := extractedResult(res, selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	result.Filename = strings.TrimPrefix(filepath.Base(result.Path), key+"-")
	progress(100)
	return result, nil
}

func extractedResult(res *ytdlp.Result, selector string) (*DownloadResult, error) {
	info, err := res.GetExtractedInfo()
	if err != nil {
		return nil, err
	}
	if len(info) == 0 || info[0].Filename == nil || *info[0].Filename == "" {
		return nil, fmt.Errorf("yt-dlp reported no output file")
	}

	first := info[0]
	result := &DownloadResult{
		Path:         *first.Filename,
		VideoID:      first.ID,
		QualityLabel: selector,
	}
	if first.Title != nil {
		result.Title = *first.Title
	}
	if first.Uploader != nil {
		result.Author = *first.Uploader
	}
	if first.Duration != nil {
		result.DurationSec = int(*first.Duration)
	}
	if first.Resolution != nil && *first.Resolution != "" {
		result.QualityLabel = *first.Resolution
	}
	return result, nil
}
