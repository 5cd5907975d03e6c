package extractor

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kkdai/youtube/v2"

	"github.com/vidgrab/vidgrab/models"
	"github.com/vidgrab/vidgrab/utils"
)

var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/`)

// IsYouTubeURL is the registry predicate for the YouTube extractor.
func IsYouTubeURL(url string) bool {
	return youtubeURLPattern.MatchString(url)
}

// YouTube extracts metadata and streams natively via the innertube API.
type YouTube struct {
	client youtube.Client
	outDir string
}

// NewYouTube returns an extractor that writes in-progress files to outDir.
func NewYouTube(outDir string) *YouTube {
	return &YouTube{outDir: outDir}
}

func (e *YouTube) FetchInfo(ctx context.Context, url string) (*models.VideoInfo, error) {
	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	info := &models.VideoInfo{
		ID:             video.ID,
		Title:          video.Title,
		Author:         video.Author,
		Duration:       humanDuration(int(video.Duration.Seconds())),
		Views:          humanCount(int64(video.Views)),
		QualityOptions: buildQualityOptions(video.Formats),
	}
	if len(video.Thumbnails) > 0 {
		info.ThumbnailURL = video.Thumbnails[len(video.Thumbnails)-1].URL
	}
	return info, nil
}

// buildQualityOptions shapes the raw format list for presentation:
// progressive mp4 streams deduplicated by resolution (highest first),
// then video-only streams, then a single best audio option.
func buildQualityOptions(formats youtube.FormatList) []models.FormatOption {
	var options []models.FormatOption

	type videoFormat struct {
		format youtube.Format
		height int
	}
	var progressive, adaptive []videoFormat
	var bestAudio *youtube.Format

	for i := range formats {
		f := formats[i]
		switch {
		case strings.HasPrefix(f.MimeType, "audio/"):
			if bestAudio == nil || f.Bitrate > bestAudio.Bitrate {
				bestAudio = &formats[i]
			}
		case f.QualityLabel != "":
			vf := videoFormat{format: f, height: f.Height}
			if f.AudioChannels > 0 {
				progressive = append(progressive, vf)
			} else {
				adaptive = append(adaptive, vf)
			}
		}
	}

	appendVideo := func(list []videoFormat, kind models.FormatKind) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].height > list[j].height
		})
		seen := make(map[string]bool)
		for _, vf := range list {
			label := vf.format.QualityLabel
			if seen[label] {
				continue
			}
			seen[label] = true
			options = append(options, models.FormatOption{
				Selector:   strconv.Itoa(vf.format.ItagNo),
				Label:      label,
				Kind:       kind,
				ApproxSize: humanSize(vf.format.ContentLength),
			})
		}
	}

	appendVideo(progressive, models.KindProgressiveVideo)
	appendVideo(adaptive, models.KindAdaptiveVideo)

	if bestAudio != nil {
		options = append(options, models.FormatOption{
			Selector:   strconv.Itoa(bestAudio.ItagNo),
			Label:      "Audio Only",
			Kind:       models.KindAudioOnly,
			ApproxSize: humanSize(bestAudio.ContentLength),
		})
	}
	return options
}

func (e *YouTube) Download(ctx context.Context, url, selector string, progress ProgressFunc) (*DownloadResult, error) {
	itag, err := strconv.Atoi(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a stream itag", ErrSelectorNotFound, selector)
	}

	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	format := video.Formats.FindByItag(itag)
	if format == nil {
		return nil, fmt.Errorf("%w: itag %d is no longer in the stream list", ErrSelectorNotFound, itag)
	}

	result := &DownloadResult{
		VideoID:      video.ID,
		Title:        video.Title,
		Author:       video.Author,
		DurationSec:  int(video.Duration.Seconds()),
		QualityLabel: qualityLabel(format),
	}

	ext := mimeExt(format.MimeType)
	result.Filename = fmt.Sprintf("%s_%s.%s", sanitizeFilename(video.Title), formatSuffix(format), ext)
	dest := filepath.Join(e.outDir, uuid.NewString()+"."+ext)

	videoOnly := format.QualityLabel != "" && format.AudioChannels == 0
	if !videoOnly {
		if err := e.saveStream(ctx, video, format, dest, progress, 0, 100); err != nil {
			os.Remove(dest)
			return nil, err
		}
		result.Path = dest
		progress(100)
		return result, nil
	}

	// Video-only stream: fetch best audio and mux when ffmpeg is around,
	// otherwise deliver without audio.
	if err := e.saveStream(ctx, video, format, dest, progress, 0, 70); err != nil {
		os.Remove(dest)
		return nil, err
	}
	result.Path = dest

	audio := bestAudioFormat(video.Formats)
	if audio == nil || !utils.FFmpegAvailable() {
		log.Printf("serving %s video-only (no audio stream or no ffmpeg)", video.ID)
		progress(100)
		return result, nil
	}

	audioDest := dest + ".audio." + mimeExt(audio.MimeType)
	if err := e.saveStream(ctx, video, audio, audioDest, progress, 70, 90); err != nil {
		os.Remove(audioDest)
		progress(100)
		return result, nil
	}

	muxed := filepath.Join(e.outDir, uuid.NewString()+".mp4")
	cmd := utils.BuildMuxCommand(dest, audioDest, muxed)
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Printf("mux failed for %s: %v, output: %s", video.ID, err, string(out))
		os.Remove(muxed)
		os.Remove(audioDest)
		progress(100)
		return result, nil
	}
	os.Remove(dest)
	os.Remove(audioDest)

	result.Path = muxed
	result.Filename = fmt.Sprintf("%s_%s.mp4", sanitizeFilename(video.Title), formatSuffix(format))
	progress(100)
	return result, nil
}

func (e *YouTube) saveStream(ctx context.Context, video *youtube.Video, format *youtube.Format, dest string, progress ProgressFunc, lo, hi int) error {
	stream, size, err := e.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer stream.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	pw := &progressWriter{total: size, sink: progress, lo: lo, hi: hi}
	if _, err := io.Copy(out, io.TeeReader(stream, pw)); err != nil {
		return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return nil
}

func bestAudioFormat(formats youtube.FormatList) *youtube.Format {
	var best *youtube.Format
	for i := range formats {
		if !strings.HasPrefix(formats[i].MimeType, "audio/") {
			continue
		}
		if best == nil || formats[i].Bitrate > best.Bitrate {
			best = &formats[i]
		}
	}
	return best
}

func formatSuffix(f *youtube.Format) string {
	if f.QualityLabel != "" {
		return f.QualityLabel
	}
	return "audio"
}

func qualityLabel(f *youtube.Format) string {
	if f.QualityLabel != "" {
		return f.QualityLabel
	}
	return "Audio Only"
}

// progressWriter maps byte counts onto the [lo, hi] percentage window.
type progressWriter struct {
	total   int64
	written int64
	sink    ProgressFunc
	lo, hi  int
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.total > 0 && w.sink != nil {
		pct := w.lo + int(w.written*int64(w.hi-w.lo)/w.total)
		if pct > w.hi {
			pct = w.hi
		}
		w.sink(pct)
	}
	return len(p), nil
}
