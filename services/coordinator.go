package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vidgrab/vidgrab/database"
	"github.com/vidgrab/vidgrab/extractor"
	"github.com/vidgrab/vidgrab/models"
)

const janitorInterval = time.Minute

// Coordinator owns the download lifecycle: it creates jobs, runs the
// extraction off the request path, keeps the job store current, and gates
// access to completed artifacts.
type Coordinator struct {
	store        *JobStore
	registry     *extractor.Registry
	completedDir string
	retention    time.Duration

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator starts the retention janitor; call Close on shutdown.
// Terminal jobs and their files are reaped once they are older than
// retention, which keeps a completed artifact valid for at least that
// long after it finishes.
func NewCoordinator(store *JobStore, registry *extractor.Registry, completedDir string, retention time.Duration) *Coordinator {
	c := &Coordinator{
		store:        store,
		registry:     registry,
		completedDir: completedDir,
		retention:    retention,
		stop:         make(chan struct{}),
	}
	c.wg.Add(1)
	go c.janitor()
	return c
}

// StartDownload validates the request, creates a pending job, and schedules
// the extraction on its own goroutine. It returns the job id without
// waiting for any download work.
func (c *Coordinator) StartDownload(url, selector string) (string, error) {
	if strings.TrimSpace(url) == "" || strings.TrimSpace(selector) == "" {
		return "", ErrInvalidRequest
	}

	ext, err := c.registry.Resolve(url)
	if err != nil {
		return "", err
	}

	job := c.store.Create(url, selector)

	c.wg.Add(1)
	go c.run(job.ID, url, selector, ext)

	return job.ID, nil
}

// run is the background unit of work for one job. Every failure inside it,
// panics included, ends up in the job record where a poller can see it.
func (c *Coordinator) run(id, url, selector string, ext extractor.Extractor) {
	defer c.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("job %s: extractor panic: %v", id, r)
			c.fail(id, fmt.Sprintf("internal error: %v", r))
		}
	}()

	c.store.Update(id, func(j *models.Job) {
		if j.Status == models.StatusPending {
			j.Status = models.StatusDownloading
			j.Progress = 0
		}
	})

	sink := func(pct int) {
		if pct > 100 {
			pct = 100
		}
		c.store.Update(id, func(j *models.Job) {
			if j.Status == models.StatusDownloading && pct > j.Progress {
				j.Progress = pct
			}
		})
	}

	result, err := ext.Download(context.Background(), url, selector, sink)
	if err != nil {
		log.Printf("job %s failed: %v", id, err)
		c.fail(id, err.Error())
		return
	}

	final := filepath.Join(c.completedDir, filepath.Base(result.Path))
	if err := os.Rename(result.Path, final); err != nil {
		log.Printf("job %s: failed to move artifact: %v", id, err)
		os.Remove(result.Path)
		c.fail(id, "failed to store downloaded file: "+err.Error())
		return
	}

	now := time.Now()
	c.store.Update(id, func(j *models.Job) {
		if j.Status.IsTerminal() {
			return
		}
		j.Status = models.StatusCompleted
		j.Progress = 100
		j.ResultPath = final
		j.Filename = result.Filename
		j.FinishedAt = &now
	})

	c.recordHistory(url, selector, final, result)
	log.Printf("job %s: download completed (%s)", id, result.Filename)
}

func (c *Coordinator) fail(id, msg string) {
	now := time.Now()
	c.store.Update(id, func(j *models.Job) {
		if j.Status.IsTerminal() {
			return
		}
		j.Status = models.StatusError
		j.Error = msg
		j.FinishedAt = &now
	})
}

// GetProgress returns a snapshot for polling.
func (c *Coordinator) GetProgress(id string) (models.Job, error) {
	job, ok := c.store.Get(id)
	if !ok {
		return models.Job{}, ErrNotFound
	}
	return job, nil
}

// GetResult returns the completed job, ErrNotReady before a terminal state,
// or the stored failure after an error. Safe to call repeatedly once
// completed.
func (c *Coordinator) GetResult(id string) (models.Job, error) {
	job, ok := c.store.Get(id)
	if !ok {
		return models.Job{}, ErrNotFound
	}
	switch job.Status {
	case models.StatusCompleted:
		return job, nil
	case models.StatusError:
		return models.Job{}, &JobFailedError{Message: job.Error}
	default:
		return models.Job{}, ErrNotReady
	}
}

func (c *Coordinator) recordHistory(url, selector, path string, result *extractor.DownloadResult) {
	if !database.Enabled() {
		return
	}
	if err := database.SaveHistory(buildHistoryEntry(url, selector, path, result)); err != nil {
		log.Printf("failed to record download history: %v", err)
	}
}

// buildHistoryEntry shapes a persisted history row from the metadata the
// extractor saw at download time.
func buildHistoryEntry(url, selector, path string, result *extractor.DownloadResult) *models.DownloadHistory {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	title := result.Title
	if title == "" {
		title = strings.TrimSuffix(result.Filename, filepath.Ext(result.Filename))
	}

	downloadType := "video"
	if result.QualityLabel == "Audio Only" {
		downloadType = "audio"
	} else {
		switch strings.ToLower(strings.TrimPrefix(filepath.Ext(result.Filename), ".")) {
		case "mp3", "m4a", "ogg", "opus", "aac":
			downloadType = "audio"
		}
	}

	return &models.DownloadHistory{
		VideoTitle:   title,
		VideoURL:     url,
		VideoID:      result.VideoID,
		Author:       result.Author,
		Duration:     result.DurationSec,
		Quality:      result.QualityLabel,
		DownloadType: downloadType,
		FileSize:     size,
		Itag:         selector,
	}
}

// janitor reaps terminal jobs past the retention window along with their
// files.
func (c *Coordinator) janitor() {
	defer c.wg.Done()

	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.reapExpired()
		}
	}
}

func (c *Coordinator) reapExpired() {
	cutoff := time.Now().Add(-c.retention)
	for _, job := range c.store.ListRecent(0) {
		if !job.Status.IsTerminal() || job.FinishedAt == nil || job.FinishedAt.After(cutoff) {
			continue
		}
		if job.ResultPath != "" {
			if err := os.Remove(job.ResultPath); err != nil && !os.IsNotExist(err) {
				log.Printf("job %s: failed to remove expired file: %v", job.ID, err)
			}
		}
		c.store.Delete(job.ID)
		log.Printf("job %s: reaped after retention window", job.ID)
	}
}

// Close stops the janitor and waits for in-flight downloads to reach a
// terminal state.
func (c *Coordinator) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.wg.Wait()
}
