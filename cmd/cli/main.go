package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/vidgrab/vidgrab/config"
	"github.com/vidgrab/vidgrab/database"
	"github.com/vidgrab/vidgrab/extractor"
	"github.com/vidgrab/vidgrab/models"
	"github.com/vidgrab/vidgrab/services"
	"github.com/vidgrab/vidgrab/utils"
)

var (
	store          *services.JobStore
	coordinator    *services.Coordinator
	storageService *services.StorageService
	registry       *extractor.Registry
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if err := database.Init(config.AppConfig.DatabaseURL); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	registry = extractor.NewRegistry()
	registry.Register(extractor.IsYouTubeURL, extractor.NewYouTube(config.AppConfig.AbsOngoingDir))
	registry.Register(extractor.IsYtDlpURL, extractor.NewYtDlp(config.AppConfig.AbsOngoingDir))

	store = services.NewJobStore()
	coordinator = services.NewCoordinator(store, registry, config.AppConfig.AbsCompletedDir, config.AppConfig.Retention)
	defer coordinator.Close()

	storageService = services.NewStorageService(config.AppConfig.AbsCompletedDir)

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Video Downloader CLI ===")

	for {
		fmt.Println("\nCommands:")
		fmt.Println("  1. info - Show metadata and quality options for a URL")
		fmt.Println("  2. download - Start a download")
		fmt.Println("  3. status - Check download status")
		fmt.Println("  4. list - List recent downloads")
		fmt.Println("  5. retry - Re-issue a failed download")
		fmt.Println("  6. mp3 - Extract audio from a completed file")
		fmt.Println("  7. quit - Exit")
		fmt.Print("\nEnter command: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		switch strings.TrimSpace(line) {
		case "1", "info":
			cmdInfo(reader)
		case "2", "download":
			cmdDownload(reader)
		case "3", "status":
			cmdStatus(reader)
		case "4", "list":
			cmdList()
		case "5", "retry":
			cmdRetry(reader)
		case "6", "mp3":
			cmdMP3(reader)
		case "7", "quit", "q":
			return
		default:
			fmt.Println("Unknown command")
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func cmdInfo(reader *bufio.Reader) {
	url := prompt(reader, "Video URL: ")
	ext, err := registry.Resolve(url)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	info, err := ext.FetchInfo(context.Background(), url)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("\n%s by %s (%s, %s views)\n", info.Title, info.Author, info.Duration, info.Views)
	for _, opt := range info.QualityOptions {
		fmt.Printf("  itag=%s  %-12s %-18s %s\n", opt.Selector, opt.Label, opt.Kind, opt.ApproxSize)
	}
}

func cmdDownload(reader *bufio.Reader) {
	url := prompt(reader, "Video URL: ")
	itag := prompt(reader, "itag: ")

	id, err := coordinator.StartDownload(url, itag)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Download started, id:", id)
}

func cmdStatus(reader *bufio.Reader) {
	id := prompt(reader, "Download id: ")
	job, err := coordinator.GetProgress(id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	printJob(job)
}

func cmdList() {
	jobs := store.ListRecent(20)
	if len(jobs) == 0 {
		fmt.Println("No downloads yet")
		return
	}
	for _, job := range jobs {
		printJob(job)
	}
}

func printJob(job models.Job) {
	switch job.Status {
	case models.StatusCompleted:
		fmt.Printf("%s  %s  %s (%s)\n", job.ID, job.Status, job.Filename, storageService.GetFormattedFileSize(filepath.Base(job.ResultPath)))
	case models.StatusError:
		fmt.Printf("%s  %s  %s\n", job.ID, job.Status, job.Error)
	default:
		fmt.Printf("%s  %s  %d%%\n", job.ID, job.Status, job.Progress)
	}
}

// Retry re-issues the failed job's url and itag as a fresh job.
func cmdRetry(reader *bufio.Reader) {
	id := prompt(reader, "Failed download id: ")
	job, ok := store.Get(id)
	if !ok {
		fmt.Println("Error: download not found")
		return
	}
	if job.Status != models.StatusError {
		fmt.Println("Error: download did not fail")
		return
	}

	newID, err := coordinator.StartDownload(job.URL, job.Selector)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Retry started, id:", newID)
}

func cmdMP3(reader *bufio.Reader) {
	if !utils.FFmpegAvailable() {
		fmt.Println("Error: ffmpeg not found in PATH")
		return
	}

	name := prompt(reader, "Completed filename: ")
	input := filepath.Join(config.AppConfig.AbsCompletedDir, filepath.Base(name))
	if !storageService.FileExists(input) {
		fmt.Println("Error: file not found")
		return
	}

	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".mp3"
	cmd := utils.BuildMP3Command(input, output)
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("Error: ffmpeg failed: %v\n%s\n", err, string(out))
		return
	}
	fmt.Println("Wrote", output)
}
