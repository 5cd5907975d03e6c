package utils

import "os/exec"

func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// BuildMuxCommand combines a video-only stream with an audio stream.
// -pix_fmt yuv420p is often needed for player compatibility with
// VP9/WebM sources.
func BuildMuxCommand(videoFile, audioFile, outputFile string) *exec.Cmd {
	return exec.Command("ffmpeg",
		"-y", "-i", videoFile, "-i", audioFile,
		"-c:v", "libx264", "-preset", "fast", "-crf", "23", "-pix_fmt", "yuv420p",
		"-c:a", "aac", "-b:a", "128k",
		"-movflags", "+faststart",
		outputFile)
}

// BuildMP3Command extracts the audio track of a media file as mp3.
func BuildMP3Command(inputFile, outputFile string) *exec.Cmd {
	return exec.Command("ffmpeg", "-y", "-i", inputFile, "-f", "mp3", "-ab", "192k", "-vn", outputFile)
}
