package services

import (
	"sync"
	"testing"
	"time"

	"github.com/vidgrab/vidgrab/models"
)

func TestCreateJob(t *testing.T) {
	store := NewJobStore()

	job := store.Create("https://youtu.be/abc123", "140")

	if job.ID == "" {
		t.Fatal("Expected a non-empty job id")
	}
	if job.URL != "https://youtu.be/abc123" {
		t.Errorf("Expected URL to be preserved, got %q", job.URL)
	}
	if job.Selector != "140" {
		t.Errorf("Expected selector to be preserved, got %q", job.Selector)
	}
	if job.Status != models.StatusPending {
		t.Errorf("Expected initial status pending, got %q", job.Status)
	}

	other := store.Create("https://youtu.be/abc123", "140")
	if other.ID == job.ID {
		t.Error("Expected distinct ids for repeated creates with identical inputs")
	}
}

func TestGetUnknownJob(t *testing.T) {
	store := NewJobStore()

	if _, ok := store.Get("no-such-id"); ok {
		t.Error("Expected Get to report missing job")
	}
	if ok := store.Update("no-such-id", func(j *models.Job) {}); ok {
		t.Error("Expected Update to report missing job")
	}
}

func TestUpdateVisibleInSnapshot(t *testing.T) {
	store := NewJobStore()
	job := store.Create("https://youtu.be/abc123", "22")

	store.Update(job.ID, func(j *models.Job) {
		j.Status = models.StatusDownloading
		j.Progress = 42
	})

	snap, ok := store.Get(job.ID)
	if !ok {
		t.Fatal("Expected job to exist")
	}
	if snap.Status != models.StatusDownloading || snap.Progress != 42 {
		t.Errorf("Expected downloading/42, got %s/%d", snap.Status, snap.Progress)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	store := NewJobStore()
	job := store.Create("https://youtu.be/abc123", "22")

	snap, _ := store.Get(job.ID)
	snap.Status = models.StatusError
	snap.Progress = 99

	fresh, _ := store.Get(job.ID)
	if fresh.Status != models.StatusPending || fresh.Progress != 0 {
		t.Error("Mutating a snapshot must not affect the stored job")
	}
}

func TestListRecent(t *testing.T) {
	store := NewJobStore()

	var ids []string
	for i := 0; i < 3; i++ {
		job := store.Create("https://youtu.be/abc123", "22")
		ids = append(ids, job.ID)
		time.Sleep(2 * time.Millisecond)
	}

	jobs := store.ListRecent(2)
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != ids[2] || jobs[1].ID != ids[1] {
		t.Error("Expected newest-first ordering")
	}

	if got := len(store.ListRecent(0)); got != 3 {
		t.Errorf("Expected ListRecent(0) to return all 3 jobs, got %d", got)
	}
}

func TestDeleteJob(t *testing.T) {
	store := NewJobStore()
	job := store.Create("https://youtu.be/abc123", "22")

	store.Delete(job.ID)

	if _, ok := store.Get(job.ID); ok {
		t.Error("Expected job to be gone after Delete")
	}
}

func TestConcurrentUpdatesToDifferentJobs(t *testing.T) {
	store := NewJobStore()
	a := store.Create("https://youtu.be/aaa", "22")
	b := store.Create("https://youtu.be/bbb", "140")

	const rounds = 500
	var wg sync.WaitGroup
	wg.Add(2)
	for _, id := range []string{a.ID, b.ID} {
		go func(id string) {
			defer wg.Done()
			for i := 1; i <= rounds; i++ {
				store.Update(id, func(j *models.Job) {
					j.Progress = i % 101
				})
			}
		}(id)
	}
	wg.Wait()

	snapA, _ := store.Get(a.ID)
	snapB, _ := store.Get(b.ID)
	if snapA.Progress != rounds%101 || snapB.Progress != rounds%101 {
		t.Errorf("Expected final progress %d for both jobs, got %d and %d",
			rounds%101, snapA.Progress, snapB.Progress)
	}
}
