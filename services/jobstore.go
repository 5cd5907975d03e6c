package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidgrab/vidgrab/models"
)

type jobEntry struct {
	mu  sync.Mutex
	job models.Job
}

// JobStore is the concurrency-safe map of download id to job record. The
// store-level lock guards only map structure; each job has its own lock, so
// updates to different jobs never contend and readers always see a job
// entirely before or entirely after an update.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*jobEntry
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*jobEntry)}
}

// Create registers a new pending job with a fresh unique id.
func (s *JobStore) Create(url, selector string) models.Job {
	job := models.Job{
		ID:        uuid.NewString(),
		URL:       url,
		Selector:  selector,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = &jobEntry{job: job}
	s.mu.Unlock()

	return job
}

func (s *JobStore) lookup(id string) *jobEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs[id]
}

// Get returns a value snapshot of the job.
func (s *JobStore) Get(id string) (models.Job, bool) {
	entry := s.lookup(id)
	if entry == nil {
		return models.Job{}, false
	}
	entry.mu.Lock()
	snap := entry.job
	entry.mu.Unlock()
	return snap, true
}

// Update applies mutate under the job's exclusive lock. It returns false
// when the id is unknown.
func (s *JobStore) Update(id string, mutate func(*models.Job)) bool {
	entry := s.lookup(id)
	if entry == nil {
		return false
	}
	entry.mu.Lock()
	mutate(&entry.job)
	entry.mu.Unlock()
	return true
}

// ListRecent returns snapshots of the newest jobs first. n <= 0 returns all.
func (s *JobStore) ListRecent(n int) []models.Job {
	s.mu.RLock()
	entries := make([]*jobEntry, 0, len(s.jobs))
	for _, entry := range s.jobs {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	jobs := make([]models.Job, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		jobs = append(jobs, entry.job)
		entry.mu.Unlock()
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if n > 0 && len(jobs) > n {
		jobs = jobs[:n]
	}
	return jobs
}

func (s *JobStore) Delete(id string) {
	s.mu.Lock()
	delete(s.jobs, id)
	s.mu.Unlock()
}
