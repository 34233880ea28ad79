package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-grabber/internal/event"
	"github.com/ytget/yt-grabber/internal/model"
)

// Service constants
const (
	TaskIDPrefix         = "task-"
	DefaultMaxParallel   = 2
	DefaultRunRetries    = 1
	DefaultRetryBackoff  = 2 * time.Second
	minParallelDownloads = 1
)

// queuedRun is a task waiting for a free slot, with everything needed to start it
type queuedRun struct {
	ctx  context.Context
	task *model.DownloadTask
	req  Request
	sink event.Sink
}

// Service handles download operations
type Service struct {
	runner       Runner
	settings     Settings
	tasks        map[string]*model.DownloadTask
	pending      []*queuedRun
	tasksMutex   sync.RWMutex
	maxParallel  int
	activeCount  int
	downloadDir  string
	runRetries   int
	retryBackoff time.Duration
	onUpdate     func(*model.DownloadTask) // callback for UI updates
	running      sync.WaitGroup
}

// NewService creates a new download service
func NewService(runner Runner, settings Settings, maxParallel int) *Service {
	return &Service{
		runner:       runner,
		settings:     settings,
		tasks:        make(map[string]*model.DownloadTask),
		maxParallel:  max(maxParallel, minParallelDownloads),
		runRetries:   DefaultRunRetries,
		retryBackoff: DefaultRetryBackoff,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Service) SetMaxParallelDownloads(n int) {
	s.tasksMutex.Lock()
	s.maxParallel = max(n, minParallelDownloads)
	s.tasksMutex.Unlock()

	s.startNextPendingTask()
}

// SetDownloadDirectory sets the directory used when a request has none
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	s.downloadDir = dir
	s.tasksMutex.Unlock()
}

// SetRetryPolicy sets how many times a failed run is repeated and the pause between runs
func (s *Service) SetRetryPolicy(retries int, backoff time.Duration) {
	s.tasksMutex.Lock()
	s.runRetries = max(retries, 0)
	s.retryBackoff = max(backoff, 0)
	s.tasksMutex.Unlock()
}

// StartDownload validates req and starts it, or queues it behind the parallel
// limit. Events for the run are posted to sink tagged with the task ID.
func (s *Service) StartDownload(ctx context.Context, req Request, sink event.Sink) (*model.DownloadTask, error) {
	if sink == nil {
		sink = event.Discard
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	req = req.Normalize()
	if req.OutputDir == "" {
		req.OutputDir = s.downloadDir
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Check for duplicate runs
	for _, task := range s.tasks {
		if task.URL == req.URL && task.ContentType == req.ContentType && !task.Status.IsFinished() {
			return nil, fmt.Errorf("%w for URL: %s", ErrDuplicateRun, req.URL)
		}
	}

	task := &model.DownloadTask{
		ID:          generateTaskID(),
		URL:         req.URL,
		ContentType: req.ContentType,
		Resolution:  req.Resolution,
		OutputDir:   req.OutputDir,
		Status:      model.TaskStatusIdle,
		StartedAt:   time.Now(),
	}
	s.tasks[task.ID] = task

	run := &queuedRun{ctx: ctx, task: task, req: req, sink: sink}
	s.running.Add(1)

	// Try to start task if we have capacity
	if s.activeCount < s.maxParallel {
		s.activeCount++
		task.Status = model.TaskStatusRunning
		go s.startTask(run)
	} else {
		task.Status = model.TaskStatusPending
		s.pending = append(s.pending, run)
		log.Printf("Download queued: %s (%s)", req.URL, req.ContentType)
	}

	return task, nil
}

// Snapshot returns a copy of the task safe to read while the run continues
func (s *Service) Snapshot(id string) (model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.DownloadTask{}, false
	}
	return *task, true
}

// GetAllTasks returns all tasks, oldest first
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// Wait blocks until every started or queued download has finished
func (s *Service) Wait() {
	s.running.Wait()
}

// startTask downloads one task; the caller has already counted it as active
func (s *Service) startTask(run *queuedRun) {
	defer s.running.Done()
	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		s.tasksMutex.Unlock()

		// Try to start next pending task
		s.startNextPendingTask()
	}()

	task := run.task
	s.notifyUpdate(task)
	log.Printf("Downloading %s of %s", run.req.ContentType, run.req.URL)

	s.tasksMutex.RLock()
	settings := s.settings
	s.tasksMutex.RUnlock()
	opts := BuildOptions(run.req, settings)

	result, err := s.downloadWithRetry(run.ctx, task, opts, func(p Progress) {
		s.updateTaskProgress(task, p)
		s.tasksMutex.RLock()
		percent := task.Percent
		s.tasksMutex.RUnlock()
		run.sink.Emit(event.Progress(event.KindProgress, task.ID, percent))
	})

	// Update final status
	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusFailed
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		task.Percent = 100
		if result != nil {
			task.OutputPath = result.OutputPath
		}
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	if err != nil {
		log.Printf("Download failed for %s: %v", task.URL, err)
		run.sink.Emit(event.Error(task.ID, err))
	} else if kind, kindErr := event.FinishedKind(task.ContentType); kindErr != nil {
		run.sink.Emit(event.Error(task.ID, kindErr))
	} else {
		done := event.Finished(kind, task.ID, task.ContentType.CompletionMessage())
		done.Path = task.OutputPath
		run.sink.Emit(done)
	}

	s.notifyUpdate(task)
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, task *model.DownloadTask, opts Options, progress func(Progress)) (*Result, error) {
	s.tasksMutex.RLock()
	maxRetries, backoff := s.runRetries, s.retryBackoff
	s.tasksMutex.RUnlock()

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			log.Printf("Retrying download for task %s, attempt %d", task.ID, attempt+1)
		}

		res, err := s.runner.Run(ctx, task.URL, opts, progress)
		if err == nil {
			return res, nil
		}

		lastErr = err
		log.Printf("Download attempt %d failed for task %s: %v", attempt+1, task.ID, err)

		if ctx.Err() != nil {
			return nil, errors.Join(err, ctx.Err())
		}
	}

	return nil, lastErr
}

// updateTaskProgress updates task progress from a runner sample
func (s *Service) updateTaskProgress(task *model.DownloadTask, p Progress) {
	s.tasksMutex.Lock()
	task.Downloaded = p.Downloaded
	task.Total = p.Total
	task.Percent = p.Percent()
	if p.Title != "" && task.Title == "" {
		task.Title = p.Title
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// startNextPendingTask starts queued tasks while there is capacity
func (s *Service) startNextPendingTask() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for s.activeCount < s.maxParallel && len(s.pending) > 0 {
		run := s.pending[0]
		s.pending = s.pending[1:]

		if !run.task.Status.CanTransition(model.TaskStatusRunning) {
			continue
		}
		run.task.Status = model.TaskStatusRunning
		s.activeCount++
		go s.startTask(run)
	}
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(task)
	}
}

// generateTaskID generates a unique, time-ordered task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
