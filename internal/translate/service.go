package translate

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-grabber/internal/event"
	"github.com/ytget/yt-grabber/internal/model"
)

// Service constants
const (
	TaskIDPrefix      = "translate-"
	CompletionMessage = "Translation completed successfully!"
)

// Service runs subtitle translations on background goroutines, one per task,
// and reports progress through the sink given for each run
type Service struct {
	pipeline      *Pipeline
	defaultTarget string
	tasks         map[string]*model.TranslationTask
	tasksMutex    sync.RWMutex
	onUpdate      func(*model.TranslationTask) // callback for UI updates
	running       sync.WaitGroup
}

// NewService creates a new translation service
func NewService(pipeline *Pipeline, defaultTarget string) *Service {
	return &Service{
		pipeline:      pipeline,
		defaultTarget: defaultTarget,
		tasks:         make(map[string]*model.TranslationTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.TranslationTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// StartTranslation validates the input and starts translating it in the background
func (s *Service) StartTranslation(ctx context.Context, inputPath, target string, sink event.Sink) (*model.TranslationTask, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("no subtitle file selected")
	}
	if target == "" {
		target = s.defaultTarget
	}
	if sink == nil {
		sink = event.Discard
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Check if a translation is already running for this file
	for _, task := range s.tasks {
		if task.InputPath == inputPath && !task.Status.IsFinished() {
			return nil, fmt.Errorf("translation already in progress for file: %s", inputPath)
		}
	}

	// Check if input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	task := &model.TranslationTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		TargetLang: target,
		Status:     model.TaskStatusIdle,
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = task

	s.running.Add(1)
	go s.runTranslation(ctx, task, sink)

	return task, nil
}

// Snapshot returns a copy of the task safe to read while the run continues
func (s *Service) Snapshot(taskID string) (model.TranslationTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return model.TranslationTask{}, false
	}
	return *task, true
}

// Wait blocks until every started translation has finished
func (s *Service) Wait() {
	s.running.Wait()
}

// runTranslation performs one translation run
func (s *Service) runTranslation(ctx context.Context, task *model.TranslationTask, sink event.Sink) {
	defer s.running.Done()

	s.setStatus(task, model.TaskStatusRunning)
	log.Printf("Translating %s into %s (task %s)", task.InputPath, task.TargetLang, task.ID)

	output, err := s.pipeline.TranslateFile(ctx, task.InputPath, task.TargetLang, func(percent int) {
		s.tasksMutex.Lock()
		task.Percent = percent
		s.tasksMutex.Unlock()

		sink.Emit(event.Progress(event.KindTranslateProgress, task.ID, percent))
		s.notifyUpdate(task)
	})

	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusFailed
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		task.OutputPath = output.Path
		task.LanguageTag = output.LanguageTag
		task.Lines = output.Stats.Lines
		task.Translated = output.Stats.Translated
		task.Fallbacks = output.Stats.Fallbacks
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	if err != nil {
		log.Printf("Translation failed for %s: %v", task.InputPath, err)
		sink.Emit(event.Error(task.ID, err))
	} else {
		log.Printf("Translation written to %s (%d translated, %d kept)", output.Path, output.Stats.Translated, output.Stats.Fallbacks)
		done := event.Finished(event.KindTranslateFinished, task.ID, CompletionMessage)
		done.Path = output.Path
		sink.Emit(done)
	}

	s.notifyUpdate(task)
}

// setStatus moves the task to next when the transition is legal
func (s *Service) setStatus(task *model.TranslationTask, next model.TaskStatus) {
	s.tasksMutex.Lock()
	if task.Status.CanTransition(next) {
		task.Status = next
	} else {
		log.Printf("Ignoring transition %s -> %s for task %s", task.Status, next, task.ID)
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.TranslationTask) {
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
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
