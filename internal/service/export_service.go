package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wasel-app/wasel-api/internal/availability"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
	"github.com/wasel-app/wasel-api/pkg/export"
	"github.com/wasel-app/wasel-api/pkg/jobs"
	"github.com/wasel-app/wasel-api/pkg/storage"
)

type exportRestaurantLister interface {
	List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, int, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type sheetRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
}

// ExportServiceConfig tunes export behaviour.
type ExportServiceConfig struct {
	DownloadTTL time.Duration
	Workers     int
	MaxRetries  int
}

// ExportService renders restaurant schedules into downloadable files. Jobs run
// asynchronously on a worker queue; results are served through signed URLs.
type ExportService struct {
	restaurants exportRestaurantLister
	storage     fileStorage
	signer      *storage.SignedURLSigner
	csv         sheetRenderer
	pdf         sheetRenderer
	queue       *jobs.Queue
	logger      *zap.Logger
	cfg         ExportServiceConfig

	mu   sync.RWMutex
	jobs map[string]*models.ExportJob
}

// NewExportService constructs an ExportService with its own worker queue.
func NewExportService(restaurants exportRestaurantLister, store fileStorage, signer *storage.SignedURLSigner, logger *zap.Logger, cfg ExportServiceConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DownloadTTL <= 0 {
		cfg.DownloadTTL = 24 * time.Hour
	}
	s := &ExportService{
		restaurants: restaurants,
		storage:     store,
		signer:      signer,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
		cfg:         cfg,
		jobs:        make(map[string]*models.ExportJob),
	}
	s.queue = jobs.NewQueue("schedule-exports", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the worker queue.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the worker queue.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Enqueue registers a new export job and schedules it for processing.
func (s *ExportService) Enqueue(format models.ExportFormat, requestedBy string) (*models.ExportJob, error) {
	switch format {
	case models.ExportCSV, models.ExportPDF:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	job := &models.ExportJob{
		ID:          uuid.NewString(),
		Format:      format,
		State:       models.ExportQueued,
		RequestedBy: requestedBy,
		CreatedAt:   time.Now().UTC(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "schedule_export", Payload: job.ID}); err != nil {
		s.setFailed(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}
	return job, nil
}

// Job returns a snapshot of the job with the given ID.
func (s *ExportService) Job(id string) (*models.ExportJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	snapshot := *job
	return &snapshot, nil
}

// OpenDownload validates a signed token and opens the referenced file.
func (s *ExportService) OpenDownload(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download token")
	}
	if _, err := s.Job(jobID); err != nil {
		return nil, "", err
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}
	return file, relPath, nil
}

// Cleanup removes stored files older than the download TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.DownloadTTL)
}

func (s *ExportService) process(ctx context.Context, qj jobs.Job) error {
	jobID, _ := qj.Payload.(string)
	job := s.setState(jobID, models.ExportProcessing)
	if job == nil {
		return fmt.Errorf("unknown export job %s", jobID)
	}

	sheet, err := s.buildSheet(ctx)
	if err != nil {
		s.setFailed(jobID, err)
		return err
	}

	var payload []byte
	switch job.Format {
	case models.ExportCSV:
		payload, err = s.csv.Render(sheet)
	case models.ExportPDF:
		payload, err = s.pdf.Render(sheet)
	default:
		err = fmt.Errorf("unsupported export format %s", job.Format)
	}
	if err != nil {
		s.setFailed(jobID, err)
		return err
	}

	filename := fmt.Sprintf("schedules_%s_%s.%s",
		time.Now().UTC().Format("20060102_150405"), shortID(jobID), job.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		s.setFailed(jobID, err)
		return err
	}

	token, expiresAt, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		s.setFailed(jobID, err)
		return err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	if stored, ok := s.jobs[jobID]; ok {
		stored.State = models.ExportCompleted
		stored.FileName = relPath
		stored.DownloadToken = token
		stored.DownloadExpiresAt = &expiresAt
		stored.Error = ""
		stored.CompletedAt = &now
	}
	s.mu.Unlock()

	s.logger.Info("schedule export completed",
		zap.String("job_id", jobID),
		zap.String("file", relPath))
	return nil
}

// buildSheet flattens every restaurant schedule into one table.
func (s *ExportService) buildSheet(ctx context.Context) (export.Sheet, error) {
	sheet := export.Sheet{
		Title: "Restaurant Schedules",
		Headers: []string{
			"ID", "Name", "Arabic Name", "Open", "Temporarily Closed",
			"Opening", "Closing", "Working Days",
		},
	}

	page := 1
	for {
		restaurants, total, err := s.restaurants.List(ctx, models.RestaurantFilter{Page: page, PageSize: 200})
		if err != nil {
			return export.Sheet{}, err
		}
		for _, r := range restaurants {
			sheet.Rows = append(sheet.Rows, []string{
				r.ID,
				r.Name,
				r.NameAr,
				strconv.FormatBool(r.IsOpen),
				strconv.FormatBool(r.IsTemporarilyClosed),
				r.OpeningTime,
				r.ClosingTime,
				availability.ParseWorkingDays(r.WorkingDays).String(),
			})
		}
		if len(sheet.Rows) >= total || len(restaurants) == 0 {
			break
		}
		page++
	}
	return sheet, nil
}

func (s *ExportService) setState(id string, state models.ExportJobState) *models.ExportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil
	}
	job.State = state
	snapshot := *job
	return &snapshot
}

func (s *ExportService) setFailed(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.State = models.ExportFailed
		job.Error = err.Error()
	}
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
