package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
	"github.com/wasel-app/wasel-api/pkg/storage"
)

type exportListerStub struct {
	restaurants []models.Restaurant
	err         error
}

func (s *exportListerStub) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	if filter.Page > 1 {
		return nil, len(s.restaurants), nil
	}
	return s.restaurants, len(s.restaurants), nil
}

func newExportServiceForTest(t *testing.T, lister *exportListerStub) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("export-secret", time.Hour)
	return NewExportService(lister, store, signer, nil, ExportServiceConfig{Workers: 1})
}

func waitForJob(t *testing.T, service *ExportService, id string) *models.ExportJob {
	t.Helper()
	var job *models.ExportJob
	require.Eventually(t, func() bool {
		var err error
		job, err = service.Job(id)
		if err != nil {
			return false
		}
		return job.State == models.ExportCompleted || job.State == models.ExportFailed
	}, 5*time.Second, 20*time.Millisecond)
	return job
}

func TestExportServiceCSVRoundTrip(t *testing.T) {
	lister := &exportListerStub{restaurants: []models.Restaurant{
		{
			ID:          "rest-1",
			Name:        "Shawarma House",
			NameAr:      "بيت الشاورما",
			IsOpen:      true,
			OpeningTime: "08:00",
			ClosingTime: "23:00",
			WorkingDays: "0,1,2,3,4",
		},
	}}
	service := newExportServiceForTest(t, lister)
	service.Start(context.Background())
	defer service.Stop()

	job, err := service.Enqueue(models.ExportCSV, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExportQueued, job.State)

	done := waitForJob(t, service, job.ID)
	require.Equal(t, models.ExportCompleted, done.State)
	assert.NotEmpty(t, done.DownloadToken)
	require.NotNil(t, done.DownloadExpiresAt)

	file, _, err := service.OpenDownload(done.DownloadToken)
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Shawarma House")
	assert.Contains(t, string(content), "08:00")
}

func TestExportServicePDFCompletes(t *testing.T) {
	lister := &exportListerStub{restaurants: []models.Restaurant{
		{ID: "rest-1", Name: "Falafel Corner", IsOpen: true, OpeningTime: "10:00", ClosingTime: "22:00", WorkingDays: "5,6"},
	}}
	service := newExportServiceForTest(t, lister)
	service.Start(context.Background())
	defer service.Stop()

	job, err := service.Enqueue(models.ExportPDF, "admin-1")
	require.NoError(t, err)

	done := waitForJob(t, service, job.ID)
	require.Equal(t, models.ExportCompleted, done.State)
	assert.True(t, strings.HasSuffix(done.FileName, ".pdf"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	service := newExportServiceForTest(t, &exportListerStub{})
	service.Start(context.Background())
	defer service.Stop()

	_, err := service.Enqueue(models.ExportFormat("xlsx"), "admin-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceJobNotFound(t *testing.T) {
	service := newExportServiceForTest(t, &exportListerStub{})

	_, err := service.Job("missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportServiceOpenDownloadRejectsBadToken(t *testing.T) {
	service := newExportServiceForTest(t, &exportListerStub{})

	_, _, err := service.OpenDownload("tampered-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
