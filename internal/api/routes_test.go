package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GIGAluckman/blsdata/internal/bls"
	"github.com/GIGAluckman/blsdata/internal/storage"
	"github.com/GIGAluckman/blsdata/pkg/models"
)

type stubRepo struct {
	mock.Mock
}

func (r *stubRepo) Create(ctx context.Context, m *models.Measurement) error {
	return r.Called(ctx, m).Error(0)
}

func (r *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Measurement, error) {
	args := r.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Measurement), args.Error(1)
}

func (r *stubRepo) List(ctx context.Context, limit, offset int) ([]*models.Measurement, error) {
	args := r.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Measurement), args.Error(1)
}

func (r *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.Called(ctx, id).Error(0)
}

type stubProcessor struct {
	mock.Mock
}

func (p *stubProcessor) Process(ctx context.Context, id uuid.UUID, policy bls.Policy) (*models.ProcessResult, error) {
	args := p.Called(ctx, id, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcessResult), args.Error(1)
}

func setup(t *testing.T) (humatest.TestAPI, *stubRepo, *stubProcessor) {
	_, api := humatest.New(t)
	repo := &stubRepo{}
	proc := &stubProcessor{}
	RegisterRoutes(api, repo, nil, storage.NewLocalSource(t.TempDir()), proc)
	return api, repo, proc
}

func TestHealth(t *testing.T) {
	api, _, _ := setup(t)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, Version, body.Version)
}

func TestMeasurementRoutes(t *testing.T) {
	t.Run("create validates body", func(t *testing.T) {
		api, _, _ := setup(t)
		resp := api.Post("/api/measurements", map[string]any{"geometry": "rf-sweep"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("create", func(t *testing.T) {
		api, repo, _ := setup(t)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp := api.Post("/api/measurements", map[string]any{"name": "run 1", "geometry": "line-scan", "length_1": 20})
		require.Equal(t, http.StatusCreated, resp.Code)

		var body models.CreateMeasurementResponseBody
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "run 1", body.Measurement.Name)
		assert.Equal(t, "/api/measurements/"+body.Measurement.ID+"/file", body.UploadURL)
		require.NotNil(t, body.Measurement.Length1)
		assert.Equal(t, 20.0, *body.Measurement.Length1)
	})

	t.Run("list", func(t *testing.T) {
		api, repo, _ := setup(t)
		repo.On("List", mock.Anything, 10, 0).Return([]*models.Measurement{{ID: "a", Geometry: models.GeometryRFSweep}}, nil)

		resp := api.Get("/api/measurements?limit=10")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"id":"a"`)
	})

	t.Run("process rejects interactive policy", func(t *testing.T) {
		api, _, proc := setup(t)
		resp := api.Post("/api/measurements/"+uuid.NewString()+"/process", map[string]any{"policy": "interactive"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		proc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("process", func(t *testing.T) {
		api, _, proc := setup(t)
		id := uuid.New()
		proc.On("Process", mock.Anything, id, bls.Full()).Return(&models.ProcessResult{
			MeasurementID: id.String(),
			Geometry:      models.GeometryRFSweep,
			Counts:        models.Array{Shape: []int{2}, Data: []float64{1, 2}},
		}, nil)

		resp := api.Post("/api/measurements/"+id.String()+"/process", map[string]any{"policy": "full"})
		require.Equal(t, http.StatusOK, resp.Code)

		var body models.ProcessResult
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, []float64{1, 2}, body.Counts.Data)
	})
}

func TestUploadRoute(t *testing.T) {
	_, api := humatest.New(t)
	repo := &stubRepo{}
	dir := t.TempDir()
	RegisterRoutes(api, repo, nil, storage.NewLocalSource(dir), &stubProcessor{})

	id := uuid.New()
	entry := &models.Measurement{ID: id.String(), Geometry: models.GeometryRFSweep, FileKey: "measurements/" + id.String() + ".h5"}
	repo.On("GetByID", mock.Anything, id).Return(entry, nil)

	payload := []byte("\x89HDF\r\n\x1a\n payload")
	resp := api.Put("/api/measurements/"+id.String()+"/file", "Content-Type: application/x-hdf5", bytes.NewReader(payload))
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	data, err := os.ReadFile(filepath.Join(dir, "measurements", id.String()+".h5"))
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	resp = api.Put("/api/measurements/"+id.String()+"/file", "Content-Type: application/x-hdf5", bytes.NewReader(nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
