package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/autolot/internal/adapter"
	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/mock"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var jpegFile = UploadFile{
	Filename: "car.jpg",
	Data:     append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("....JFIF....")...),
}

func newTestVehicleSvc(t *testing.T, ctrl *gomock.Controller) (*vehicleService, *mockVehicleRepository, *mock.MockImageStore, *mockCleanupQueue) {
	t.Helper()

	repo := &mockVehicleRepository{}
	images := mock.NewMockImageStore(ctrl)
	cleanup := &mockCleanupQueue{}

	cfg := config.Uploads{MaxFileBytes: 1 << 20, MaxFiles: 12}
	svc := NewVehicleService(repo, images, cleanup, cfg, logger.Nop()).(*vehicleService)

	return svc, repo, images, cleanup
}

func validInput() VehicleInput {
	return VehicleInput{Year: 2019, Make: "Toyota", Model: "Corolla", Price: 1549900, Status: models.StatusAvailable}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestVehicleService_Create_UploadsInOrderThenInserts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, images, _ := newTestVehicleSvc(t, ctrl)
	ctx := context.Background()

	var inserted models.Vehicle
	repo.createFn = func(_ context.Context, v models.Vehicle) (models.Vehicle, error) {
		inserted = v
		v.ID = 42
		return v, nil
	}

	first := UploadFile{Filename: "front.jpg", Data: jpegFile.Data}
	second := UploadFile{Filename: "rear.jpg", Data: jpegFile.Data}

	gomock.InOrder(
		images.EXPECT().Upload(ctx, first.Data, "front.jpg").
			Return(models.ImageRef{URL: "https://cdn/front.jpg", DeletionHandle: "h-front"}, nil),
		images.EXPECT().Upload(ctx, second.Data, "rear.jpg").
			Return(models.ImageRef{URL: "https://cdn/rear.jpg", DeletionHandle: "h-rear"}, nil),
	)

	id, err := svc.Create(ctx, validInput(), []UploadFile{first, second}, []string{"https://ext.example.com/int.png"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), id)
	require.Len(t, inserted.Images, 3)
	assert.Equal(t, "h-front", inserted.Images[0].DeletionHandle)
	assert.Equal(t, "h-rear", inserted.Images[1].DeletionHandle)
	// external URLs come after uploads and carry no handle
	assert.Equal(t, "https://ext.example.com/int.png", inserted.Images[2].URL)
	assert.Empty(t, inserted.Images[2].DeletionHandle)
}

func TestVehicleService_Create_PartialUploadRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, images, _ := newTestVehicleSvc(t, ctrl)
	ctx := context.Background()

	repo.createFn = func(context.Context, models.Vehicle) (models.Vehicle, error) {
		t.Fatal("row must not be inserted when an upload fails")
		return models.Vehicle{}, nil
	}

	gomock.InOrder(
		images.EXPECT().Upload(ctx, gomock.Any(), "a.jpg").
			Return(models.ImageRef{URL: "https://cdn/a.jpg", DeletionHandle: "h-a"}, nil),
		images.EXPECT().Upload(ctx, gomock.Any(), "b.jpg").
			Return(models.ImageRef{URL: "https://cdn/b.jpg", DeletionHandle: "h-b"}, nil),
		images.EXPECT().Upload(ctx, gomock.Any(), "c.jpg").
			Return(models.ImageRef{}, adapter.ErrUploadFailed),
		// the two successful uploads are deleted before the error surfaces
		images.EXPECT().DeleteMany(ctx, []string{"h-a", "h-b"}).Return(nil),
	)

	files := []UploadFile{
		{Filename: "a.jpg", Data: jpegFile.Data},
		{Filename: "b.jpg", Data: jpegFile.Data},
		{Filename: "c.jpg", Data: jpegFile.Data},
	}

	_, err := svc.Create(ctx, validInput(), files, nil)
	assert.ErrorIs(t, err, adapter.ErrUploadFailed)
}

func TestVehicleService_Create_InsertFailureKeepsUploads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, images, _ := newTestVehicleSvc(t, ctrl)
	ctx := context.Background()

	dbErr := errors.New("disk full")
	repo.createFn = func(context.Context, models.Vehicle) (models.Vehicle, error) {
		return models.Vehicle{}, dbErr
	}

	// uploads succeed; no Delete/DeleteMany is expected after the insert
	// fails: the orphans are logged, not destroyed
	images.EXPECT().Upload(ctx, gomock.Any(), "a.jpg").
		Return(models.ImageRef{URL: "https://cdn/a.jpg", DeletionHandle: "h-a"}, nil)

	_, err := svc.Create(ctx, validInput(), []UploadFile{{Filename: "a.jpg", Data: jpegFile.Data}}, nil)
	assert.ErrorIs(t, err, dbErr)
}

func TestVehicleService_Create_RejectsBadExternalURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestVehicleSvc(t, ctrl)

	_, err := svc.Create(context.Background(), validInput(), nil, []string{"javascript:alert(1)"})

	var verrs *ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestVehicleService_Update_NoImagesPreservesStoredList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, cleanup := newTestVehicleSvc(t, ctrl)
	ctx := context.Background()

	stored := []models.ImageRef{
		{URL: "https://cdn/a.jpg", DeletionHandle: "h-a"},
		{URL: "https://cdn/b.jpg", DeletionHandle: "h-b"},
	}
	repo.getFn = func(_ context.Context, id int64) (models.Vehicle, error) {
		return models.Vehicle{ID: id, Images: stored}, nil
	}

	var updated models.Vehicle
	repo.updateFn = func(_ context.Context, v models.Vehicle) error {
		updated = v
		return nil
	}

	require.NoError(t, svc.Update(ctx, 7, validInput(), nil, nil))

	assert.Equal(t, stored, updated.Images)
	assert.Empty(t, cleanup.all(), "imageless update must not clean anything up")
}

func TestVehicleService_Update_ReplacementCleansStaleHandlesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, images, cleanup := newTestVehicleSvc(t, ctrl)
	ctx := context.Background()

	repo.getFn = func(_ context.Context, id int64) (models.Vehicle, error) {
		return models.Vehicle{ID: id, Images: []models.ImageRef{
			{URL: "https://cdn/old1.jpg", DeletionHandle: "h-old1"},
			{URL: "https://cdn/old2.jpg", DeletionHandle: "h-old2"},
			{URL: "https://ext.example.com/kept.png"},
		}}, nil
	}

	var updated models.Vehicle
	repo.updateFn = func(_ context.Context, v models.Vehicle) error {
		updated = v
		return nil
	}

	images.EXPECT().Upload(ctx, gomock.Any(), "new.jpg").
		Return(models.ImageRef{URL: "https://cdn/new.jpg", DeletionHandle: "h-new"}, nil)

	require.NoError(t, svc.Update(ctx, 7, validInput(), []UploadFile{{Filename: "new.jpg", Data: jpegFile.Data}}, nil))

	// new list replaced wholesale
	require.Len(t, updated.Images, 1)
	assert.Equal(t, "h-new", updated.Images[0].DeletionHandle)

	// each replaced hosted image queued exactly once; the external URL had
	// no handle and is not queued
	assert.ElementsMatch(t, []string{"h-old1", "h-old2"}, cleanup.all())
}

func TestVehicleService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _ := newTestVehicleSvc(t, ctrl)

	repo.getFn = func(context.Context, int64) (models.Vehicle, error) {
		return models.Vehicle{}, store.ErrVehicleNotFound
	}

	err := svc.Update(context.Background(), 404, validInput(), nil, nil)
	assert.ErrorIs(t, err, store.ErrVehicleNotFound)
}

func TestVehicleService_Update_RowWriteFailureSkipsCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, images, cleanup := newTestVehicleSvc(t, ctrl)
	ctx := context.Background()

	repo.getFn = func(_ context.Context, id int64) (models.Vehicle, error) {
		return models.Vehicle{ID: id, Images: []models.ImageRef{{URL: "https://cdn/old.jpg", DeletionHandle: "h-old"}}}, nil
	}
	repo.updateFn = func(context.Context, models.Vehicle) error {
		return errors.New("write failed")
	}

	images.EXPECT().Upload(ctx, gomock.Any(), "new.jpg").
		Return(models.ImageRef{URL: "https://cdn/new.jpg", DeletionHandle: "h-new"}, nil)

	err := svc.Update(ctx, 7, validInput(), []UploadFile{{Filename: "new.jpg", Data: jpegFile.Data}}, nil)
	require.Error(t, err)

	// old images stay referenced by the still-unchanged row
	assert.Empty(t, cleanup.all())
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestVehicleService_Delete_QueuesHostedImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, cleanup := newTestVehicleSvc(t, ctrl)

	repo.getFn = func(_ context.Context, id int64) (models.Vehicle, error) {
		return models.Vehicle{ID: id, Images: []models.ImageRef{
			{URL: "https://cdn/a.jpg", DeletionHandle: "h-a"},
			{URL: "https://ext.example.com/b.png"},
		}}, nil
	}

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.Equal(t, []string{"h-a"}, cleanup.all())
}

func TestVehicleService_Delete_RowFailureQueuesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, cleanup := newTestVehicleSvc(t, ctrl)

	repo.getFn = func(_ context.Context, id int64) (models.Vehicle, error) {
		return models.Vehicle{ID: id, Images: []models.ImageRef{{URL: "https://cdn/a.jpg", DeletionHandle: "h-a"}}}, nil
	}
	repo.deleteFn = func(context.Context, int64) error {
		return store.ErrVehicleNotFound
	}

	err := svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrVehicleNotFound)
	assert.Empty(t, cleanup.all())
}
