package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roam/config"
	kafkaMocks "roam/infras/kafka/mocks"
	"roam/infras/otel/mocks"
	s3Mocks "roam/infras/s3/mocks"
	itineraryMocks "roam/internal/domains/itinerary/mocks"
	"roam/internal/domains/itinerary/model"
	"roam/internal/domains/itinerary/model/dto"
	"roam/internal/domains/itinerary/service"
	packageMocks "roam/internal/domains/packages/mocks"
	pkgModel "roam/internal/domains/packages/model"
	cacheMocks "roam/shared/cache/mocks"
)

type snapshotRecorder struct {
	mu          sync.Mutex
	invalidated []string
}

func (r *snapshotRecorder) Invalidate(destination string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.invalidated = append(r.invalidated, destination)
}

func (r *snapshotRecorder) destinations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.invalidated...)
}

type testMocks struct {
	repo     *itineraryMocks.MockItinerary
	pkgRepo  *packageMocks.MockPackages
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
	s3       *s3Mocks.MockS3
	snapshot *snapshotRecorder
}

func newTestService(t *testing.T) (service.Itinerary, testMocks) {
	ctrl := gomock.NewController(t)

	m := testMocks{
		repo:     itineraryMocks.NewMockItinerary(ctrl),
		pkgRepo:  packageMocks.NewMockPackages(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		snapshot: &snapshotRecorder{},
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.EventTopic = "catalog.events"

	svc := service.New(m.repo, m.pkgRepo, cfg, m.cache, mocks.NewOtel(), m.kafka, m.s3, m.snapshot)

	return svc, m
}

func allowAsyncSideEffects(m testMocks) {
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestItineraryService_Create(t *testing.T) {
	validReq := dto.CreateItineraryRequest{
		PackageID: "pkg-1",
		Days: []dto.DayRequest{
			{Title: "Arrival", Activities: []string{"Airport pickup"}},
		},
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, m := newTestService(t)
		allowAsyncSideEffects(m)

		m.pkgRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkgModel.Package{ID: "pkg-1", Destination: "bali"}, nil)
		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, itinerary model.Itinerary) error {
				assert.Equal(t, 1, itinerary.Days[0].Day)

				return nil
			})

		err := svc.Create(context.Background(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, []string{"bali"}, m.snapshot.destinations())
	})

	t.Run("all days blank", func(t *testing.T) {
		svc, _ := newTestService(t)

		err := svc.Create(context.Background(), dto.CreateItineraryRequest{
			PackageID: "pkg-1",
			Days:      []dto.DayRequest{{Title: "  "}},
		})

		assert.Error(t, err)
	})

	t.Run("package not found", func(t *testing.T) {
		svc, m := newTestService(t)

		m.pkgRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkgModel.Package{}, nil)

		err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
	})

	t.Run("package already has an itinerary", func(t *testing.T) {
		svc, m := newTestService(t)

		m.pkgRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkgModel.Package{ID: "pkg-1", Destination: "bali"}, nil)
		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
	})
}

func TestItineraryService_GetByPackageID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, m := newTestService(t)

		itinerary := model.Itinerary{
			ID:        "itn-1",
			PackageID: "pkg-1",
			Days: model.Days{
				{Day: 1, Title: "Arrival"},
				{Day: 2, Title: "Departure"},
			},
		}

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(itinerary, nil)

		res, err := svc.GetByPackageID(context.Background(), "pkg-1")

		assert.NoError(t, err)
		assert.Equal(t, "itn-1", res.ID)
		assert.Len(t, res.Days, 2)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newTestService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Itinerary{}, nil)

		_, err := svc.GetByPackageID(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestItineraryService_Update(t *testing.T) {
	svc, m := newTestService(t)
	allowAsyncSideEffects(m)

	existing := model.Itinerary{ID: "itn-1", PackageID: "pkg-1"}

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(existing, nil)
	m.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	m.pkgRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pkgModel.Package{ID: "pkg-1", Destination: "bali"}, nil)

	err := svc.Update(context.Background(), dto.UpdateItineraryRequest{
		Days: []dto.DayRequest{{Title: "Beach Day"}},
	}, "itn-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"bali"}, m.snapshot.destinations())
}

func TestItineraryService_Delete(t *testing.T) {
	svc, m := newTestService(t)
	allowAsyncSideEffects(m)

	existing := model.Itinerary{
		ID:        "itn-1",
		PackageID: "pkg-1",
		HotelImages: model.HotelImages{
			{Src: "https://cdn.example.com/bucket/itinerary/pool.jpg"},
		},
	}

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(existing, nil)
	m.repo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil)
	m.pkgRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pkgModel.Package{ID: "pkg-1", Destination: "bali"}, nil)
	m.s3.EXPECT().
		GetObjectNameFromURL(gomock.Any(), gomock.Any()).
		Return("pool.jpg").
		AnyTimes()
	m.s3.EXPECT().
		DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	err := svc.Delete(context.Background(), "itn-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"bali"}, m.snapshot.destinations())
}
