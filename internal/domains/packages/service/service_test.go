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
	packageMocks "roam/internal/domains/packages/mocks"
	"roam/internal/domains/packages/model"
	"roam/internal/domains/packages/model/dto"
	"roam/internal/domains/packages/service"
	cacheMocks "roam/shared/cache/mocks"
	gDto "roam/shared/dto"
	gModel "roam/shared/model"
	"roam/shared/timezone"
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

func newTestService(t *testing.T) (service.Packages, *packageMocks.MockPackages, *cacheMocks.MockRedisCache, *kafkaMocks.MockClient, *snapshotRecorder) {
	ctrl := gomock.NewController(t)

	mockRepo := packageMocks.NewMockPackages(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()
	snapshot := &snapshotRecorder{}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.EventTopic = "catalog.events"

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockKafka, snapshot)

	return svc, mockRepo, mockCache, mockKafka, snapshot
}

func allowAsyncSideEffects(mockCache *cacheMocks.MockRedisCache, mockKafka *kafkaMocks.MockClient) {
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestPackageService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreatePackageRequest
		setupMock func(repo *packageMocks.MockPackages)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreatePackageRequest{
				Destination: "bali",
				Title:       "Kuta Beach Escape",
				Location:    "Kuta",
				Duration:    "4 Nights 5 Days",
				Price:       "₹45,000/-",
				Tier:        "Standard",
			},
			setupMock: func(repo *packageMocks.MockPackages) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unknown destination",
			req: dto.CreatePackageRequest{
				Destination: "atlantis",
				Title:       "Lost City Tour",
				Location:    "Atlantis",
				Price:       "₹99,000/-",
			},
			setupMock: func(repo *packageMocks.MockPackages) {},
			wantErr:   true,
		},
		{
			name: "repository error",
			req: dto.CreatePackageRequest{
				Destination: "bali",
				Title:       "Kuta Beach Escape",
				Location:    "Kuta",
				Price:       "₹45,000/-",
			},
			setupMock: func(repo *packageMocks.MockPackages) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, mockRepo, mockCache, mockKafka, snapshot := newTestService(t)
			allowAsyncSideEffects(mockCache, mockKafka)
			tc.setupMock(mockRepo)

			err := svc.Create(context.Background(), tc.req)

			if tc.wantErr {
				assert.Error(t, err)
				assert.Empty(t, snapshot.destinations())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, []string{"bali"}, snapshot.destinations())
			}
		})
	}
}

func TestPackageService_Get(t *testing.T) {
	rating := 4
	pkg := model.Package{
		ID:          "pkg-1",
		Destination: "bali",
		Title:       "Kuta Beach Escape",
		Location:    "Kuta",
		Duration:    "5 Days 6 Nights",
		Price:       "₹85,000/-",
		Tier:        "Premium",
		HotelRating: &rating,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	t.Run("found normalizes duration and price", func(t *testing.T) {
		svc, mockRepo, mockCache, _, _ := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkg, nil)

		res, err := svc.Get(context.Background(), "pkg-1")

		assert.NoError(t, err)
		assert.Equal(t, "6 Nights 5 Days", res.Duration)
		assert.Equal(t, "6 Nights", res.Nights)
		assert.Equal(t, 85000, res.PriceAmount)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache, _, _ := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestPackageService_Update(t *testing.T) {
	existing := model.Package{ID: "pkg-1", Destination: "bali"}

	t.Run("successful update invalidates snapshot", func(t *testing.T) {
		svc, mockRepo, mockCache, mockKafka, snapshot := newTestService(t)
		allowAsyncSideEffects(mockCache, mockKafka)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Update(context.Background(), dto.UpdatePackageRequest{Title: "Renamed"}, "pkg-1")

		assert.NoError(t, err)
		assert.Equal(t, []string{"bali"}, snapshot.destinations())
	})

	t.Run("package not found", func(t *testing.T) {
		svc, mockRepo, mockCache, mockKafka, snapshot := newTestService(t)
		allowAsyncSideEffects(mockCache, mockKafka)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		err := svc.Update(context.Background(), dto.UpdatePackageRequest{Title: "Renamed"}, "missing")

		assert.Error(t, err)
		assert.Empty(t, snapshot.destinations())
	})
}

func TestPackageService_Delete(t *testing.T) {
	existing := model.Package{ID: "pkg-1", Destination: "bali"}

	t.Run("successful delete", func(t *testing.T) {
		svc, mockRepo, mockCache, mockKafka, snapshot := newTestService(t)
		allowAsyncSideEffects(mockCache, mockKafka)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), "pkg-1")

		assert.NoError(t, err)
		assert.Equal(t, []string{"bali"}, snapshot.destinations())
	})

	t.Run("package not found", func(t *testing.T) {
		svc, mockRepo, mockCache, mockKafka, _ := newTestService(t)
		allowAsyncSideEffects(mockCache, mockKafka)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestPackageService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache, _, _ := newTestService(t)

	packages := []model.Package{
		{ID: "pkg-1", Destination: "bali", Duration: "7", Price: "₹45,000/-"},
		{ID: "pkg-2", Destination: "bali", Duration: "6 Nights 7 Days", Price: "₹85,000/-"},
	}

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)
	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(packages, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "6 Nights 7 Days", res.Items[0].Duration)
}
