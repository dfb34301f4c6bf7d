package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roam/infras/otel/mocks"
	"roam/internal/domains/catalog/pipeline"
	"roam/internal/domains/catalog/service"
	"roam/internal/domains/catalog/snapshot"
	itnModel "roam/internal/domains/itinerary/model"
	itnDto "roam/internal/domains/itinerary/model/dto"
	itnService "roam/internal/domains/itinerary/service"
	packageMocks "roam/internal/domains/packages/mocks"
	"roam/internal/domains/packages/model"
)

// itineraryStub embeds the full interface so it only has to implement
// what the catalog calls.
type itineraryStub struct {
	itnService.Itinerary
	byPackage map[string]itnDto.ItineraryResponse
}

func (s *itineraryStub) GetByPackageID(_ context.Context, packageID string) (itnDto.ItineraryResponse, error) {
	return s.byPackage[packageID], nil
}

func rating(v int) *int {
	return &v
}

func baliPackages() []model.Package {
	return []model.Package{
		{ID: "pkg-1", Destination: "bali", Location: "Kuta", Duration: "4 Nights 5 Days", Price: "₹45,000/-", Tier: "Standard", HotelRating: rating(4)},
		{ID: "pkg-2", Destination: "bali", Location: "Ubud", Duration: "6 Nights 7 Days", Price: "₹85,000/-", Tier: "Premium", HotelRating: rating(5)},
	}
}

func newCatalog(t *testing.T, stub *itineraryStub) (service.Catalog, *packageMocks.MockPackages, *snapshot.Store) {
	ctrl := gomock.NewController(t)
	mockRepo := packageMocks.NewMockPackages(ctrl)
	store := snapshot.NewStore(mockRepo, mocks.NewOtel(), 30*time.Second)

	if stub == nil {
		stub = &itineraryStub{}
	}

	return service.New(store, stub, mocks.NewOtel()), mockRepo, store
}

func TestCatalogService_GetPackages(t *testing.T) {
	t.Run("unknown destination", func(t *testing.T) {
		svc, _, _ := newCatalog(t, nil)

		_, err := svc.GetPackages(context.Background(), "atlantis", pipeline.Selection{})

		assert.Error(t, err)
	})

	t.Run("renders a catalog page from the snapshot", func(t *testing.T) {
		svc, mockRepo, _ := newCatalog(t, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(baliPackages(), nil)

		res, err := svc.GetPackages(context.Background(), "bali", pipeline.Selection{SortBy: pipeline.SortPriceLow})

		require.NoError(t, err)
		assert.Equal(t, "bali", res.Destination)
		assert.Equal(t, 2, res.TotalItems)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "pkg-1", res.Items[0].ID)
		assert.Equal(t, 45000, res.Items[0].PriceAmount)
		assert.Equal(t, 25000, res.PriceFloor)
		assert.Equal(t, 200000, res.PriceCeiling)
	})

	t.Run("filters apply against the snapshot", func(t *testing.T) {
		svc, mockRepo, _ := newCatalog(t, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(baliPackages(), nil)

		res, err := svc.GetPackages(context.Background(), "bali", pipeline.Selection{Cities: []string{"Ubud"}})

		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "pkg-2", res.Items[0].ID)
		// Facets still count the whole destination.
		assert.Equal(t, 1, res.Facets.Cities["Kuta"])
	})
}

func TestCatalogService_GetItinerary(t *testing.T) {
	stub := &itineraryStub{
		byPackage: map[string]itnDto.ItineraryResponse{
			"pkg-1": {ID: "itn-1", PackageID: "pkg-1", Days: []itnModel.Day{{Day: 1, Title: "Arrival"}}},
		},
	}

	svc, mockRepo, _ := newCatalog(t, stub)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(baliPackages(), nil).
		AnyTimes()

	t.Run("found", func(t *testing.T) {
		res, err := svc.GetItinerary(context.Background(), "bali", "pkg-1")

		require.NoError(t, err)
		assert.Equal(t, "itn-1", res.ID)
	})

	t.Run("package not in destination", func(t *testing.T) {
		_, err := svc.GetItinerary(context.Background(), "bali", "pkg-999")

		assert.Error(t, err)
	})
}

func TestCatalogService_GetCities(t *testing.T) {
	svc, mockRepo, _ := newCatalog(t, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(baliPackages(), nil)

	res, err := svc.GetCities(context.Background(), "bali")

	require.NoError(t, err)
	assert.Equal(t, "bali", res.Destination)
	require.Len(t, res.Items, 5)
	assert.Equal(t, "Kuta", res.Items[0].Name)
	assert.Equal(t, 1, res.Items[0].Count)
}

func TestCatalogService_Refresh(t *testing.T) {
	svc, mockRepo, store := newCatalog(t, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(baliPackages(), nil).
		Times(2)

	_, err := store.Get(context.Background(), "bali")
	require.NoError(t, err)

	// A fresh snapshot would normally be served until the interval
	// elapses; a forced refresh refetches immediately.
	err = svc.Refresh(context.Background(), "bali")
	assert.NoError(t, err)

	assert.Error(t, svc.Refresh(context.Background(), "atlantis"))
}

func TestCatalogService_GetDestinations(t *testing.T) {
	svc, _, _ := newCatalog(t, nil)

	res := svc.GetDestinations(context.Background())

	assert.Len(t, res.Items, 5)
}
