package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ValentinKolb/roads/lib/record"
	"github.com/ValentinKolb/roads/lib/store"
	"github.com/ValentinKolb/roads/rpc/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("postgres", "whatever", serializer.NewJSONSerializer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestOpen_MissingCodec(t *testing.T) {
	_, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "x.db"), nil)
	require.Error(t, err)
}

func TestInitSchema_Idempotent(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.InitSchema(context.Background()), "second InitSchema should succeed")
}

func TestCountries(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	countries, err := s.GetCountries(ctx)
	require.NoError(t, err)
	assert.NotNil(t, countries, "empty result should be an empty map, not nil")
	assert.Empty(t, countries)

	require.NoError(t, s.InsertCountry(ctx, "Wonderland"))
	require.NoError(t, s.InsertCountry(ctx, "Looking Glass"))

	countries, err = s.GetCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, record.IDNameMap{1: "Wonderland", 2: "Looking Glass"}, countries)
}

func TestTownsByCountryID(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.InsertTown(ctx, "Start", 1))
	require.NoError(t, s.InsertTown(ctx, "Middle", 1))
	require.NoError(t, s.InsertTown(ctx, "Elsewhere", 2))

	towns, err := s.GetTownsByCountryID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, record.IDNameMap{1: "Start", 2: "Middle"}, towns)

	towns, err = s.GetTownsByCountryID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, record.IDNameMap{3: "Elsewhere"}, towns)

	towns, err = s.GetTownsByCountryID(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, towns)
	assert.Empty(t, towns)
}

func TestRoadsByCountryID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	road := record.Road{Country: 1, TownA: 5, TownB: 6, Distance: 7}
	require.NoError(t, s.InsertRoad(ctx, road))
	require.NoError(t, s.InsertRoad(ctx, record.Road{Country: 2, TownA: 1, TownB: 2, Distance: 3}))

	roads, err := s.GetRoadsByCountryID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, roads, 1)
	assert.Equal(t, road, roads[0])
}

func TestRoadsByCountryID_Empty(t *testing.T) {
	s := createTestStore(t)

	roads, err := s.GetRoadsByCountryID(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, roads, "empty result should be an empty slice, not nil")
	assert.Empty(t, roads)
}

func TestRoadsByCountryID_StoredAsJSONBlob(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.InsertRoad(ctx, record.Road{Country: 1, TownA: 10, TownB: 11, Distance: 42}))

	var blob string
	require.NoError(t, s.DB().QueryRow("SELECT road FROM roads WHERE countryId = 1").Scan(&blob))
	assert.JSONEq(t, `{"country":1,"townA":10,"townB":11,"distance":42}`, blob)
}

func TestRoadsByCountryID_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.DB().Exec("INSERT INTO roads (countryId, road) VALUES (1, 'not json')")
	require.NoError(t, err)

	_, err = s.GetRoadsByCountryID(ctx, 1)
	require.Error(t, err)

	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr), "expected *store.Error, got %T", err)
	assert.Equal(t, store.RetCDecodeFailed, storeErr.Code)
}

func TestMissingTable(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.DB().Exec("DROP TABLE roads")
	require.NoError(t, err)

	_, err = s.GetRoadsByCountryID(ctx, 1)
	require.Error(t, err)

	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr), "expected *store.Error, got %T", err)
	assert.Equal(t, store.RetCQueryFailed, storeErr.Code)
	assert.NotNil(t, errors.Unwrap(err), "driver error should be reachable")

	// the other tables are still served
	_, err = s.GetCountries(ctx)
	assert.NoError(t, err)
}

func TestUseAfterClose(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "closing twice should be a no-op")

	_, err := s.GetCountries(ctx)
	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, store.RetCUnavailable, storeErr.Code)

	err = s.InsertCountry(ctx, "Nowhere")
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, store.RetCUnavailable, storeErr.Code)
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.InsertCountry(ctx, fmt.Sprintf("country-%d", i)))
	}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers*20)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				countries, err := s.GetCountries(ctx)
				if err != nil {
					errs <- err
					continue
				}
				if len(countries) != 10 {
					errs <- fmt.Errorf("worker %d: expected 10 countries, got %d", w, len(countries))
				}
				if err := s.InsertRoad(ctx, record.Road{Country: int16(w), TownA: int16(i), TownB: 1, Distance: 1}); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	for w := 0; w < workers; w++ {
		roads, err := s.GetRoadsByCountryID(ctx, int16(w))
		require.NoError(t, err)
		assert.Len(t, roads, 10)
	}
}
