package testing

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/ValentinKolb/roads/lib/record"
	"github.com/ValentinKolb/roads/lib/store"
)

// StoreFactory creates a new, empty store with its schema applied
type StoreFactory func(tb testing.TB) store.IStore

// RunStoreTests runs the conformance test suite for a store implementation.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Countries", func(t *testing.T) {
			testCountries(t, factory(t))
		})

		t.Run("Towns", func(t *testing.T) {
			testTowns(t, factory(t))
		})

		t.Run("Roads", func(t *testing.T) {
			testRoads(t, factory(t))
		})

		t.Run("CountryIsolation", func(t *testing.T) {
			testCountryIsolation(t, factory(t))
		})

		t.Run("EmptyResults", func(t *testing.T) {
			testEmptyResults(t, factory(t))
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory(t))
		})

		t.Run("Close", func(t *testing.T) {
			testClose(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// idOf returns the id of name in m, failing the test if it is missing
func idOf(t testing.TB, m record.IDNameMap, name string) int16 {
	t.Helper()
	for id, n := range m {
		if n == name {
			return id
		}
	}
	t.Fatalf("Expected %q in %v", name, m)
	return 0
}

// names returns the sorted values of m
func names(m record.IDNameMap) []string {
	result := make([]string, 0, len(m))
	for _, n := range m {
		result = append(result, n)
	}
	sort.Strings(result)
	return result
}

// sortRoads orders roads so two result sets can be compared
func sortRoads(roads []record.Road) {
	sort.Slice(roads, func(i, j int) bool {
		a, b := roads[i], roads[j]
		if a.TownA != b.TownA {
			return a.TownA < b.TownA
		}
		if a.TownB != b.TownB {
			return a.TownB < b.TownB
		}
		return a.Distance < b.Distance
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testCountries(t *testing.T, s store.IStore) {
	defer s.Close()
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		if err := s.InsertCountry(ctx, name); err != nil {
			t.Fatalf("InsertCountry(%q) failed: %v", name, err)
		}
	}

	countries, err := s.GetCountries(ctx)
	if err != nil {
		t.Fatalf("GetCountries failed: %v", err)
	}

	if got, want := names(countries), []string{"Alpha", "Beta", "Gamma"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected countries %v, got %v", want, got)
	}

	// every country has its own id
	if len(countries) != 3 {
		t.Errorf("Expected 3 distinct ids, got %d", len(countries))
	}
}

func testTowns(t *testing.T, s store.IStore) {
	defer s.Close()
	ctx := context.Background()

	if err := s.InsertCountry(ctx, "Alpha"); err != nil {
		t.Fatalf("InsertCountry failed: %v", err)
	}
	countries, err := s.GetCountries(ctx)
	if err != nil {
		t.Fatalf("GetCountries failed: %v", err)
	}
	alpha := idOf(t, countries, "Alpha")

	for _, name := range []string{"Harbor", "Mill", "Ridge"} {
		if err := s.InsertTown(ctx, name, alpha); err != nil {
			t.Fatalf("InsertTown(%q) failed: %v", name, err)
		}
	}

	towns, err := s.GetTownsByCountryID(ctx, alpha)
	if err != nil {
		t.Fatalf("GetTownsByCountryID failed: %v", err)
	}

	if got, want := names(towns), []string{"Harbor", "Mill", "Ridge"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected towns %v, got %v", want, got)
	}
}

func testRoads(t *testing.T, s store.IStore) {
	defer s.Close()
	ctx := context.Background()

	roads := []record.Road{
		{Country: 1, TownA: 10, TownB: 11, Distance: 42},
		{Country: 1, TownA: 11, TownB: 12, Distance: 0},
		{Country: 1, TownA: 12, TownB: 10, Distance: math.MaxInt16},
		// the same road twice is stored twice
		{Country: 1, TownA: 10, TownB: 11, Distance: 42},
	}

	for _, road := range roads {
		if err := s.InsertRoad(ctx, road); err != nil {
			t.Fatalf("InsertRoad(%+v) failed: %v", road, err)
		}
	}

	got, err := s.GetRoadsByCountryID(ctx, 1)
	if err != nil {
		t.Fatalf("GetRoadsByCountryID failed: %v", err)
	}

	want := append([]record.Road(nil), roads...)
	sortRoads(want)
	sortRoads(got)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected roads %v, got %v", want, got)
	}
}

func testCountryIsolation(t *testing.T, s store.IStore) {
	defer s.Close()
	ctx := context.Background()

	if err := s.InsertTown(ctx, "Harbor", 1); err != nil {
		t.Fatalf("InsertTown failed: %v", err)
	}
	if err := s.InsertTown(ctx, "Mill", 2); err != nil {
		t.Fatalf("InsertTown failed: %v", err)
	}
	if err := s.InsertRoad(ctx, record.Road{Country: 1, TownA: 1, TownB: 2, Distance: 5}); err != nil {
		t.Fatalf("InsertRoad failed: %v", err)
	}
	if err := s.InsertRoad(ctx, record.Road{Country: 2, TownA: 3, TownB: 4, Distance: 6}); err != nil {
		t.Fatalf("InsertRoad failed: %v", err)
	}

	towns, err := s.GetTownsByCountryID(ctx, 2)
	if err != nil {
		t.Fatalf("GetTownsByCountryID failed: %v", err)
	}
	if got := names(towns); !reflect.DeepEqual(got, []string{"Mill"}) {
		t.Errorf("Expected only the towns of country 2, got %v", got)
	}

	roads, err := s.GetRoadsByCountryID(ctx, 2)
	if err != nil {
		t.Fatalf("GetRoadsByCountryID failed: %v", err)
	}
	if want := []record.Road{{Country: 2, TownA: 3, TownB: 4, Distance: 6}}; !reflect.DeepEqual(roads, want) {
		t.Errorf("Expected only the roads of country 2 %v, got %v", want, roads)
	}
}

func testEmptyResults(t *testing.T, s store.IStore) {
	defer s.Close()
	ctx := context.Background()

	countries, err := s.GetCountries(ctx)
	if err != nil {
		t.Fatalf("GetCountries failed: %v", err)
	}
	if countries == nil || len(countries) != 0 {
		t.Errorf("Expected an empty non-nil map, got %#v", countries)
	}

	towns, err := s.GetTownsByCountryID(ctx, 99)
	if err != nil {
		t.Fatalf("GetTownsByCountryID failed: %v", err)
	}
	if towns == nil || len(towns) != 0 {
		t.Errorf("Expected an empty non-nil map, got %#v", towns)
	}

	roads, err := s.GetRoadsByCountryID(ctx, 99)
	if err != nil {
		t.Fatalf("GetRoadsByCountryID failed: %v", err)
	}
	if roads == nil || len(roads) != 0 {
		t.Errorf("Expected an empty non-nil slice, got %#v", roads)
	}
}

func testConcurrentAccess(t *testing.T, s store.IStore) {
	defer s.Close()
	ctx := context.Background()

	const workers = 8
	const roadsPerWorker = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers*roadsPerWorker*2)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < roadsPerWorker; i++ {
				road := record.Road{Country: 7, TownA: int16(w), TownB: int16(i), Distance: int16(w*100 + i)}
				if err := s.InsertRoad(ctx, road); err != nil {
					errs <- fmt.Errorf("InsertRoad: %w", err)
				}
				if _, err := s.GetRoadsByCountryID(ctx, 7); err != nil {
					errs <- fmt.Errorf("GetRoadsByCountryID: %w", err)
				}
			}
		}(w)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	roads, err := s.GetRoadsByCountryID(ctx, 7)
	if err != nil {
		t.Fatalf("GetRoadsByCountryID failed: %v", err)
	}
	if len(roads) != workers*roadsPerWorker {
		t.Errorf("Expected %d roads, got %d", workers*roadsPerWorker, len(roads))
	}
}

func testClose(t *testing.T, s store.IStore) {
	ctx := context.Background()

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// closing twice is allowed
	if err := s.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}

	if _, err := s.GetCountries(ctx); err == nil {
		t.Errorf("Expected GetCountries to fail after Close")
	}
	if err := s.InsertCountry(ctx, "Alpha"); err == nil {
		t.Errorf("Expected InsertCountry to fail after Close")
	}
}
