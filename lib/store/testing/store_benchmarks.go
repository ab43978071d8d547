package testing

import (
	"context"
	"fmt"
	"testing"

	"github.com/ValentinKolb/roads/lib/record"
	"github.com/ValentinKolb/roads/lib/store"
)

// RunStoreBenchmarks runs all benchmarks for a store implementation
func RunStoreBenchmarks(b *testing.B, name string, factory StoreFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("GetCountries", func(b *testing.B) {
			benchmarkGetCountries(b, factory(b))
		})

		b.Run("GetTowns", func(b *testing.B) {
			benchmarkGetTowns(b, factory(b))
		})

		b.Run("GetRoads", func(b *testing.B) {
			benchmarkGetRoads(b, factory(b))
		})

		b.Run("InsertRoad", func(b *testing.B) {
			benchmarkInsertRoad(b, factory(b))
		})
	})
}

// populate fills the store with countries, each with towns and roads between them
func populate(b *testing.B, s store.IStore, countries, townsPerCountry int) {
	ctx := context.Background()
	for c := 1; c <= countries; c++ {
		if err := s.InsertCountry(ctx, fmt.Sprintf("country-%d", c)); err != nil {
			b.Fatalf("InsertCountry failed: %v", err)
		}
		for i := 0; i < townsPerCountry; i++ {
			if err := s.InsertTown(ctx, fmt.Sprintf("town-%d-%d", c, i), int16(c)); err != nil {
				b.Fatalf("InsertTown failed: %v", err)
			}
			road := record.Road{Country: int16(c), TownA: int16(i), TownB: int16(i + 1), Distance: int16(i % 500)}
			if err := s.InsertRoad(ctx, road); err != nil {
				b.Fatalf("InsertRoad failed: %v", err)
			}
		}
	}
}

func benchmarkGetCountries(b *testing.B, s store.IStore) {
	b.Cleanup(func() {
		s.Close()
	})

	populate(b, s, 50, 0)
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := s.GetCountries(ctx); err != nil {
				b.Errorf("GetCountries failed: %v", err)
			}
		}
	})
}

func benchmarkGetTowns(b *testing.B, s store.IStore) {
	b.Cleanup(func() {
		s.Close()
	})

	populate(b, s, 10, 100)
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			if _, err := s.GetTownsByCountryID(ctx, int16(counter%10+1)); err != nil {
				b.Errorf("GetTownsByCountryID failed: %v", err)
			}
			counter++
		}
	})
}

func benchmarkGetRoads(b *testing.B, s store.IStore) {
	b.Cleanup(func() {
		s.Close()
	})

	populate(b, s, 10, 100)
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			if _, err := s.GetRoadsByCountryID(ctx, int16(counter%10+1)); err != nil {
				b.Errorf("GetRoadsByCountryID failed: %v", err)
			}
			counter++
		}
	})
}

func benchmarkInsertRoad(b *testing.B, s store.IStore) {
	b.Cleanup(func() {
		s.Close()
	})

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		road := record.Road{Country: 1, TownA: int16(i % 1000), TownB: int16(i % 999), Distance: int16(i % 500)}
		if err := s.InsertRoad(ctx, road); err != nil {
			b.Fatalf("InsertRoad failed: %v", err)
		}
	}
}
