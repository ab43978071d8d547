package sqlstore

import (
	"context"

	"github.com/ValentinKolb/roads/lib/record"
	"github.com/ValentinKolb/roads/lib/store"
)

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *Store) InsertRoad(ctx context.Context, road record.Road) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	blob, err := s.codec.Serialize(road)
	if err != nil {
		return store.NewError(store.RetCInternalError, "encode road", err)
	}

	if _, err := s.db.ExecContext(ctx, "INSERT INTO roads (countryId, road) VALUES (?, ?)", road.Country, string(blob)); err != nil {
		return store.NewError(store.RetCQueryFailed, "insert road", err)
	}
	return nil
}

func (s *Store) InsertTown(ctx context.Context, name string, countryID int16) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "INSERT INTO towns (countryId, name) VALUES (?, ?)", countryID, name); err != nil {
		return store.NewError(store.RetCQueryFailed, "insert town", err)
	}
	return nil
}

func (s *Store) InsertCountry(ctx context.Context, name string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "INSERT INTO countries (name) VALUES (?)", name); err != nil {
		return store.NewError(store.RetCQueryFailed, "insert country", err)
	}
	return nil
}
