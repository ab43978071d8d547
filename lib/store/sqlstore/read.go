package sqlstore

import (
	"context"

	"github.com/ValentinKolb/roads/lib/record"
	"github.com/ValentinKolb/roads/lib/store"
)

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *Store) GetCountries(ctx context.Context) (record.IDNameMap, error) {
	return s.queryIDNames(ctx, "SELECT id, name FROM countries")
}

func (s *Store) GetTownsByCountryID(ctx context.Context, countryID int16) (record.IDNameMap, error) {
	return s.queryIDNames(ctx, "SELECT id, name FROM towns WHERE countryId = ?", countryID)
}

func (s *Store) GetRoadsByCountryID(ctx context.Context, countryID int16) ([]record.Road, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT road FROM roads WHERE countryId = ?", countryID)
	if err != nil {
		return nil, store.NewError(store.RetCQueryFailed, "query roads", err)
	}
	defer rows.Close()

	// empty slice instead of nil, so an empty result is sent as []
	roads := []record.Road{}
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, store.NewError(store.RetCQueryFailed, "scan road", err)
		}

		var road record.Road
		if err := s.codec.Deserialize([]byte(blob), &road); err != nil {
			return nil, store.NewError(store.RetCDecodeFailed, "decode road", err)
		}
		roads = append(roads, road)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewError(store.RetCQueryFailed, "iterate roads", err)
	}

	Logger.Debugf("read %d roads of country %d", len(roads), countryID)
	return roads, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// queryIDNames runs a query selecting (id, name) rows and collects them into a map
func (s *Store) queryIDNames(ctx context.Context, query string, args ...any) (record.IDNameMap, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewError(store.RetCQueryFailed, "query id names", err)
	}
	defer rows.Close()

	result := record.IDNameMap{}
	for rows.Next() {
		var (
			id   int16
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, store.NewError(store.RetCQueryFailed, "scan id name", err)
		}
		result[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewError(store.RetCQueryFailed, "iterate id names", err)
	}

	return result, nil
}
