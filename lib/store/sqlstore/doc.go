// Package sqlstore implements store.IStore on top of database/sql.
//
// The store opens one connection at construction and keeps it until Close.
// database/sql is limited to that single connection, which makes concurrent
// use from many sessions safe: statements queue for the connection instead of
// being interleaved on it.
//
// Layout of the persisted state:
//
//	countries(id, name)
//	towns(id, name, countryId)
//	roads(countryId, road)    -- road holds the serialized record.Road
//
// The schema is expected to exist. InitSchema creates it for new databases and
// is only used by the init command and by tests; there are no migrations.
package sqlstore
