package insert

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ValentinKolb/roads/cmd/util"
	"github.com/ValentinKolb/roads/lib/record"
	"github.com/ValentinKolb/roads/lib/store/sqlstore"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// InsertCmd represents the insert command group
	InsertCmd = &cobra.Command{
		Use:               "insert",
		Short:             "Insert countries, towns and roads into a store",
		Long:              "Insert countries, towns and roads directly into the store. Inserts are not reachable over the line protocol.",
		PersistentPreRunE: setupInsert,
	}

	// InitCmd creates the schema of a new store
	InitCmd = &cobra.Command{
		Use:   "init [db-path]",
		Short: "Create the tables of a new store",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupInsert(cmd, nil)
		},
		RunE: runInit,
	}

	countryCmd = &cobra.Command{
		Use:   "country [name]",
		Short: "Inserts a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(viper.GetString("db"), func(s *sqlstore.Store) error {
				if err := s.InsertCountry(contextOf(cmd), args[0]); err != nil {
					return err
				}
				fmt.Println("country inserted successfully")
				return nil
			})
		},
	}

	townCmd = &cobra.Command{
		Use:   "town [name] [countryId]",
		Short: "Inserts a town into a country",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			countryID, err := parseID("countryId", args[1])
			if err != nil {
				return err
			}
			return withStore(viper.GetString("db"), func(s *sqlstore.Store) error {
				if err := s.InsertTown(contextOf(cmd), args[0], countryID); err != nil {
					return err
				}
				fmt.Println("town inserted successfully")
				return nil
			})
		},
	}

	roadCmd = &cobra.Command{
		Use:   "road [countryId] [townA] [townB] [distance]",
		Short: "Inserts a road between two towns of a country",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var values [4]int16
			for i, name := range []string{"countryId", "townA", "townB", "distance"} {
				v, err := parseID(name, args[i])
				if err != nil {
					return err
				}
				values[i] = v
			}
			road := record.Road{
				Country:  values[0],
				TownA:    values[1],
				TownB:    values[2],
				Distance: values[3],
			}
			return withStore(viper.GetString("db"), func(s *sqlstore.Store) error {
				if err := s.InsertRoad(contextOf(cmd), road); err != nil {
					return err
				}
				fmt.Println("road inserted successfully")
				return nil
			})
		},
	}
)

func init() {
	// Add store flags to both commands
	util.SetupStoreFlags(InsertCmd)
	util.SetupStoreFlags(InitCmd)

	key := "db"
	InsertCmd.PersistentFlags().String(key, "roads.db", util.WrapString("Path (sqlite3) or DSN (mysql) of the store"))

	// Add subcommands
	InsertCmd.AddCommand(countryCmd)
	InsertCmd.AddCommand(townCmd)
	InsertCmd.AddCommand(roadCmd)
}

// setupInsert binds the command flags and initializes the loggers
func setupInsert(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return common.InitLoggers("warn")
}

func runInit(cmd *cobra.Command, args []string) error {
	return withStore(args[0], func(s *sqlstore.Store) error {
		if err := s.InitSchema(contextOf(cmd)); err != nil {
			return err
		}
		fmt.Printf("store %s initialized successfully\n", args[0])
		return nil
	})
}

// withStore opens the store at dsn, runs fn and closes the store again
func withStore(dsn string, fn func(s *sqlstore.Store) error) (err error) {
	s, err := util.OpenStore(dsn)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}

// parseID parses a value of a store column, all of them are 16 bit integers
func parseID(name, value string) (int16, error) {
	v, err := strconv.ParseInt(value, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number between -32768 and 32767: %w", name, err)
	}
	return int16(v), nil
}

// contextOf returns the context of cmd, or the background context if cmd was not executed
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
