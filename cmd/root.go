package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/roads/cmd/insert"
	"github.com/ValentinKolb/roads/cmd/query"
	"github.com/ValentinKolb/roads/cmd/serve"
	"github.com/ValentinKolb/roads/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "roads",
		Short: "line-protocol query service for countries, towns and roads",
		Long: fmt.Sprintf(`roads (v%s)

A small TCP service that answers line-based queries about countries,
towns and the roads between them from a relational store.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of roads",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("roads v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(query.QueryCmd)
	RootCmd.AddCommand(insert.InsertCmd)
	RootCmd.AddCommand(insert.InitCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer of the wire format (json, yaml)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
