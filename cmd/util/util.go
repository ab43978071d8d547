package util

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/roads/lib/store/sqlstore"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/serializer"
	"github.com/ValentinKolb/roads/rpc/transport"
	"github.com/ValentinKolb/roads/rpc/transport/tcp"
	"github.com/ValentinKolb/roads/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig reads .env files and binds environment variables (ROADS_<FLAG>)
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("roads")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupStoreFlags adds the flags needed to open a store
func SetupStoreFlags(cmd *cobra.Command) {
	key := "driver"
	cmd.PersistentFlags().String(key, sqlstore.DriverSQLite, WrapString("Database driver of the store (sqlite3, mysql). For sqlite3 the store argument is the path of the database file, for mysql it is the DSN"))
}

// SetupClientFlags adds the connection flags of the line protocol client
func SetupClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of the client"))

	key = "endpoint"
	cmd.PersistentFlags().String(key, "localhost:8888", WrapString("The address of the roads server (host:port for tcp, socket path for unix)"))
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() common.ClientConfig {
	return common.ClientConfig{
		Transport:     viper.GetString("transport"),
		Endpoint:      viper.GetString("endpoint"),
		TimeoutSecond: viper.GetInt("timeout"),
	}
}

// GetSerializer creates the wire serializer based on configuration
func GetSerializer() (serializer.ISerializer, error) {
	return serializer.ByName(viper.GetString("serializer"))
}

// GetClientTransport creates the client transport based on configuration
func GetClientTransport() (transport.IClientTransport, error) {
	switch viper.GetString("transport") {
	case "tcp":
		return tcp.NewTCPClientTransport(), nil
	case "unix":
		return unix.NewUnixClientTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s (expected one of: tcp, unix)", viper.GetString("transport"))
	}
}

// GetServerTransport creates the server transport based on configuration
func GetServerTransport() (transport.IServerTransport, error) {
	switch viper.GetString("transport") {
	case "tcp":
		return tcp.NewTCPServerTransport(), nil
	case "unix":
		return unix.NewUnixServerTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s (expected one of: tcp, unix)", viper.GetString("transport"))
	}
}

// OpenStore opens the store at dsn with the configured driver.
// Road blobs are always stored as json, independent of the wire serializer.
func OpenStore(dsn string) (*sqlstore.Store, error) {
	return sqlstore.Open(viper.GetString("driver"), dsn, serializer.NewJSONSerializer())
}
