package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cmdUtil "github.com/ValentinKolb/roads/cmd/util"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/server"
	"github.com/ValentinKolb/roads/rpc/transport/tcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve [db-path]",
		Short:   "Start the roads server",
		Long:    `Start the roads server on top of the store at db-path (the file of a sqlite3 database or the DSN of a mysql database). The configuration can be set via command line flags or environment variables. The format of the environment variables is ROADS_<flag> (e.g. ROADS_LOG_LEVEL=debug)`,
		Args:    cobra.ExactArgs(1),
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	cmdUtil.SetupStoreFlags(ServeCmd)

	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, tcp.DefaultEndpoint, cmdUtil.WrapString("The address on which the server will listen (e.g. 0.0.0.0:8888, /tmp/roads.sock, ...)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("Idle timeout of a session in seconds. A session that sends no command for this long is closed (0 disables the timeout)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("(tcp transport) Disable Nagle's algorithm on accepted connections"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("(tcp transport) Keep-alive period of accepted connections in seconds (0 uses the system default)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address of the prometheus metrics endpoint (e.g. localhost:9090), empty disables it"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, args []string) error {
	// bind the flags to viper
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Driver = viper.GetString("driver")
	serveCmdConfig.DSN = args[0]
	serveCmdConfig.Transport = viper.GetString("transport")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TCPConf = common.TCPConf{
		TCPNoDelay:      viper.GetBool("tcp-nodelay"),
		TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
	}
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.Serializer = viper.GetString("serializer")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")

	if serveCmdConfig.TimeoutSecond < 0 {
		return fmt.Errorf("invalid timeout %d (must not be negative)", serveCmdConfig.TimeoutSecond)
	}

	return common.InitLoggers(serveCmdConfig.LogLevel)
}

// run starts the roads server and blocks until SIGINT or SIGTERM
func run(cmd *cobra.Command, _ []string) error {

	// parse the serializer
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	// Parse the transport
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	// Open the store, the server owns it from now on
	st, err := cmdUtil.OpenStore(serveCmdConfig.DSN)
	if err != nil {
		return err
	}

	serv := server.NewServer(
		*serveCmdConfig,
		t,
		st,
		s,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serv.Serve(ctx)
}
