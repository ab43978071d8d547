package query

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ValentinKolb/roads/cmd/util"
	"github.com/ValentinKolb/roads/rpc/client"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/dispatcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// QueryCmd sends command lines to a running roads server
	QueryCmd = &cobra.Command{
		Use:   "query [command...]",
		Short: "Send commands to a roads server",
		Long: `Send commands to a roads server and print the responses.
Every argument is sent as one command line (e.g. roads query "get countries" "get roads 1").
Without arguments the commands are read line by line from stdin.
The session ends after the finish command or when all commands are sent.`,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: setupQuery,
		RunE:              runQuery,
	}
)

func init() {
	// Add common client flags to the query command
	util.SetupClientFlags(QueryCmd)

	key := "log-level"
	QueryCmd.PersistentFlags().String(key, "warn", util.WrapString("LogLevel of the client (debug, info, warn, error)"))

	// Add subcommands
	QueryCmd.AddCommand(perfTestCmd)
}

// setupQuery binds the flags and initializes the loggers
func setupQuery(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

// newClient connects a new client with the configured transport and serializer
func newClient() (*client.RoadsClient, error) {
	s, err := util.GetSerializer()
	if err != nil {
		return nil, err
	}

	t, err := util.GetClientTransport()
	if err != nil {
		return nil, err
	}

	return client.NewRoadsClient(util.GetClientConfig(), t, s)
}

func runQuery(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return sendAll(c, args, cmd.OutOrStdout())
	}
	return sendAll(c, readLines(cmd.InOrStdin()), cmd.OutOrStdout())
}

// readLines reads all non-empty lines of r
func readLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error reading commands: %v\n", err)
	}
	return lines
}

// sendAll sends the commands one after another and prints each response.
// The session is finished when the commands do not end with finish.
func sendAll(c *client.RoadsClient, commands []string, out io.Writer) error {
	for _, command := range commands {
		resp, err := c.Send(command)
		if err != nil {
			_ = c.Close()
			return fmt.Errorf("failed to send %q: %w", command, err)
		}
		fmt.Fprintln(out, resp)

		// The server closes the connection after finish
		if dispatcher.Parse(command).Kind == dispatcher.KindFinish {
			return c.Close()
		}
	}
	return c.Finish()
}
