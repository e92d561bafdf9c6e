package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/raftclient-go/internal/cli/config"
)

// ConfigCommand returns the config subcommand group: local CLI
// configuration only. The client has no server-side configuration
// surface to manage (configuring the Raft servers themselves is out of
// this client's scope).
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "local CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "show the CLI configuration file path and contents",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "validate the CLI configuration file",
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	path := cliconfig.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("(no configuration file found; using defaults)")
		cfg := cliconfig.Default()
		fmt.Printf("  default_servers:    %v\n", cfg.DefaultServers)
		fmt.Printf("  default_service_id: %d\n", cfg.DefaultServiceID)
		fmt.Printf("  default_output:     %s\n", cfg.DefaultOutput)
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	fmt.Println(string(content))
	return nil
}

func configValidate(c *cli.Context) error {
	path := cliconfig.DefaultConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("no configuration file found at %s; using defaults\n", path)
		return nil
	}

	if _, err := cliconfig.Load(path); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	fmt.Printf("configuration file is valid: %s\n", path)
	return nil
}
