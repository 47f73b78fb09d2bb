package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bc-engines/internal/platform/tui"
)

var flagSSHAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH preview server",
	Long: `Start an SSH server that lets users pick an engine kind, preview it
and browse the run history.

Each SSH connection gets its own sandbox. Runs are recorded in the shared
history database.

Host key handling:
  - ssh.host_key from the config, relative paths resolve against $HOME
  - The key is generated on first start

Examples:
  engines serve
  engines serve --ssh :2222
  engines serve --db ./history.db

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger()
	if flagSSHAddr != "" {
		host, port, err := splitAddr(flagSSHAddr)
		if err != nil {
			fail("%v", err)
		}
		cfg.SSH.Host, cfg.SSH.Port = host, port
	}

	store := openStore(cfg)
	defer store.Close()

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting engines SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %d\n", cfg.SSH.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
