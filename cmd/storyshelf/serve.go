package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/storyshelf/storyshelf/internal/config"
	"github.com/storyshelf/storyshelf/internal/seed"
	"github.com/storyshelf/storyshelf/internal/server"
	"github.com/storyshelf/storyshelf/internal/storage/memory"
)

var (
	serveHost   string
	servePort   string
	serveMemory bool
	serveSeed   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storyshelf server",
	Long: `Start the storyshelf HTTP server.

The server opens the SQLite metadata store and the content directory
under the home directory (or the paths set in config) and serves:
  - /r/{namespace}/stos/1           - Story list
  - /r/{namespace}/cat/{story_id}   - Catalog (?p=window&theme=name)
  - /r/{namespace}/cont/{story_id}  - Reading page (?p=page&theme=name)
  - /api/...                        - JSON API (see storyshelf api --help)
  - /health, /ready                 - Health and readiness checks

With --memory the stores live in memory and are filled from --seed.

Examples:
  storyshelf serve                          # Start on default port 8080
  storyshelf serve --port 3000              # Start on custom port
  storyshelf serve --host 0.0.0.0           # Bind to all interfaces
  storyshelf serve --memory --seed demo.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, err := getHome()
		if err != nil {
			return err
		}
		cfgMgr, err := getConfig(h)
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		logger, level, err := newLogger(os.Stdout, cfg.Log)
		if err != nil {
			return err
		}

		// Follow log level changes without a restart
		cfgMgr.OnChange(func(c *config.Config) {
			l, err := c.Log.SlogLevel()
			if err != nil {
				logger.Warn("ignoring invalid log level", "error", err)
				return
			}
			level.Set(l)
			logger.Info("config reloaded", "log_level", l.String())
		})
		cfgMgr.WatchConfig()

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srvCfg := server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: cfgMgr,
			Logger:        logger,
		}
		if serveMemory {
			kv, blobs := memory.New(), memory.New()
			if serveSeed != "" {
				n, err := seed.LoadFile(ctx, serveSeed, kv, blobs)
				if err != nil {
					return err
				}
				logger.Info("loaded seed data", "file", serveSeed, "stories", n)
			}
			srvCfg.KV, srvCfg.Blobs = kv, blobs
		}

		srv, err := server.New(srvCfg)
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Serve from in-memory stores")
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "YAML file of namespaces and stories to load into memory stores")

	rootCmd.AddCommand(serveCmd)
}
