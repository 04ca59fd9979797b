package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"skillcheck/internal/web"
)

// serveQuiz is a test seam for running the web server.
var serveQuiz = web.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .skillcheck/config.yml)")
		addr := flags.String("addr", "", "Address to listen on (default: server.addr)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed:\n%s\n", err.Error())
			return ExitError
		}
		if value := strings.TrimSpace(*addr); value != "" {
			cfg.Server.Addr = value
		}

		application, err := buildApp(cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serverCfg := web.Config{
			Addr:           cfg.Server.Addr,
			RequestTimeout: time.Duration(cfg.Server.RequestTimeoutMs) * time.Millisecond,
			CORSOrigins:    cfg.Server.CORSOrigins,
		}
		fmt.Fprintf(stdout, "Serving quiz at http://%s\n", serverCfg.Addr)
		if err := serveQuiz(ctx, serverCfg, application.service, application.logger); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
