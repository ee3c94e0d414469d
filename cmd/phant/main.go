// Copyright (C) 2025 Phant Project
//
// This file is part of phant-go.
//
// phant-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// phant-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with phant-go.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	phant "github.com/phant-project/phant-go"
	"github.com/phant-project/phant-go/pkg/activity"
	"github.com/phant-project/phant-go/pkg/actor"
	"github.com/phant-project/phant-go/pkg/client"
	"github.com/phant-project/phant-go/pkg/config"
	"github.com/phant-project/phant-go/pkg/instance"
	"github.com/phant-project/phant-go/pkg/keys"
	"github.com/phant-project/phant-go/pkg/server"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phant",
		Short: "Federated actor messaging node",
		Long: `Phant runs a federated messaging instance: it hosts actors, accepts
signed activity deliveries into per-actor mailboxes, and sends signed
activities to remote instances.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(
		serveCmd(),
		keygenCmd(),
		registerCmd(),
		sendCmd(),
		inboxCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the instance HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			logger := setupLogger(cfg.Debug)
			defer logger.Sync()

			inst, err := instance.Parse(cfg.URL)
			if err != nil {
				return fmt.Errorf("invalid instance url %q: %w", cfg.URL, err)
			}

			svc := server.NewService(inst, logger)
			httpServer := &http.Server{
				Addr:    cfg.Listen,
				Handler: svc.Handler(),
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				logger.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				httpServer.Shutdown(ctx)
			}()

			logger.Info("starting instance",
				zap.String("url", cfg.URL),
				zap.String("listen", cfg.Listen))

			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

func keygenCmd() *cobra.Command {
	var privatePath, publicPath string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := keys.Generate(privatePath, publicPath); err != nil {
				return err
			}
			fmt.Printf("Wrote %s and %s\n", privatePath, publicPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&privatePath, "private", "phant.pem", "private key output path")
	cmd.Flags().StringVar(&publicPath, "public", "phant.pub", "public key output path")
	return cmd
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [handle]",
		Short: "Register an actor's public key with its home instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg.Debug)
			defer logger.Sync()

			c := client.New(nil)
			a, err := c.Register(cmd.Context(), args[0], cfg.URL, cfg.PrivateKey, cfg.PublicKey)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			logger.Info("registered", zap.String("actor", a.ID))
			fmt.Println(a.ID)
			return nil
		},
	}
	return cmd
}

func sendCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "send [recipient] [message]",
		Short: "Send a note to a remote actor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg.Debug)
			defer logger.Sync()

			sender, err := actor.Local(from, cfg.URL, cfg.PrivateKey, cfg.PublicKey)
			if err != nil {
				return fmt.Errorf("invalid sender: %w", err)
			}

			c := client.New(nil)
			recipient, err := c.Resolver().ResolveHandle(cmd.Context(), args[0], "", nil)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", args[0], err)
			}

			if err := c.PostNote(cmd.Context(), args[1], sender, recipient,
				time.Time{}, activity.NoteOptions{}); err != nil {
				return fmt.Errorf("delivery failed: %w", err)
			}

			logger.Info("sent",
				zap.String("from", sender.ID),
				zap.String("to", recipient.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "sender handle on this instance")
	cmd.MarkFlagRequired("from")
	return cmd
}

func inboxCmd() *cobra.Command {
	var (
		user     string
		wait     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Drain an actor's inbox and print the verified contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg.Debug)
			defer logger.Sync()

			a, err := actor.Local(user, cfg.URL, cfg.PrivateKey, cfg.PublicKey)
			if err != nil {
				return fmt.Errorf("invalid actor: %w", err)
			}

			c := client.New(nil)
			var contents []map[string]any
			if wait {
				contents, err = c.WaitInbox(cmd.Context(), a, interval)
			} else {
				contents, err = c.GetInbox(cmd.Context(), a)
			}
			if err != nil {
				return fmt.Errorf("failed to read inbox: %w", err)
			}

			out, err := json.MarshalIndent(contents, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "actor handle on this instance")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until mail arrives")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "poll interval with --wait")
	cmd.MarkFlagRequired("user")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := phant.GetVersionInfo()
			fmt.Printf("%s %s (nodeinfo schema %s)\n",
				info.SoftwareName, info.PhantVersion, info.NodeInfoSchemaVersion)
		},
	}
}

func setupLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, _ := cfg.Build()
	return logger
}
