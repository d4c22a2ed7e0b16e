/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/bootstrap"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/spf13/cobra"
)

var publisherCmd = &cobra.Command{
	Use:   "publisher",
	Short: "Publish pending outbox records to the broker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		if err := bootstrap.RunPublisher(ctx, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "publisher error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(publisherCmd)
}
