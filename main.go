package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/aka/cli"
	"github.com/ardnew/aka/log"
	"github.com/ardnew/aka/pkg"
)

func main() {
	args := cli.Args(pkg.Invoked(), os.Args[1:])

	err := cli.Run(context.Background(), os.Exit, args...)
	if err != nil {
		log.Debug(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
