package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"point-tagger/internal/app"
)

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(app.AppVersion),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
