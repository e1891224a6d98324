package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		observability.GetLogger().Error("Command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}
