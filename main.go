// main is the entry point for the mediascore CLI.
package main

import (
	"github.com/huangsam/mediascore/cmd"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/stores"
)

func main() {
	defer stores.CloseStores()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		stores.CloseStores()
		contract.LogFatal("Cannot run mediascore", err)
	}
}
