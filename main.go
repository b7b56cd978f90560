// main holds the entry point for the psicosocial CLI.
package main

import (
	"os"

	"github.com/huangsam/psicosocial/cmd"
	"github.com/huangsam/psicosocial/internal/contract"
	"github.com/huangsam/psicosocial/internal/iocache"
)

// main wires the global store manager into the command tree and runs it.
func main() {
	cmd.SetStoreManager(iocache.Manager)
	err := cmd.Execute()

	iocache.CloseStore()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
