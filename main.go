// main is the entry point of the babscore CLI.
package main

import (
	"github.com/huangsam/babscore/cmd"
	"github.com/huangsam/babscore/internal/contract"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot run babscore", err)
	}
}
