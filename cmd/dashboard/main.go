// @title          Staking Dashboard API
// @version        1.0
// @description    Local staking dashboard: position sync, lock countdown and stake/unstake submission
// @host           localhost:8080
// @BasePath       /
package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "dashboard crashed: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	Execute()
}
