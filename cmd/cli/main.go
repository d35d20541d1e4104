package main

import (
	"fmt"
	"os"

	"github.com/solarops/soltrack/cmd/cli/assets"
	"github.com/solarops/soltrack/cmd/cli/audit"
	"github.com/solarops/soltrack/cmd/cli/auth"
	"github.com/solarops/soltrack/cmd/cli/root"
)

func main() {
	auth.InitAuth(root.RootCmd)
	assets.InitAssets(root.RootCmd)
	audit.InitAudit(root.RootCmd)

	if err := root.RootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
