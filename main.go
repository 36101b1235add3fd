package main

import (
	"fmt"
	"naapi/app/cmd"
	"naapi/app/util"
	"naapi/app/util/mylog"
	"os"

	"github.com/spf13/cobra"
	"go.szostok.io/version/extension"
)

func main() {
	mylog.Preinit()

	fmt.Fprintln(os.Stderr, util.Banner)

	rootCmd := &cobra.Command{Use: "naapi"}
	rootCmd.AddCommand(cmd.Server)
	rootCmd.AddCommand(cmd.Login)
	rootCmd.AddCommand(cmd.Logout)
	rootCmd.AddCommand(cmd.Whoami)
	rootCmd.AddCommand(extension.NewVersionCobraCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
		return
	}
}
