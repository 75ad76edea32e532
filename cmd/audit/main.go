// Command audit runs the protocol/matter consistency checks outside the web
// server, printing findings to stdout and optionally uploading a JSONL
// snapshot to S3. It is intended for cron jobs and operators, who can also
// mint admin bearer tokens with "audit token".
//
// Exit codes: 0 = success, 1 = error or (with --fail-on-findings) findings.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "audit <command>",
	Short:         "Consistency checks and operator tasks for the legislative database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(runCmd, checksCmd, tokenCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
