package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataFlag string
	apiFlag  string
	rootCmd  = &cobra.Command{
		Use:   "studyctl",
		Short: "Operator CLI for the study backend",
	}
)

func main() {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the four study documents in a local data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := runValidate(dataFlag, os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				os.Exit(1)
			}
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&dataFlag, "data", "d", "data", "Directory holding the study documents")
	rootCmd.AddCommand(validateCmd)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch every resource from a running study service and report its status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := runCheck(apiFlag, os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				os.Exit(1)
			}
			return nil
		},
	}
	checkCmd.Flags().StringVarP(&apiFlag, "api", "a", "http://localhost:4010", "Study service base URL")
	rootCmd.AddCommand(checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
