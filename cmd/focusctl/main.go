package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag  string
	userFlag string
	teamFlag string
	weekFlag string
	rootCmd  = &cobra.Command{
		Use:   "focusctl",
		Short: "CLI client for the FocusFlow reporting REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Reporting service base URL")

	// log subcommand: record an activity event
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Record an activity event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			tool, _ := cmd.Flags().GetString("tool")
			title, _ := cmd.Flags().GetString("title")
			minutes, _ := cmd.Flags().GetInt("minutes")
			return runLogEvent(apiFlag, userFlag, tool, title, minutes, cmd.Flags().Changed("minutes"), os.Stdout)
		},
	}
	logCmd.Flags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")
	logCmd.Flags().StringP("tool", "t", "", "Tool ID")
	logCmd.Flags().String("title", "", "Event title")
	logCmd.Flags().IntP("minutes", "m", 0, "Minutes spent")
	rootCmd.AddCommand(logCmd)

	// report subcommand: generate or fetch a weekly report
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate or fetch a weekly report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag == "" || weekFlag == "" {
				return fmt.Errorf("--user and --week required")
			}
			generate, _ := cmd.Flags().GetBool("generate")
			return runWeeklyReport(apiFlag, userFlag, weekFlag, generate, os.Stdout)
		},
	}
	reportCmd.Flags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")
	reportCmd.Flags().StringVarP(&weekFlag, "week", "w", "", "Week start, yyyy-mm-dd Monday (required)")
	reportCmd.Flags().BoolP("generate", "g", false, "Recompute the report before returning it")
	rootCmd.AddCommand(reportCmd)

	// publish subcommand: publish a user's week
	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a user's weekly report and its events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag == "" || weekFlag == "" {
				return fmt.Errorf("--user and --week required")
			}
			return runPublishWeek(apiFlag, userFlag, weekFlag, os.Stdout)
		},
	}
	publishCmd.Flags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")
	publishCmd.Flags().StringVarP(&weekFlag, "week", "w", "", "Week start, yyyy-mm-dd Monday (required)")
	rootCmd.AddCommand(publishCmd)

	// team subcommand: generate or fetch a team report
	teamCmd := &cobra.Command{
		Use:   "team",
		Short: "Generate or fetch a team weekly report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamFlag == "" || weekFlag == "" {
				return fmt.Errorf("--team and --week required")
			}
			generate, _ := cmd.Flags().GetBool("generate")
			return runTeamReport(apiFlag, teamFlag, weekFlag, generate, os.Stdout)
		},
	}
	teamCmd.Flags().StringVarP(&teamFlag, "team", "t", "", "Team ID (required)")
	teamCmd.Flags().StringVarP(&weekFlag, "week", "w", "", "Week start, yyyy-mm-dd Monday (required)")
	teamCmd.Flags().BoolP("generate", "g", false, "Recompute the report before returning it")
	rootCmd.AddCommand(teamCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
