// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/adobe-helper/internal/journal"
	"github.com/pdiddy/adobe-helper/internal/logger"
	"github.com/pdiddy/adobe-helper/pkg/types"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Inspect and update the free-tier usage quota",
	Long: `Usage groups the quota operations: show today's summary, check whether
another conversion is allowed, record a completed conversion, list
history, and reset the counter.`,
}

var usageShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print today's usage summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newTracker()
		if err != nil {
			return err
		}
		s := t.UsageSummary()

		format, _ := cmd.Flags().GetString("format")
		if format == "table" {
			fmt.Printf("Usage: %d/%d (%.0f%%) - %d remaining\n",
				s.Count, s.Limit, s.PercentageUsed, s.Remaining)
			return nil
		}
		return writeDoc(format, s)
	},
}

var usageCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Exit 0 if a conversion is allowed today, 1 otherwise",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newTracker()
		if err != nil {
			return err
		}
		if !t.CanConvert() {
			s := t.UsageSummary()
			return fmt.Errorf("daily conversion limit reached: %d/%d", s.Count, s.Limit)
		}
		fmt.Printf("ok: %d conversion(s) remaining today\n", t.Remaining())
		return nil
	},
}

var usageRecordCmd = &cobra.Command{
	Use:   "record [filename]",
	Short: "Record one successful conversion",
	Long: `Record increments today's usage counter. The workflow calls it once per
conversion it completed, after the fact. With --journal the event is also
appended to the permanent conversion journal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newTracker()
		if err != nil {
			return err
		}

		filename := ""
		if len(args) == 1 {
			filename = args[0]
		}
		t.IncrementUsage(filename)

		if keep, _ := cmd.Flags().GetBool("journal"); keep {
			// Journal problems must not undo or obscure the recorded
			// increment, so they are logged and the command still succeeds.
			if err := appendToJournal(filename); err != nil {
				log.Warn("could not journal conversion", logger.Err(err))
			}
		}

		s := t.UsageSummary()
		fmt.Printf("Recorded. %d/%d used today, %d remaining.\n", s.Count, s.Limit, s.Remaining)
		return nil
	},
}

func appendToJournal(filename string) error {
	dir, err := stateDir()
	if err != nil {
		return err
	}
	j, err := journal.Open(dir)
	if err != nil {
		return err
	}
	defer j.Close()

	event := types.ConversionEvent{Timestamp: time.Now()}
	if filename != "" {
		event.Filename = &filename
	}
	_, err = j.Record(event)
	return err
}

var usageHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions",
	Long: `History lists today's conversions from the quota tracker. With --all it
lists the permanent journal instead, which spans days and only contains
conversions recorded with --journal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if all, _ := cmd.Flags().GetBool("all"); all {
			return printJournal()
		}

		t, err := newTracker()
		if err != nil {
			return err
		}
		events := t.ConversionHistory()
		if len(events) == 0 {
			fmt.Println("No conversions recorded today.")
			return nil
		}
		for _, ev := range events {
			name := "-"
			if ev.Filename != nil {
				name = *ev.Filename
			}
			fmt.Printf("%s  %s\n", ev.Timestamp.Format(time.RFC3339), name)
		}
		return nil
	},
}

func printJournal() error {
	dir, err := stateDir()
	if err != nil {
		return err
	}
	j, err := journal.Open(dir)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List(0)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Journal is empty.")
		return nil
	}
	for _, e := range entries {
		name := e.Filename
		if name == "" {
			name = "-"
		}
		fmt.Printf("%s  %s\n", e.Timestamp.Format(time.RFC3339), name)
	}
	return nil
}

var usageResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset today's usage counter",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newTracker()
		if err != nil {
			return err
		}
		t.Reset()
		fmt.Println("Usage data reset.")
		return nil
	},
}

func init() {
	usageShowCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	usageRecordCmd.Flags().Bool("journal", false, "also append the event to the permanent journal")
	usageHistoryCmd.Flags().Bool("all", false, "list the permanent journal instead of today's events")

	usageCmd.AddCommand(usageShowCmd)
	usageCmd.AddCommand(usageCheckCmd)
	usageCmd.AddCommand(usageRecordCmd)
	usageCmd.AddCommand(usageHistoryCmd)
	usageCmd.AddCommand(usageResetCmd)

	rootCmd.AddCommand(usageCmd)
}
