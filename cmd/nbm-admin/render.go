package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"neurobiomark/internal/adminclient"
	"neurobiomark/internal/domain"
)

const maxPurposeWidth = 40

func renderTable(w io.Writer, items []domain.DemoRequest, selected []string, page, pages int) error {
	sel := make(map[string]bool, len(selected))
	for _, id := range selected {
		sel[id] = true
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tEMAIL\tSTATUS\tCREATED\tPURPOSE")
	for _, it := range items {
		mark := " "
		if sel[it.ID] {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, it.ID, it.Name, it.Email, it.Status,
			it.CreatedAt.UTC().Format(time.DateTime), truncate(it.Purpose, maxPurposeWidth))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "no requests")
	}
	_, err := fmt.Fprintf(w, "page %d of %d\n", page, pages)
	return err
}

func renderView(w io.Writer, v adminclient.View) error {
	status := v.Key.Status
	if status == "" {
		status = "all"
	}
	fmt.Fprintf(w, "-- %s  search=%q  status=%s\n", v.State, v.Key.Search, status)
	if v.State == adminclient.Failed {
		fmt.Fprintf(w, "error: %v\n", v.Err)
	}
	if v.State == adminclient.Loading {
		return nil
	}
	return renderTable(w, v.Items, v.Selected, v.Key.Page, v.Pages)
}

func renderStats(w io.Writer, counts []*domain.DailyCount) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tCOUNT")
	total := 0
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Day, c.Count)
		total += c.Count
	}
	fmt.Fprintf(tw, "total\t%d\n", total)
	return tw.Flush()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
