package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the relationship graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := apiClient.Graph.Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("get graph: %w", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(g.Edges))
				for _, e := range g.Edges {
					label := string(e.Type)
					if label == "" {
						label = string(e.Status)
					}
					rows = append(rows, []string{e.Source, e.Target, e.Kind, label})
				}
				fmt.Printf("%d nodes, %d edges\n\n", len(g.Nodes), len(g.Edges))
				formatTable([]string{"SOURCE", "TARGET", "KIND", "LABEL"}, rows)
				return nil
			}
			return output(g, strconv.Itoa(len(g.Nodes)))
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "neighbors <contact-id>",
		Short: "Show a contact and the contacts it is related to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := apiClient.Graph.Neighbors(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get neighbors: %w", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(n.Neighbors))
				for _, c := range n.Neighbors {
					rows = append(rows, []string{c.ID, c.Name, string(c.Category)})
				}
				formatTable([]string{"ID", "NAME", "CATEGORY"}, rows)
				return nil
			}
			return output(n, n.Contact.ID)
		},
	})
	return cmd
}

// countRows renders a breakdown map as sorted table rows.
func countRows(section string, m map[string]int) [][]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{section, k, strconv.Itoa(m[k])})
	}
	return rows
}

func newAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show breakdowns of contacts, relationships and journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := apiClient.Analytics.Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("get analytics: %w", err)
			}
			if flagFmt == "table" {
				fmt.Printf("contacts %d  relationships %d  journal %d  interactions %d\n",
					a.TotalContacts, a.TotalRelationships, a.TotalJournal, a.TotalInteractions)
				fmt.Printf("average trust %.2f  average importance %.2f\n\n", a.AverageTrust, a.AverageImportance)

				var rows [][]string
				rows = append(rows, countRows("category", a.ByCategory)...)
				rows = append(rows, countRows("status", a.ByStatus)...)
				rows = append(rows, countRows("energy", a.ByEnergy)...)
				rows = append(rows, countRows("relationship", a.RelationshipTypes)...)
				rows = append(rows, countRows("journal", a.JournalEmotions)...)
				formatTable([]string{"SECTION", "VALUE", "COUNT"}, rows)
				return nil
			}
			return output(a, strconv.Itoa(a.TotalContacts))
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := apiClient.Analytics.Dashboard(cmd.Context())
			if err != nil {
				return fmt.Errorf("get dashboard: %w", err)
			}
			if flagFmt == "table" {
				fmt.Printf("contacts %d  active %d  toxic %d  connections %d\n\n",
					d.TotalContacts, d.ActiveRelationships, d.ToxicRelationships, d.TotalConnections)
				rows := make([][]string, 0, len(d.Neglected))
				for _, c := range d.Neglected {
					rows = append(rows, []string{c.ID, c.Name, formatDate(c.LastContact)})
				}
				formatTable([]string{"NEGLECTED", "NAME", "LAST CONTACT"}, rows)
				return nil
			}
			return output(d, strconv.Itoa(d.TotalContacts))
		},
	}
}
