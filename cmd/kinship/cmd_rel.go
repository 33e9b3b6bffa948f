package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinshiphq/kinship/client"
	"github.com/kinshiphq/kinship/internal/models"
)

func newRelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rel",
		Aliases: []string{"relationship", "relationships"},
		Short:   "Manage relationships between contacts",
	}
	cmd.AddCommand(relAddCmd())
	cmd.AddCommand(relListCmd())
	cmd.AddCommand(relBetweenCmd())
	cmd.AddCommand(relUpdateCmd())
	cmd.AddCommand(relDeleteCmd())
	return cmd
}

func printRelationships(rels []client.Relationship) error {
	switch flagFmt {
	case "table":
		rows := make([][]string, 0, len(rels))
		for _, r := range rels {
			rows = append(rows, []string{r.ID, r.SourceID, r.TargetID, string(r.Type), truncate(r.Notes, 40)})
		}
		formatTable([]string{"ID", "SOURCE", "TARGET", "TYPE", "NOTES"}, rows)
		return nil
	case "quiet":
		for _, r := range rels {
			fmt.Println(r.ID)
		}
		return nil
	}
	return formatJSON(rels)
}

func relAddCmd() *cobra.Command {
	var relType, notes string
	cmd := &cobra.Command{
		Use:   "add <source-id> <target-id>",
		Short: "Create or overwrite the relationship between two contacts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := apiClient.Relationships.Upsert(cmd.Context(), &client.UpsertRelationshipRequest{
				SourceID: args[0],
				TargetID: args[1],
				Type:     models.RelationshipType(relType),
				Notes:    notes,
			})
			if err != nil {
				return fmt.Errorf("add relationship: %w", err)
			}
			return output(rel, rel.ID)
		},
	}
	cmd.Flags().StringVar(&relType, "type", "", "positive|neutral|negative")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}

func relListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all relationships",
		RunE: func(cmd *cobra.Command, args []string) error {
			rels, err := apiClient.Relationships.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list relationships: %w", err)
			}
			return printRelationships(rels)
		},
	}
}

func relBetweenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "between <contact-id> <contact-id>",
		Short: "Show the relationship linking two contacts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rels, err := apiClient.Relationships.Between(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("find relationship: %w", err)
			}
			return printRelationships(rels)
		},
	}
}

func relUpdateCmd() *cobra.Command {
	var relType, notes string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the type or notes of a relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &client.UpdateRelationshipRequest{}
			if cmd.Flags().Changed("type") {
				v := models.RelationshipType(relType)
				req.Type = &v
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			if req.Type == nil && req.Notes == nil {
				return fmt.Errorf("nothing to update: set --type or --notes")
			}
			rel, err := apiClient.Relationships.Update(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("update relationship: %w", err)
			}
			return output(rel, rel.ID)
		},
	}
	cmd.Flags().StringVar(&relType, "type", "", "positive|neutral|negative")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}

func relDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Relationships.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete relationship: %w", err)
			}
			fmt.Println("deleted")
			return nil
		},
	}
}
