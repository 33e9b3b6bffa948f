package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinshiphq/kinship/client"
	"github.com/kinshiphq/kinship/internal/models"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}
	cmd.AddCommand(journalAddCmd())
	cmd.AddCommand(journalListCmd())
	return cmd
}

func journalAddCmd() *cobra.Command {
	var (
		content, emotion, contactID, lesson, next string
		tags                                      []string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Write a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &client.CreateJournalRequest{}
			req.Title = args[0]
			req.Content = content
			req.Emotion = models.JournalEmotion(emotion)
			req.ContactID = contactID
			req.LessonLearned = lesson
			req.NextAction = next
			req.Tags = tags

			entry, err := apiClient.Journal.Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("add journal entry: %w", err)
			}
			return output(entry, entry.ID)
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "Entry text (required)")
	cmd.Flags().StringVar(&emotion, "emotion", "", "positive|neutral|negative|inspired|frustrated|proud")
	cmd.Flags().StringVar(&contactID, "contact", "", "Contact the entry is about")
	cmd.Flags().StringVar(&lesson, "lesson", "", "Lesson learned")
	cmd.Flags().StringVar(&next, "next", "", "Next action")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable or comma-separated)")
	cmd.MarkFlagRequired("content") //nolint:errcheck // flag defined above.
	return cmd
}

func journalListCmd() *cobra.Command {
	var opts client.JournalListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := apiClient.Journal.List(cmd.Context(), &opts)
			if err != nil {
				return fmt.Errorf("list journal: %w", err)
			}
			switch flagFmt {
			case "table":
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.ID, formatDate(e.Date), truncate(e.Title, 40), string(e.Emotion), strings.Join(e.Tags, ","),
					})
				}
				formatTable([]string{"ID", "DATE", "TITLE", "EMOTION", "TAGS"}, rows)
				return nil
			case "quiet":
				for _, e := range entries {
					fmt.Println(e.ID)
				}
				return nil
			}
			return formatJSON(entries)
		},
	}
	cmd.Flags().StringVar(&opts.ContactID, "contact", "", "Filter by contact id")
	cmd.Flags().StringVar(&opts.Emotion, "emotion", "", "Filter by emotion")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "Filter by tag")
	return cmd
}
