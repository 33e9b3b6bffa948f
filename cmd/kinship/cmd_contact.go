package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kinshiphq/kinship/client"
	"github.com/kinshiphq/kinship/internal/models"
)

func newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts"},
		Short:   "Manage contacts",
	}
	cmd.AddCommand(contactAddCmd())
	cmd.AddCommand(contactGetCmd())
	cmd.AddCommand(contactListCmd())
	cmd.AddCommand(contactUpdateCmd())
	cmd.AddCommand(contactDeleteCmd())
	cmd.AddCommand(contactInteractCmd())
	cmd.AddCommand(contactRelsCmd())
	return cmd
}

// contactFlags are the attribute flags shared by add and update.
type contactFlags struct {
	nickname, category, connection, status string
	potential, energy, notes, fieldsJSON   string
	trust, importance                      int
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nickname, "nickname", "", "Nickname")
	cmd.Flags().StringVar(&f.category, "category", "", "friend|family|customer|mentor|enemy|envier|rival")
	cmd.Flags().StringVar(&f.connection, "connection", "", "emotional|professional|intellectual|familial")
	cmd.Flags().StringVar(&f.status, "status", "", "active|passive|interrupted|toxic|neutral")
	cmd.Flags().StringVar(&f.potential, "potential", "", "low|medium|high")
	cmd.Flags().StringVar(&f.energy, "energy", "", "draining|neutral|energizing")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Personal notes")
	cmd.Flags().IntVar(&f.trust, "trust", 0, "Trust level 1-5")
	cmd.Flags().IntVar(&f.importance, "importance", 0, "Importance 1-5")
	cmd.Flags().StringVar(&f.fieldsJSON, "fields", "", `Other profile fields as JSON, e.g. '{"strengths":"patient"}'`)
}

func contactAddCmd() *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &client.CreateContactRequest{}
			if f.fieldsJSON != "" {
				if err := json.Unmarshal([]byte(f.fieldsJSON), &req.ContactFields); err != nil {
					return fmt.Errorf("parse --fields: %w", err)
				}
			}
			req.Name = args[0]
			if f.nickname != "" {
				req.Nickname = f.nickname
			}
			if f.notes != "" {
				req.PersonalNotes = f.notes
			}
			if f.category != "" {
				req.Category = models.Category(f.category)
			}
			if f.connection != "" {
				req.ConnectionType = models.ConnectionType(f.connection)
			}
			if f.status != "" {
				req.RelationshipStatus = models.RelationshipStatus(f.status)
			}
			if f.potential != "" {
				req.Potential = models.Potential(f.potential)
			}
			if f.energy != "" {
				req.EnergyBalance = models.EnergyBalance(f.energy)
			}
			if f.trust != 0 {
				req.TrustLevel = f.trust
			}
			if f.importance != 0 {
				req.Importance = f.importance
			}

			contact, err := apiClient.Contacts.Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("add contact: %w", err)
			}
			return output(contact, contact.ID)
		},
	}
	f.register(cmd)
	return cmd
}

func contactGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a contact with its interactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, err := apiClient.Contacts.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get contact: %w", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(contact.Interactions))
				for _, in := range contact.Interactions {
					rows = append(rows, []string{formatDate(in.Date), string(in.Type), string(in.Emotion), truncate(in.Content, 60)})
				}
				fmt.Printf("%s (%s, %s)\n\n", contact.Name, contact.Category, contact.RelationshipStatus)
				formatTable([]string{"DATE", "TYPE", "EMOTION", "CONTENT"}, rows)
				return nil
			}
			return output(contact, contact.ID)
		},
	}
}

func contactListCmd() *cobra.Command {
	var opts client.ContactListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := apiClient.Contacts.List(cmd.Context(), &opts)
			if err != nil {
				return fmt.Errorf("list contacts: %w", err)
			}
			switch flagFmt {
			case "table":
				headers := []string{"ID", "NAME", "CATEGORY", "STATUS", "TRUST", "IMPORTANCE", "LAST CONTACT"}
				rows := make([][]string, 0, len(contacts))
				for _, c := range contacts {
					rows = append(rows, []string{
						c.ID, c.Name, string(c.Category), string(c.RelationshipStatus),
						strconv.Itoa(c.TrustLevel), strconv.Itoa(c.Importance), formatDate(c.LastContact),
					})
				}
				formatTable(headers, rows)
				return nil
			case "quiet":
				for _, c := range contacts {
					fmt.Println(c.ID)
				}
				return nil
			}
			return formatJSON(contacts)
		},
	}
	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "Match name or nickname")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by relationship status")
	return cmd
}

func contactUpdateCmd() *cobra.Command {
	var (
		f    contactFlags
		name string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &client.UpdateContactRequest{}
			if f.fieldsJSON != "" {
				if err := json.Unmarshal([]byte(f.fieldsJSON), &req.ContactPatch); err != nil {
					return fmt.Errorf("parse --fields: %w", err)
				}
			}
			p := &req.ContactPatch
			changed := cmd.Flags().Changed
			if changed("name") {
				p.Name = &name
			}
			if changed("nickname") {
				p.Nickname = &f.nickname
			}
			if changed("notes") {
				p.PersonalNotes = &f.notes
			}
			if changed("category") {
				v := models.Category(f.category)
				p.Category = &v
			}
			if changed("connection") {
				v := models.ConnectionType(f.connection)
				p.ConnectionType = &v
			}
			if changed("status") {
				v := models.RelationshipStatus(f.status)
				p.RelationshipStatus = &v
			}
			if changed("potential") {
				v := models.Potential(f.potential)
				p.Potential = &v
			}
			if changed("energy") {
				v := models.EnergyBalance(f.energy)
				p.EnergyBalance = &v
			}
			if changed("trust") {
				p.TrustLevel = &f.trust
			}
			if changed("importance") {
				p.Importance = &f.importance
			}

			contact, err := apiClient.Contacts.Update(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("update contact: %w", err)
			}
			return output(contact, contact.ID)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Name")
	return cmd
}

func contactDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact and its relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Contacts.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete contact: %w", err)
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func contactInteractCmd() *cobra.Command {
	var kind, emotion, lesson string
	cmd := &cobra.Command{
		Use:   "interact <id> <content>",
		Short: "Log an interaction with a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &client.CreateInteractionRequest{}
			req.Type = models.InteractionType(kind)
			req.Emotion = models.Emotion(emotion)
			req.Content = args[1]
			req.LessonLearned = lesson

			in, err := apiClient.Contacts.AddInteraction(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("log interaction: %w", err)
			}
			return output(in, in.ID)
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "conversation|message|meeting|call|conflict")
	cmd.Flags().StringVar(&emotion, "emotion", "", "positive|neutral|negative")
	cmd.Flags().StringVar(&lesson, "lesson", "", "Lesson learned")
	return cmd
}

func contactRelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rels <id>",
		Short: "List the relationships of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rels, err := apiClient.Contacts.Relationships(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("list relationships: %w", err)
			}
			return printRelationships(rels)
		},
	}
}
