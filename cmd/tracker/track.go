package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tracker/pkg/event"
	"tracker/pkg/payload"
)

// common holds the flags shared by every track subcommand.
type common struct {
	contexts      []string
	trueTimestamp string
}

func (c *common) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&c.contexts, "context", nil, `Custom context as JSON {"schema": "...", "data": {...}} (repeatable)`)
	cmd.Flags().StringVar(&c.trueTimestamp, "true-timestamp", "", "Time the event actually happened (RFC3339)")
}

// apply attaches the shared flags to ev before it is handed to the tracker.
func (c *common) apply(ev interface {
	event.Event
	SetTrueTimestamp(time.Time)
}) error {
	for i, raw := range c.contexts {
		var sd payload.SelfDescribing
		if err := json.Unmarshal([]byte(raw), &sd); err != nil {
			return fmt.Errorf("invalid --context #%d: %w", i+1, err)
		}
		ev.AppendContext(sd)
	}

	if c.trueTimestamp != "" {
		ts, err := time.Parse(time.RFC3339, c.trueTimestamp)
		if err != nil {
			return fmt.Errorf("invalid --true-timestamp: %w", err)
		}
		ev.SetTrueTimestamp(ts)
	}

	return nil
}

func trackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track a single event",
	}

	cmd.AddCommand(
		consentGrantedCmd(),
		consentWithdrawnCmd(),
		selfDescribingCmd(),
	)

	return cmd
}

func consentGrantedCmd() *cobra.Command {
	var (
		c          common
		expiry     string
		docID      string
		docVersion string
		docName    string
		docDesc    string
		extraDocs  []string
	)

	cmd := &cobra.Command{
		Use:   "consent-granted",
		Short: "Track a consent granted event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := event.NewConsentGranted(expiry, docID, docVersion)
			if err != nil {
				return err
			}

			docs, err := parseDocuments(extraDocs)
			if err != nil {
				return err
			}

			ev.WithDocumentName(docName).
				WithDocumentDescription(docDesc).
				WithDocuments(docs...)

			if err := c.apply(ev); err != nil {
				return err
			}
			return runTrack(cmd, ev)
		},
	}

	cmd.Flags().StringVar(&expiry, "expiry", "", "Consent expiry (required)")
	cmd.Flags().StringVar(&docID, "document-id", "", "Primary consent document id (required)")
	cmd.Flags().StringVar(&docVersion, "document-version", "", "Primary consent document version (required)")
	cmd.Flags().StringVar(&docName, "document-name", "", "Primary consent document name")
	cmd.Flags().StringVar(&docDesc, "document-description", "", "Primary consent document description")
	cmd.Flags().StringArrayVar(&extraDocs, "document", nil, `Additional document as JSON {"id", "version", "name", "description"} (repeatable)`)
	c.register(cmd)

	return cmd
}

func consentWithdrawnCmd() *cobra.Command {
	var (
		c          common
		all        bool
		docID      string
		docVersion string
		docName    string
		docDesc    string
		extraDocs  []string
	)

	cmd := &cobra.Command{
		Use:   "consent-withdrawn",
		Short: "Track a consent withdrawn event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := event.NewConsentWithdrawn(all)

			if docID != "" || docVersion != "" {
				if _, err := ev.WithDocument(docID, docVersion); err != nil {
					return err
				}
				ev.WithDocumentName(docName).WithDocumentDescription(docDesc)
			}

			docs, err := parseDocuments(extraDocs)
			if err != nil {
				return err
			}
			ev.WithDocuments(docs...)

			if err := c.apply(ev); err != nil {
				return err
			}
			return runTrack(cmd, ev)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Withdraw all consent")
	cmd.Flags().StringVar(&docID, "document-id", "", "Primary consent document id")
	cmd.Flags().StringVar(&docVersion, "document-version", "", "Primary consent document version")
	cmd.Flags().StringVar(&docName, "document-name", "", "Primary consent document name")
	cmd.Flags().StringVar(&docDesc, "document-description", "", "Primary consent document description")
	cmd.Flags().StringArrayVar(&extraDocs, "document", nil, `Additional document as JSON {"id", "version", "name", "description"} (repeatable)`)
	c.register(cmd)

	return cmd
}

func selfDescribingCmd() *cobra.Command {
	var (
		c      common
		schema string
		data   string
	)

	cmd := &cobra.Command{
		Use:   "self-describing",
		Short: "Track a custom self-describing event",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]interface{}{}
			if data != "" {
				if err := json.Unmarshal([]byte(data), &fields); err != nil {
					return fmt.Errorf("invalid --data: %w", err)
				}
			}

			body, err := payload.NewSelfDescribing(schema, fields)
			if err != nil {
				return err
			}

			ev, err := event.NewSelfDescribing(body)
			if err != nil {
				return err
			}

			if err := c.apply(ev); err != nil {
				return err
			}
			return runTrack(cmd, ev)
		},
	}

	cmd.Flags().StringVar(&schema, "schema", "", "Event schema URI (required)")
	cmd.Flags().StringVar(&data, "data", "", "Event data as a JSON object")
	c.register(cmd)

	return cmd
}

type documentFlag struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func parseDocuments(raw []string) ([]*event.ConsentDocument, error) {
	docs := make([]*event.ConsentDocument, 0, len(raw))
	for i, r := range raw {
		var f documentFlag
		if err := json.Unmarshal([]byte(r), &f); err != nil {
			return nil, fmt.Errorf("invalid --document #%d: %w", i+1, err)
		}

		doc, err := event.NewConsentDocument(f.ID, f.Version)
		if err != nil {
			return nil, fmt.Errorf("invalid --document #%d: %w", i+1, err)
		}
		docs = append(docs, doc.WithName(f.Name).WithDescription(f.Description))
	}
	return docs, nil
}
