package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/slots"
)

// slotKeys lists the slots copied, in order.
var slotKeys = []string{slots.KeyContacts, slots.KeyRelationships, slots.KeyJournal}

// errTargetNotEmpty is returned when the target already holds data and
// Force is not set.
var errTargetNotEmpty = errors.New("target already holds data; set FORCE=true to overwrite")

type copyOptions struct {
	DryRun bool
	Force  bool
}

// slotResult is the outcome for one slot.
type slotResult struct {
	Key      string
	Records  int
	Bytes    int
	Missing  bool
	Verified bool
}

// report holds the final migration summary.
type report struct {
	Source   string
	Target   string
	Slots    []slotResult
	Duration time.Duration
	DryRun   bool
	Err      error
}

// copySlots reads every collection slot from src, checks it decodes, and
// writes it to dst. Each written slot is read back and compared.
func copySlots(ctx context.Context, src, dst slots.Backend, opts copyOptions, log *logrus.Logger) (report, error) {
	r := report{DryRun: opts.DryRun}

	if !opts.Force {
		for _, key := range slotKeys {
			_, ok, err := dst.Get(ctx, key)
			if err != nil {
				return r, fmt.Errorf("checking target %s: %w", key, err)
			}
			if ok {
				return r, errTargetNotEmpty
			}
		}
	}

	blobs := make(map[string][]byte, len(slotKeys))
	for _, key := range slotKeys {
		res := slotResult{Key: key}

		blob, ok, err := src.Get(ctx, key)
		if err != nil {
			return r, fmt.Errorf("reading %s: %w", key, err)
		}
		if !ok {
			res.Missing = true
			r.Slots = append(r.Slots, res)
			log.WithField("slot", key).Warn("slot missing in source, skipping")
			continue
		}

		var records []json.RawMessage
		if err := json.Unmarshal(blob, &records); err != nil {
			return r, fmt.Errorf("decoding %s: %w", key, err)
		}
		res.Records = len(records)
		res.Bytes = len(blob)
		blobs[key] = blob
		r.Slots = append(r.Slots, res)

		log.WithFields(logrus.Fields{"slot": key, "records": res.Records}).Info("read slot")
	}

	if opts.DryRun {
		log.Info("dry run, skipping writes")
		return r, nil
	}

	for i := range r.Slots {
		res := &r.Slots[i]
		if res.Missing {
			continue
		}

		if err := dst.Put(ctx, res.Key, blobs[res.Key]); err != nil {
			return r, fmt.Errorf("writing %s: %w", res.Key, err)
		}

		got, ok, err := dst.Get(ctx, res.Key)
		if err != nil {
			return r, fmt.Errorf("verifying %s: %w", res.Key, err)
		}
		if !ok || !bytes.Equal(got, blobs[res.Key]) {
			return r, fmt.Errorf("verifying %s: read-back differs from source", res.Key)
		}
		res.Verified = true

		log.WithField("slot", res.Key).Info("wrote slot")
	}

	return r, nil
}

func printReport(w io.Writer, r *report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Migration report")
	fmt.Fprintln(w, "================")
	fmt.Fprintf(w, "source:   %s\n", r.Source)
	fmt.Fprintf(w, "target:   %s\n", r.Target)
	fmt.Fprintf(w, "dry run:  %v\n", r.DryRun)
	fmt.Fprintf(w, "duration: %s\n\n", r.Duration.Round(time.Millisecond))

	for _, s := range r.Slots {
		switch {
		case s.Missing:
			fmt.Fprintf(w, "  %-18s missing\n", s.Key)
		case s.Verified:
			fmt.Fprintf(w, "  %-18s %d records, %d bytes, verified\n", s.Key, s.Records, s.Bytes)
		default:
			fmt.Fprintf(w, "  %-18s %d records, %d bytes\n", s.Key, s.Records, s.Bytes)
		}
	}

	fmt.Fprintln(w)
	if r.Err != nil {
		fmt.Fprintf(w, "FAILED: %v\n", r.Err)
		return
	}
	fmt.Fprintln(w, "OK")
}
