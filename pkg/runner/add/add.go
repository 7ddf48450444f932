// Package add imports messages into the archive.
package add

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/logbook/pkg/archive"
	"tableflip.dev/logbook/pkg/printers"
	"tableflip.dev/logbook/pkg/store"
)

// Add reads JSON lines messages from each input and stores them.
type Add struct {
	// Inputs are file paths, "-" reads Stdin.
	Inputs []string
	Stdin  io.Reader
	Out    io.Writer

	Persistence store.Persistence
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if len(n.Inputs) == 0 {
		return errors.New("can not add, no input")
	}

	counts := make(map[string]int)
	var order []archive.MonthEntry
	total := 0
	for _, in := range n.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		msgs, err := n.read(in)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			if err := n.Persistence.Store(m); err != nil {
				return fmt.Errorf("%s: store message %d: %w", in, m.ID, err)
			}
			slug := archive.MonthSlug(m.Date.UTC())
			if _, ok := counts[slug]; !ok {
				order = append(order, archive.NewMonth(m.Date.Time, 0))
			}
			counts[slug]++
		}
		total += len(msgs)
		zap.L().Info("Imported messages", zap.String("input", in), zap.Int("count", len(msgs)))
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.TitleWithCount("Imported", total)
	for i := range order {
		order[i].Count = counts[order[i].Slug]
	}
	pp.Timeline(archive.GroupTimeline(order))
	return nil
}

func (n *Add) read(in string) ([]archive.Message, error) {
	if in == "-" {
		if n.Stdin == nil {
			return Decode(os.Stdin, "stdin")
		}
		return Decode(n.Stdin, "stdin")
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, in)
}

// Decode parses one JSON message per line. Blank lines are skipped.
func Decode(r io.Reader, name string) ([]archive.Message, error) {
	var msgs []archive.Message
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var m archive.Message
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		if m.Date.IsZero() {
			return nil, fmt.Errorf("%s:%d: message %d has no date", name, line, m.ID)
		}
		msgs = append(msgs, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return msgs, nil
}
