package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jmccarv/bifid"
)

const maxLine = 1 << 20

// message is one unit of input. Comment lines are kept so that line numbers
// in logs match the input, but produce no output.
type message struct {
	lno     int
	text    string
	comment bool
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

// readMessages splits r into messages: one per line, or a single message
// holding everything when lines is false.
func readMessages(r io.Reader, lines bool) ([]message, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return []message{{lno: 1, text: string(b)}}, nil
	}

	var msgs []message
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLine)
	lno := 0
	for s.Scan() {
		lno++
		line := s.Text()
		msgs = append(msgs, message{lno: lno, text: line, comment: isComment(line)})
	}
	return msgs, s.Err()
}

type runParams struct {
	cipher *bifid.Cipher
	mode   bifid.Mode
	in     io.Reader
	name   string
	out    io.Writer
	diag   io.Writer
}

// transformAll runs every non-comment message through c, at most workers at
// a time. The returned traces are in input order; comments leave a zero
// Trace in their slot.
func transformAll(ctx context.Context, c *bifid.Cipher, mode bifid.Mode, msgs []message, workers int) ([]bifid.Trace, error) {
	traces := make([]bifid.Trace, len(msgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range msgs {
		if m.comment {
			continue
		}
		if gctx.Err() != nil {
			break
		}

		i, m := i, m // per-iteration copies (go < 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr, err := c.Trace(mode, m.text)
			if err != nil {
				return fmt.Errorf("line %d: %w", m.lno, err)
			}
			traces[i] = tr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return traces, ctx.Err()
}

func (a *app) run(ctx context.Context, p runParams) error {
	start := time.Now()

	msgs, err := readMessages(p.in, a.cfg.Lines)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.name, err)
	}
	a.logger.Debug("read input",
		zap.String("source", p.name),
		zap.Int("messages", len(msgs)),
		zap.Stringer("mode", p.mode))

	traces, err := transformAll(ctx, p.cipher, p.mode, msgs, a.cfg.Workers())
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		fmt.Fprintln(p.diag, renderTable(p.cipher.Table()))
	}

	skipped := 0
	for i, m := range msgs {
		if m.comment {
			skipped++
			a.logger.Debug("skipping comment", zap.Int("line", m.lno))
			continue
		}
		if a.cfg.Verbose {
			fmt.Fprintln(p.diag, renderTrace(m.lno, traces[i]))
		}
		fmt.Fprintln(p.out, traces[i].Result())
	}

	a.logger.Debug("done",
		zap.Int("messages", len(msgs)-skipped),
		zap.Int("comments", skipped),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
