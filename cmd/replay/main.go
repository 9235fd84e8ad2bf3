// Command replay plays a YAML move script and prints the final position.
package main

import (
	"fmt"
	"io"
	"os"

	"Draughts/game/core"
	"Draughts/game/obslog"
	"Draughts/game/script"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type options struct {
	Filename flags.Filename `short:"f" long:"filename" description:"move script to replay" required:"true"`
	LogLevel string         `short:"l" long:"log-level" description:"debug shows rejected moves" default:"info"`
	Format   string         `long:"log-format" description:"console or json" default:"console"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}
	if err := obslog.Init(obslog.Options{Level: opts.LogLevel, Format: opts.Format}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer obslog.L().Sync()

	if err := run(string(opts.Filename), os.Stdout); err != nil {
		obslog.L().Error("replay failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(path string, w io.Writer) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	g, err := s.NewGame(core.WithLogger(obslog.L()))
	if err != nil {
		return err
	}

	out, runErr := s.Run(g)
	fmt.Fprintf(w, "%d of %d moves replayed\n\n", len(out), len(s.Moves))
	fmt.Fprintln(w, g.Board().String())
	for _, pl := range g.Players() {
		fmt.Fprintf(w, "%-6s %-10s left=%d captured=%d kings=%d triple=%d\n",
			pl.Color, pl.Name, pl.PiecesLeft(), pl.CapturedPiecesCount(), pl.KingCount(), pl.TripleKingCount())
	}
	fmt.Fprintf(w, "turn: %s\nwinner: %s\n", g.CurrentTurn(), g.Winner())
	return runErr
}
