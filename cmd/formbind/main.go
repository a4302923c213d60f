package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/formfile"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
	"github.com/goliatone/go-formbind/pkg/ui"
	"github.com/goliatone/go-formbind/pkg/variable"
)

func main() {
	file := flag.String("file", "form.yaml", "form file to run")
	output := flag.String("output", "", "write resulting variables to this file (stdout if empty)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() > 0 {
		*file = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "formbind: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *file, *output); err != nil {
		logger.Error("formbind failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, path, output string) error {
	doc, err := formfile.LoadFile(path)
	if err != nil {
		return err
	}

	screen, err := tui.New(
		tui.WithTheme(tui.Theme{
			PromptPrefix: cfg.UI.PromptPrefix,
			InfoPrefix:   cfg.UI.InfoPrefix,
			ErrorPrefix:  cfg.UI.ErrorPrefix,
		}),
		tui.WithPageSize(cfg.UI.PageSize),
		tui.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	rt := ui.New(screen, screen,
		ui.WithLogger(logger),
		ui.WithFormOptions(form.WithKeyboardMonitor(cfg.UI.KeyboardMonitor)),
	)

	store := variable.NewStore()
	applyErr := doc.Apply(ctx, rt, store)
	if errors.Is(applyErr, context.Canceled) {
		logger.Info("session interrupted")
		applyErr = nil
	}
	if err := errors.Join(applyErr, rt.Reset()); err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return dumpVariables(out, store)
}

// dumpVariables writes the store as a YAML mapping in declaration order.
func dumpVariables(w io.Writer, store *variable.Store) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range store.Names() {
		v, _ := store.Get(name)
		var value yaml.Node
		if err := value.Encode(v.Value()); err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write variables: %w", err)
	}
	return enc.Close()
}
