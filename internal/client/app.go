package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/cryptpix/internal/adapter"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/models"
)

const usage = `usage: cryptpix-client <command> [flags]

commands:
  upload  -file PATH [-split true|false] [-distort true|false]
  get     -id ID
  delete  -id ID
  render  -id ID [-width W] [-height H] [-alt TEXT] [-parent] [-json] [-copy]
  version
`

type App struct {
	adapter adapter.ServerAdapter

	stdout          io.Writer
	readFile        func(string) ([]byte, error)
	copyToClipboard func(string) error

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *App {
	return &App{
		adapter:         serverAdapter,
		stdout:          os.Stdout,
		readFile:        os.ReadFile,
		copyToClipboard: clipboard.WriteAll,
		logger:          logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		_, _ = io.WriteString(a.stdout, usage)
		return fmt.Errorf("%w: none given", ErrUnknownCommand)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "upload":
		return a.upload(ctx, rest)
	case "get":
		return a.get(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "render":
		return a.render(ctx, rest)
	case "version":
		return a.version(ctx)
	case "help", "-h", "--help":
		_, _ = io.WriteString(a.stdout, usage)
		return nil
	default:
		_, _ = io.WriteString(a.stdout, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("file", "", "image file to upload")
	split := fs.String("split", "", "split into two checkerboard layers")
	distort := fs.String("distort", "", "apply hue rotation and inversion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("%w: -file", ErrMissingFlag)
	}

	useSplit, err := optionalBool("split", *split)
	if err != nil {
		return err
	}
	useDistortion, err := optionalBool("distort", *distort)
	if err != nil {
		return err
	}

	data, err := a.readFile(*path)
	if err != nil {
		return fmt.Errorf("read %s: %w", *path, err)
	}

	record, err := a.adapter.UploadImage(ctx, adapter.UploadRequest{
		FileName:      filepath.Base(*path),
		Data:          data,
		UseSplit:      useSplit,
		UseDistortion: useDistortion,
	})
	if err != nil {
		return err
	}

	return a.printJSON(record)
}

func (a *App) get(ctx context.Context, args []string) error {
	id, err := parseID("get", args)
	if err != nil {
		return err
	}

	record, err := a.adapter.GetImage(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(record)
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, err := parseID("delete", args)
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteImage(ctx, id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "deleted %s\n", id)
	return err
}

func (a *App) render(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	id := fs.String("id", "", "record id")
	width := fs.String("width", "", "stack width (e.g. 320 or 50%)")
	height := fs.String("height", "", "stack height")
	alt := fs.String("alt", "", "alternative text")
	parent := fs.Bool("parent", false, "size relative to #photo-container")
	asJSON := fs.Bool("json", false, "print the whole presentation as JSON")
	copyOut := fs.Bool("copy", false, "copy the markup to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("%w: -id", ErrMissingFlag)
	}

	p, err := a.adapter.GetPresentation(ctx, *id, models.PresentationOptions{
		Width:      *width,
		Height:     *height,
		Alt:        *alt,
		ParentSize: *parent,
	})
	if err != nil {
		return err
	}

	if *copyOut {
		if err = a.copyToClipboard(p.HTML); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		a.logger.Info().Str("record_id", p.RecordID).Msg("markup copied to clipboard")
	}

	if *asJSON {
		return a.printJSON(p)
	}
	_, err = fmt.Fprintln(a.stdout, p.HTML)
	return err
}

func (a *App) version(ctx context.Context) error {
	v, err := a.adapter.GetVersion(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, v)
	return err
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	id := fs.String("id", "", "record id")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *id == "" {
		return "", fmt.Errorf("%w: -id", ErrMissingFlag)
	}
	return *id, nil
}

// optionalBool parses a tri-state flag: empty leaves the server default.
func optionalBool(name, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid -%s value %q: %w", name, raw, err)
	}
	return &v, nil
}
