package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	// Register BMP, TIFF and WebP with image.Decode.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/binarizer"
	"github.com/ericlevine/qrdecode/internal/config"
	"github.com/ericlevine/qrdecode/qrcode"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// fileReport is the outcome for one input file.
type fileReport struct {
	File    string            `json:"file" yaml:"file"`
	Results []qrdecode.Result `json:"results" yaml:"results"`
	Error   string            `json:"error,omitempty" yaml:"error,omitempty"`
}

func newDecodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode every QR code in the given images",
		Long: `Decode every QR code in the given images.

Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP

Examples:
  qrscan decode ticket.png
  qrscan decode --format json scans/*.jpg
  qrscan decode --charset Shift_JIS --parallelism 4 label.bmp`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, a.cfg, args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", formatText, "output format (text, json, yaml)")
	flags.IntP("parallelism", "p", 1, "corner hypotheses decoded concurrently")
	flags.Int("max-hypotheses", 0, "maximum corner hypotheses per image (0 = no limit)")
	flags.String("charset", "", "character set for payloads without an ECI designator (default: guess)")
	flags.Int("threshold", 0, "fixed binarization threshold 1-255 (0 = estimate)")
	a.bind("format", flags.Lookup("format"))
	a.bind("parallelism", flags.Lookup("parallelism"))
	a.bind("max_hypotheses", flags.Lookup("max-hypotheses"))
	a.bind("charset", flags.Lookup("charset"))
	a.bind("threshold", flags.Lookup("threshold"))
	return cmd
}

func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.loader.Viper().BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag.Name, err))
	}
}

func runDecode(cmd *cobra.Command, cfg *config.Config, paths []string) error {
	reader := qrcode.NewReader(&qrdecode.DecodeOptions{
		Parallelism:   cfg.Parallelism,
		MaxHypotheses: cfg.MaxHypotheses,
		CharacterSet:  cfg.CharacterSet,
		Logger:        slog.Default(),
	})

	reports := make([]fileReport, 0, len(paths))
	failed := 0
	for _, path := range paths {
		report := fileReport{File: path, Results: []qrdecode.Result{}}
		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			slog.Error("failed to load image", "file", path, "error", err)
			report.Error = err.Error()
			reports = append(reports, report)
			failed++
			continue
		}
		results, err := decodeImage(cmd, reader, img, cfg.Threshold)
		if err != nil {
			return err
		}
		slog.Debug("decoded image", "file", path, "symbols", len(results))
		report.Results = append(report.Results, results...)
		reports = append(reports, report)
	}

	if err := writeReports(cmd.OutOrStdout(), cfg.Format, reports); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be loaded", failed, len(paths))
	}
	return nil
}

// decodeImage returns every symbol in img. An image without a symbol yields
// an empty slice.
func decodeImage(cmd *cobra.Command, reader *qrcode.Reader, img image.Image, threshold int) ([]qrdecode.Result, error) {
	bm, err := binarizer.FromImage(img, threshold)
	if errors.Is(err, qrdecode.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	results, err := reader.DecodeAll(cmd.Context(), bm)
	if errors.Is(err, qrdecode.ErrNotFound) {
		return nil, nil
	}
	return results, err
}

func writeReports(w io.Writer, format string, reports []fileReport) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range reports {
			switch {
			case r.Error != "":
				fmt.Fprintf(w, "%s: error: %s\n", r.File, r.Error)
			case len(r.Results) == 0:
				fmt.Fprintf(w, "%s: no QR code found\n", r.File)
			}
			for _, res := range r.Results {
				fmt.Fprintf(w, "%s: [version %d, level %s] %s\n", r.File, res.Version, res.ECLevel, res.Text)
			}
		}
		return nil
	}
}
