package main

import (
	"fmt"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/ogcard"
	"github.com/eringen/ogcard/cards"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a card described by a YAML job file",
	Example: `  ogcard render -f job.yaml -o card.svg
  cat job.yaml | ogcard render -f -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobPath, _ := cmd.Flags().GetString("file")
		outPath, _ := cmd.Flags().GetString("out")
		engineURL, _ := cmd.Flags().GetString("engine")
		verify, _ := cmd.Flags().GetBool("verify-fonts")
		verbose, _ := cmd.Flags().GetBool("verbose")

		j, err := readJob(jobPath)
		if err != nil {
			return err
		}
		tmpl, err := lookupTemplate(j.Template)
		if err != nil {
			return err
		}
		engine, err := ogcard.NewHTTPEngine(engineURL)
		if err != nil {
			return err
		}

		logger := log.New("ogcard")
		logger.SetLevel(log.WARN)
		if verbose {
			logger.SetLevel(log.DEBUG)
		}
		// Job files are local, so their fonts may be local too.
		loaderOpts := []ogcard.FontLoaderOption{ogcard.WithFileURLs()}
		if verify {
			loaderOpts = append(loaderOpts, ogcard.WithFontVerification())
		}
		gen := ogcard.NewGenerator(engine,
			ogcard.WithLogger(logger),
			ogcard.WithFontLoader(ogcard.NewFontLoader(loaderOpts...)),
		)

		r := gen.Generate(cmd.Context(), tmpl, j.Props, j.Config)
		switch r.Status {
		case ogcard.StatusFailed:
			return r.Err
		case ogcard.StatusEmpty:
			return fmt.Errorf("engine produced no image")
		}

		if outPath == "" || outPath == "-" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), r.SVG)
			return err
		}
		return os.WriteFile(outPath, []byte(r.SVG), 0o644)
	},
}

func lookupTemplate(name string) (ogcard.Template, error) {
	for _, t := range cards.All() {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown template %q", name)
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("file", "f", "-", "Job file (- for stdin)")
	renderCmd.Flags().StringP("out", "o", "", "Output SVG path (stdout if empty)")
	renderCmd.Flags().Bool("verify-fonts", false, "Reject font payloads that are not TrueType/OpenType")
	renderCmd.Flags().BoolP("verbose", "v", false, "Log pipeline steps")
}
