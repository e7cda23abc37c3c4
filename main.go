package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"imagemerger/config"
	"imagemerger/imageprocessor"
	"imagemerger/imageprocessor/opencv"
	"imagemerger/logging"
	"imagemerger/prompt"
	"imagemerger/signalhandler"
	"imagemerger/utils"
)

func main() {
	rootCmd := newRootCommand(os.Stdin, os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

// reportedError is a fatal error already shown to the operator
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// abort shows a fatal startup error on the console and waits for the
// operator, the same way a failed merge ends
func abort(p *prompt.Prompter, err error) error {
	logging.LogError("Startup failed: %v", err)
	p.Error("%v", err)
	p.WaitForExit()
	return &reportedError{err: err}
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "imagemerger",
		Short:         "Stitch the images of a folder into one image",
		Long:          "imagemerger asks for a folder, an ordering and a direction, then concatenates the folder's images into a single jpg, png or bmp file.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
			p := prompt.New(in, out)

			path, err := homedir.Expand(configPath)
			if err != nil {
				return abort(p, err)
			}
			cfg, err := config.Load(path, cmd.Flags().Changed("config"), cmd.Flags())
			if err != nil {
				return abort(p, err)
			}
			return runInteractive(cmd, cfg, p)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", utils.GetDefaultConfigPath(), "Defaults file (YAML)")
	flags.Bool("debug", false, "Write a debug log")
	flags.String("logfile", "imagemerger.log", "Path of the debug log")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("opencv-fallback", false, "Retry images the built-in decoders reject with OpenCV")

	cmd.AddCommand(newConfigCommand(out))
	return cmd
}

func runInteractive(cmd *cobra.Command, cfg *config.Config, p *prompt.Prompter) error {
	if !cfg.UI.Color {
		color.NoColor = true
	}

	if cfg.Log.Debug || cmd.Flags().Changed("logfile") {
		if err := logging.SetupLogger(cfg.Log.File, cfg.Log.Debug); err != nil {
			p.Warn("failed to set up logging: %v", err)
		} else {
			defer logging.CloseLogger()
			if cfg.Log.Debug {
				p.Info("Debug mode enabled. Logging to: %s", cfg.Log.File)
			}
		}
	}

	stop := signalhandler.SetupHandler(p.Out())
	defer stop()

	registry := imageprocessor.NewImageLoaderRegistry()
	if cfg.Decoder.OpenCVFallback {
		registry.RegisterFallback(opencv.NewLoader())
		logging.DebugLog("OpenCV fallback decoder enabled")
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return abort(p, fmt.Errorf("cannot determine the current folder: %w", err))
	}

	s := &session{
		prompter:   p,
		cfg:        cfg,
		registry:   registry,
		workingDir: workingDir,
		now:        time.Now,
	}
	s.runAndWait()
	return nil
}

func newConfigCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the defaults file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a defaults file with the built-in values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := utils.GetDefaultConfigPath()
			if len(args) == 1 {
				expanded, err := homedir.Expand(args[0])
				if err != nil {
					return err
				}
				path = expanded
			}
			if err := config.WriteDefaultFile(path); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote default configuration to %s\n", path)
			return nil
		},
	})
	return cmd
}
