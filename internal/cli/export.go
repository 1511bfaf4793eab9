package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/autoreview/internal/config"
	"github.com/dshills/autoreview/internal/redact"
)

var (
	flagExportFile     string
	flagExportDir      string
	flagExportEndpoint string
	flagExportRedact   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <title>",
	Short: "Publish a document to the export sink",
	Long:  "Publish text content (a review write-up, for example) to the configured document store. Content comes from --file or stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]string{}
		if flagExportDir != "" {
			overrides["exportDir"] = flagExportDir
		}
		if flagExportEndpoint != "" {
			overrides["exportEndpoint"] = flagExportEndpoint
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		var content []byte
		if flagExportFile != "" {
			content, err = os.ReadFile(flagExportFile)
		} else {
			content, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading content: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		text := string(content)
		if flagExportRedact || (cfg.Export.Redact && !cmd.Flags().Changed("redact")) {
			text = redact.Secrets(text)
		}

		sink, err := buildSink(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
		defer cancel()

		link, err := sink.Publish(ctx, args[0], text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error publishing document: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintln(os.Stdout, link)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagExportFile, "file", "", "Read content from a file instead of stdin")
	exportCmd.Flags().StringVar(&flagExportDir, "dir", "", "Document store directory")
	exportCmd.Flags().StringVar(&flagExportEndpoint, "endpoint", "", "Document store HTTP endpoint")
	exportCmd.Flags().BoolVar(&flagExportRedact, "redact", false, "Redact secrets from the content before publishing")
}
