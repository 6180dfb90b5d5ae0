package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytnotes/internal"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notes web form",
	Long: `Serve a single-page form: paste a YouTube link, press "Generate Notes",
read the notes and download them as youtube_notes.pdf.

Every request overwrites the same PDF file; concurrent users share it.`,
	Example: `  # Serve on the configured address (default :8501)
  ytnotes serve

  # Serve on another port
  ytnotes serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			config.Addr = addr
		}

		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		web, err := internal.NewWebServer(app)
		if err != nil {
			return err
		}
		return web.Start(cmd.Context(), config.Addr)
	},
}

func init() {
	internal.AddTranscriptFlags(serveCmd)
	internal.AddGenerationFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8501)")
	rootCmd.AddCommand(serveCmd)
}
