package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/boatramps/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "boatramps",
	Short: "Boat ramp map scraper",
	Long:  "Scrapes boat ramp markers from the batramper.se map page into a GeoJSON feature collection and queries the result.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "boatramps: load config")
		}
		if err := config.InitLogger(c.Log); err != nil {
			return eris.Wrap(err, "boatramps: init logger")
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
