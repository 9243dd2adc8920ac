package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/boatramps/internal/feature"
	"github.com/sells-group/boatramps/internal/geospatial"
	"github.com/sells-group/boatramps/internal/output"
)

var nearCmd = &cobra.Command{
	Use:   "near",
	Short: "List ramps within a radius of a point",
	Long:  "Reads the scraped GeoJSON file and lists ramps within --radius-km of --lat/--lng, in file order.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		vals, err := floatFlags(cmd, "lat", "lng", "radius-km")
		if err != nil {
			return eris.Wrap(err, "near")
		}
		lat, lng, radius := vals[0], vals[1], vals[2]
		if radius < 0 {
			return eris.Errorf("near: --radius-km must not be negative, got %v", radius)
		}

		fc, err := output.ReadFile(inputPath(cmd))
		if err != nil {
			return eris.Wrap(err, "near")
		}

		formatRamps(cmd.OutOrStdout(), geospatial.QueryWithinDistance(fc, lat, lng, radius))
		return nil
	},
}

var bboxCmd = &cobra.Command{
	Use:   "bbox",
	Short: "List ramps inside a bounding box",
	Long:  "Reads the scraped GeoJSON file and lists ramps inside the --north/--south/--east/--west bounds, edges included.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		box, err := parseBBox(cmd)
		if err != nil {
			return err
		}

		fc, err := output.ReadFile(inputPath(cmd))
		if err != nil {
			return eris.Wrap(err, "bbox")
		}

		formatRamps(cmd.OutOrStdout(), geospatial.QueryBBox(fc, box))
		return nil
	},
}

func init() {
	nearCmd.Flags().Float64("lat", 0, "latitude of the center point")
	nearCmd.Flags().Float64("lng", 0, "longitude of the center point")
	nearCmd.Flags().Float64("radius-km", 10, "search radius in kilometres")
	nearCmd.Flags().String("in", "", "GeoJSON file to read (defaults to output.path)")
	_ = nearCmd.MarkFlagRequired("lat")
	_ = nearCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(nearCmd)

	for _, name := range []string{"north", "south", "east", "west"} {
		bboxCmd.Flags().Float64(name, 0, name+" edge in degrees")
		_ = bboxCmd.MarkFlagRequired(name)
	}
	bboxCmd.Flags().String("in", "", "GeoJSON file to read (defaults to output.path)")
	rootCmd.AddCommand(bboxCmd)
}

// inputPath returns --in if set, otherwise the configured output path.
func inputPath(cmd *cobra.Command) string {
	if in, _ := cmd.Flags().GetString("in"); in != "" {
		return in
	}
	return cfg.Output.Path
}

// parseBBox builds and validates a BBox from the bbox command flags.
func parseBBox(cmd *cobra.Command) (geospatial.BBox, error) {
	vals, err := floatFlags(cmd, "north", "south", "east", "west")
	if err != nil {
		return geospatial.BBox{}, eris.Wrap(err, "bbox")
	}

	box := geospatial.BBox{MinLat: vals[1], MaxLat: vals[0], MinLng: vals[3], MaxLng: vals[2]}
	if err := box.Validate(); err != nil {
		return geospatial.BBox{}, eris.Wrap(err, "bbox")
	}
	return box, nil
}

// floatFlags reads the named float64 flags in order.
func floatFlags(cmd *cobra.Command, names ...string) ([]float64, error) {
	vals := make([]float64, len(names))
	for i, name := range names {
		v, err := cmd.Flags().GetFloat64(name)
		if err != nil {
			return nil, eris.Wrapf(err, "read --%s", name)
		}
		vals[i] = v
	}
	return vals, nil
}

// formatRamps writes a tabular listing of ramps to out.
func formatRamps(out io.Writer, ramps []*feature.Feature) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tLAT\tLNG\tURL")
	_, _ = fmt.Fprintln(w, "--\t----\t---\t---\t---")

	for _, r := range ramps {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.5f\t%.5f\t%s\n",
			r.Properties.ID,
			r.Properties.Name,
			r.Lat(),
			r.Lng(),
			r.Properties.URL,
		)
	}
	_ = w.Flush()
}
