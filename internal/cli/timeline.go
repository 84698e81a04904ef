package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"logyourbody/internal/domain"
	"logyourbody/internal/timeline"
)

var (
	timelineInput  string
	timelineUnit   string
	timelineFormat string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Build the timeline of exported records and print it",
	Long: `timeline runs the timeline builder and display resolver over a JSON
export of the form {"heightCm": 180, "metrics": [...], "photos": [...]}
without touching any storage. Use --input - to read stdin.`,
	Args: cobra.NoArgs,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().StringVarP(&timelineInput, "input", "i", "", "exported records file, - for stdin")
	timelineCmd.Flags().StringVar(&timelineUnit, "unit", "lbs", "weight unit: kg, lbs")
	timelineCmd.Flags().StringVar(&timelineFormat, "format", "table", "output format: table, json")
	_ = timelineCmd.MarkFlagRequired("input")
}

// recordsExport is the offline input of the timeline command.
type recordsExport struct {
	HeightCm float64               `json:"heightCm"`
	Metrics  []domain.MetricRecord `json:"metrics"`
	Photos   []domain.PhotoRecord  `json:"photos"`
}

type timelineRow struct {
	Date     domain.Day             `json:"date"`
	PhotoURL string                 `json:"photoUrl,omitempty"`
	Display  timeline.DisplayValues `json:"display"`
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	unit, err := domain.ParseWeightUnit(timelineUnit)
	if err != nil {
		return err
	}

	export, err := readExport(cmd.InOrStdin(), timelineInput)
	if err != nil {
		return err
	}

	entries := timeline.Build(export.Metrics, export.Photos, export.HeightCm)
	rows := make([]timelineRow, 0, len(entries))
	for _, e := range entries {
		row := timelineRow{Date: e.Date, Display: timeline.Resolve(e).In(unit)}
		if e.Photo != nil {
			row.PhotoURL = e.Photo.PhotoURL
		}
		rows = append(rows, row)
	}

	out := cmd.OutOrStdout()
	switch timelineFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "table":
		return printTimeline(out, rows)
	default:
		return fmt.Errorf("unknown format %q", timelineFormat)
	}
}

func readExport(stdin io.Reader, path string) (*recordsExport, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	var export recordsExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i, m := range export.Metrics {
		if _, err := domain.ParseDay(string(m.Date)); err != nil {
			return nil, fmt.Errorf("metrics[%d]: %w", i, err)
		}
	}
	for i, p := range export.Photos {
		if _, err := domain.ParseDay(string(p.Date)); err != nil {
			return nil, fmt.Errorf("photos[%d]: %w", i, err)
		}
	}
	return &export, nil
}

func printTimeline(w io.Writer, rows []timelineRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tWEIGHT\tBODY FAT\tLEAN MASS\tFFMI\tSOURCE\tPHOTO")
	for _, r := range rows {
		v := r.Display
		source := "measured"
		switch {
		case v.IsInferred:
			source = "inferred/" + string(v.Confidence)
		case v.Weight == nil:
			source = timeline.Placeholder
		}
		weight := timeline.FormatValue(v.Weight, 1)
		if v.Weight != nil {
			weight += " " + string(v.WeightUnit)
		}
		photo := r.PhotoURL
		if photo == "" {
			photo = timeline.Placeholder
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date,
			weight,
			timeline.FormatValue(v.BodyFatPercentage, 1),
			timeline.FormatValue(v.LeanBodyMass, 1),
			timeline.FormatValue(v.FFMI, 1),
			source,
			photo,
		)
	}
	return tw.Flush()
}
