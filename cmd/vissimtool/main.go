package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/LdDl/vissim"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	modelFile string
	outFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "vissimtool",
		Short:         "Edit links, inputs and static routing of VISSIM network files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug messages to stderr")
	rootCmd.PersistentFlags().StringVar(&modelFile, "model", "network.inpx", "Filename of VISSIM network (*.inpx)")
	rootCmd.PersistentFlags().StringVar(&outFile, "out", "", "Output filename")

	rootCmd.AddCommand(importOSMCmd(), geoJSONCmd(), lanesCmd(), routeCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadModel() (*vissim.Document, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return vissim.Load(modelFile, vissim.WithLogger(logger))
}

func importOSMCmd() *cobra.Command {
	var (
		osmFile   string
		tagStr    string
		laneWidth float64
	)
	cmd := &cobra.Command{
		Use:   "import-osm",
		Short: "Create links from ways of OSM file (*.osm, *.osm.pbf)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFile == "" {
				return errors.New("--out is required")
			}
			doc, err := loadModel()
			if err != nil {
				return err
			}
			cfg := vissim.DefaultOsmConfiguration()
			if tagStr != "" {
				cfg.Tags = strings.Split(tagStr, ",")
			}
			cfg.LaneWidth = laneWidth
			imported, err := vissim.NewLinks(doc).ImportOSM(context.Background(), osmFile, cfg)
			if err != nil {
				return errors.Wrap(err, "Can't import OSM")
			}
			if err := doc.Export(outFile); err != nil {
				return err
			}
			fmt.Printf("Created %d links\n", len(imported))
			return nil
		},
	}
	cmd.Flags().StringVar(&osmFile, "osm", "my_graph.osm.pbf", "Filename of OSM data")
	cmd.Flags().StringVar(&tagStr, "tags", "", "Set of needed highway tags (separated by commas)")
	cmd.Flags().Float64Var(&laneWidth, "lane-width", 3.5, "Width of created lanes (meters)")
	return cmd
}

func geoJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geojson",
		Short: "Export links as GeoJSON FeatureCollection",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadModel()
			if err != nil {
				return err
			}
			b, err := vissim.NewLinks(doc).GeoJSON()
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err = os.Stdout.Write(b)
				return err
			}
			return errors.Wrap(os.WriteFile(outFile, b, 0644), "Can't write GeoJSON")
		},
	}
}

func lanesCmd() *cobra.Command {
	var linkNo int
	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Print WKT of link geometry and of its lane center lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadModel()
			if err != nil {
				return err
			}
			links := vissim.NewLinks(doc)
			line, err := links.WKT(linkNo)
			if err != nil {
				return err
			}
			fmt.Printf("link;%d;%s\n", linkNo, line)
			lanes, err := links.LaneCenterlines(linkNo)
			if err != nil {
				return err
			}
			for i, lane := range lanes {
				fmt.Printf("lane;%d;%s\n", i+1, wkt.MarshalString(lane))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&linkNo, "link", 1, "Link number")
	return cmd
}

func routeCmd() *cobra.Command {
	var (
		routingNo int
		destLink  int
		apply     bool
	)
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Find link sequence from routing decision to destination link",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadModel()
			if err != nil {
				return err
			}
			routing := vissim.NewStaticRouting(doc)
			seq, err := routing.SuggestRouteSeq(routingNo, destLink)
			if err != nil {
				return err
			}
			fmt.Printf("Link sequence: %v\n", seq)
			if !apply {
				return nil
			}
			if outFile == "" {
				return errors.New("--out is required with --apply")
			}
			routeNo, err := routing.CreateRoute(routingNo, destLink, vissim.Values{"linkSeq": seq})
			if err != nil {
				return err
			}
			fmt.Printf("Created route %d of routing decision %d\n", routeNo, routingNo)
			return doc.Export(outFile)
		},
	}
	cmd.Flags().IntVar(&routingNo, "routing", 1, "Number of static routing decision")
	cmd.Flags().IntVar(&destLink, "dest", 1, "Destination link")
	cmd.Flags().BoolVar(&apply, "apply", false, "Create route with found sequence")
	return cmd
}
