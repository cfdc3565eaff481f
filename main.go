package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/precios-ar/precios-api/cmd"
)

func main() {

	rootCmd := &cobra.Command{
		Use:          "precios-api",
		Short:        "Convert and serve historical fuel prices for Argentine filling stations",
		SilenceUsage: true,
	}

	var (
		csvPath        string
		outPath        string
		concurrency    int
		skipBadRecords bool
	)
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the historical prices CSV into a stations JSON document",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Convert(csvPath, outPath, concurrency, skipBadRecords)
		},
	}
	convertCmd.Flags().StringVar(&csvPath, "csv", "precios-historicos.csv", "path to the input CSV file")
	convertCmd.Flags().StringVar(&outPath, "out", "stations_prices.json", "path to the output JSON file")
	convertCmd.Flags().IntVar(&concurrency, "concurrency", 0, "max concurrent geocoding lookups (default from GEOCODER_CONCURRENCY, or 5)")
	convertCmd.Flags().BoolVar(&skipBadRecords, "skip-bad-records", false, "skip records with missing fields instead of aborting")

	var (
		dataPath string
		port     int
		debug    bool
	)
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converted stations document over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(dataPath, port, debug)
		},
	}
	serveCmd.Flags().StringVar(&dataPath, "data", "stations_prices.json", "path to the stations JSON document")
	serveCmd.Flags().IntVar(&port, "port", 8080, "HTTP port to listen on")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "enable pprof endpoints")

	rootCmd.AddCommand(convertCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
