package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/simulator"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "streamgen",
	Short: "Generates synthetic food delivery event streams",
	Long: `streamgen is a CLI tool that generates two temporally correlated,
deliberately imperfect event feeds, order lifecycle events and courier status
events, for testing streaming-analytics pipelines. Output is reproducible
bit-for-bit for a fixed seed and parameter set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		sim := simulator.NewSimulator(cfg)
		return sim.Run()
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.streamgen.yaml)")

	rootCmd.Flags().Int("seed", 42, "Random seed for reproducibility")
	rootCmd.Flags().Int("num-orders", 200, "Total orders to generate")
	rootCmd.Flags().Int("num-couriers", 20, "Number of couriers")
	rootCmd.Flags().Int("num-restaurants", 30, "Number of restaurants")
	rootCmd.Flags().Int("num-zones", 5, "Number of geographic zones (1-5)")
	rootCmd.Flags().Float64("cancel-prob", 0.10, "Cancellation probability (0-1)")
	rootCmd.Flags().Float64("promo-prob", 0.20, "Probability a promo discount is applied (0-1)")
	rootCmd.Flags().Float64("duplicate-prob", 0.05, "Probability of injecting duplicate events (0-1)")
	rootCmd.Flags().Float64("late-prob", 0.08, "Probability of injecting late events (0-1)")
	rootCmd.Flags().Float64("missing-step-prob", 0.03, "Probability of skipping the PICKED_UP step (0-1)")
	rootCmd.Flags().Float64("impossible-duration-prob", 0.02, "Probability of an anomalously fast delivery (0-1)")
	rootCmd.Flags().Float64("mid-delivery-offline-prob", 0.05, "Probability a courier drops offline mid-delivery (0-1)")
	rootCmd.Flags().Float64("fraud-cluster-prob", 0.02, "Rate of fraud cancellation clusters (0-1)")
	rootCmd.Flags().Bool("zone-surge-event", false, "Inject a 5x demand spike in one zone for 15 minutes")
	rootCmd.Flags().Float64("surge-factor", 2.5, "Demand multiplier during peak hours")
	rootCmd.Flags().String("city", "madrid", "City preset for zone coordinates (madrid, barcelona, london)")
	rootCmd.Flags().String("date", "", "Simulation date in YYYY-MM-DD format (default: today)")
	rootCmd.Flags().Bool("weekend", false, "Force weekend demand pattern regardless of date")
	rootCmd.Flags().Bool("stream", false, "Streaming mode: emit NDJSON with realistic delays")
	rootCmd.Flags().Float64("speed-factor", 60, "Streaming speed: 1 real second = N simulated seconds")
	rootCmd.Flags().String("output-dir", "./sample_data", "Directory to write output files")
	rootCmd.Flags().String("output-format", "both", "Batch output format: json, parquet or both")
	rootCmd.Flags().Bool("kafka-enabled", false, "Publish the stream to Kafka instead of stdout")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-destination", "local", "Where batch files end up: local or s3")
	rootCmd.Flags().String("s3-bucket", "", "S3 bucket for uploaded output")
	rootCmd.Flags().String("s3-region", "us-east-1", "S3 region for uploaded output")

	// Config keys use underscores while flags use dashes.
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".streamgen")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
