package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/bplemons/flow-metrics/internal/config"
)

var cfgFile string
var spotifyClientID string
var spotifyClientSecret string
var geniusAccessToken string
var musicBrainzContact string
var databasePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flow-metrics",
	Short: "Collects hip-hop artist metadata and measures lyric vocabulary",
	Long: `Gathers artist and track metadata from Spotify and MusicBrainz, fetches
lyrics from Genius, and computes lexical-diversity metrics to relate
vocabulary richness to career success.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.flow-metrics.yaml)")

	rootCmd.PersistentFlags().StringVar(
		&spotifyClientID, "client_id", "", "Spotify client ID")
	viper.BindPFlag("spotify_client_id", rootCmd.PersistentFlags().Lookup("client_id"))

	rootCmd.PersistentFlags().StringVar(
		&spotifyClientSecret, "client_secret", "", "Spotify client secret")
	viper.BindPFlag("spotify_client_secret", rootCmd.PersistentFlags().Lookup("client_secret"))

	rootCmd.PersistentFlags().StringVar(
		&geniusAccessToken, "genius_token", "", "Genius API access token")
	viper.BindPFlag("genius_access_token", rootCmd.PersistentFlags().Lookup("genius_token"))

	rootCmd.PersistentFlags().StringVar(
		&musicBrainzContact, "contact", "", "Contact address for the MusicBrainz User-Agent")
	viper.BindPFlag("musicbrainz_contact", rootCmd.PersistentFlags().Lookup("contact"))

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./flowmetrics.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".flow-metrics" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".flow-metrics")
	}

	config.BindEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func loadConfig() *config.Config {
	return config.Load()
}
