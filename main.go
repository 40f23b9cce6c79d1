package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"webhdfs-ls/clients"
	"webhdfs-ls/listing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "webhdfs-ls [path]",
		Short: "Directory listings for a WebHDFS gateway",
		Long: `webhdfs-ls is a CLI tool for browsing a remote WebHDFS-compatible
filesystem gateway.

It fetches file and directory metadata over HTTP and renders it as a
directory listing, optionally in long format with permissions, ownership,
size and modification time.`,
		Args: cobra.MaximumNArgs(1),
		Run:  process,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.webhdfs-ls.yaml)")

	// Gateway flags
	rootCmd.Flags().StringP("url", "u", "http://localhost:50070/webhdfs/v1/", "Base URL of the WebHDFS gateway")
	rootCmd.Flags().StringP("user", "n", "hdfs", "User name sent as the user.name query parameter")
	rootCmd.Flags().IntP("max-lines", "m", 1000, "Maximum number of lines of results fetched")

	// Display flags
	rootCmd.Flags().BoolP("long", "l", false, "Use long listing format")

	// Bind flags to viper
	viper.BindPFlag("hdfs.url", rootCmd.Flags().Lookup("url"))
	viper.BindPFlag("hdfs.user", rootCmd.Flags().Lookup("user"))
	viper.BindPFlag("hdfs.maxlength", rootCmd.Flags().Lookup("max-lines"))
	viper.BindPFlag("hdfs.long", rootCmd.Flags().Lookup("long"))

	// Bind environment variables
	viper.BindEnv("hdfs.url", "WEBHDFS_URL")
	viper.BindEnv("hdfs.user", "WEBHDFS_USER")
	viper.BindEnv("hdfs.maxlength", "WEBHDFS_MAXLENGTH")
}

func initConfig() {
	if cfgFile != "" {
		// Use specified config file
		viper.SetConfigFile(cfgFile)
	} else {
		// Look for config file in home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Look for config in home directory with name ".webhdfs-ls" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".webhdfs-ls")
	}

	viper.AutomaticEnv() // read environment variables

	// If config file is found, read it
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func validation() {
	// Validate required flags
	if viper.GetString("hdfs.url") == "" {
		log.Fatal("❌ WebHDFS gateway URL is required")
	}
	if viper.GetInt("hdfs.maxlength") < 0 {
		log.Fatal("❌ max-lines must not be negative")
	}
}

func process(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	validation()

	path := "/"
	if len(args) == 1 {
		path = args[0]
	}

	gateway := clients.NewWebHDFSClient(
		viper.GetString("hdfs.url"),
		viper.GetString("hdfs.user"),
	)

	browser := listing.NewBrowser(&listing.Dependencies{
		Gateway: gateway,
	}, listing.Config{
		LongFormat: viper.GetBool("hdfs.long"),
		MaxLines:   viper.GetInt("hdfs.maxlength"),
	})

	browser.Open(ctx)
	if !browser.Connected() {
		log.Fatal("❌ Failed to connect to the WebHDFS gateway")
	}

	if !browser.IsDirectory(ctx, path) {
		log.Printf("%s is not a directory, listing the entry itself", path)
	}

	fmt.Print(browser.ListAll(ctx, path))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
