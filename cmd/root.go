package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/aita/cms/db"
	"github.com/aita/cms/logging"
	"github.com/aita/cms/shell"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cms",
	Short: "Class Management System",
	Long: `cms manages the StudentRecords table stored in a tab-delimited text file.

Without a subcommand it starts the interactive shell.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sh := shell.New(openDB(), os.Stdin, cmd.OutOrStdout(), nil)
		sh.Run()
		return nil
	},
}

// Execute runs the root command. Errors are reported but the exit code stays 0.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cms.yaml)")
	rootCmd.PersistentFlags().String("file", "", "database file (default is ../Sample-CMS.txt)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("file", "../Sample-CMS.txt")
	viper.SetDefault("authors", db.DefaultAuthors)
	viper.SetDefault("capacity", db.DefaultCapacity)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".cms")
	}

	viper.SetEnvPrefix("cms")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	readErr := viper.ReadInConfig()
	logger := logging.Setup(os.Stderr, viper.GetString("log.level"), viper.GetString("log.format"))
	if readErr == nil {
		logger.Info("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logger.Warn("cannot read config file", "path", cfgFile, "error", readErr)
	}
}

func openDB() *db.DB {
	return db.New(viper.GetString("file"), db.Options{
		Capacity: viper.GetInt("capacity"),
		Authors:  viper.GetString("authors"),
	})
}
