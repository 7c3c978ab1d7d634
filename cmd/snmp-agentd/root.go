package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	cfgFile        string
	address        string
	community      string
	workers        int
	queueSize      int
	mibFile        string
	metricsAddress string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "snmp-agentd",
	Short: "SNMPv1 agent daemon",
	Long: `snmp-agentd is a standalone SNMPv1 agent.

It binds a UDP socket, answers Get/GetNext/Set requests against a
configurable MIB, and optionally exposes a Prometheus metrics endpoint.

Examples:
  # Listen on the default SNMP port with the public community
  snmp-agentd serve

  # Listen on a custom address with a seeded MIB file
  snmp-agentd serve --address :1161 --mib ./testdata/mib.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.snmp-agentd.yaml)")
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", ":161", "UDP listen address")
	rootCmd.PersistentFlags().StringVarP(&community, "community", "c", "public", "community string to require; when this flag is not given, any community is accepted")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 4, "number of request worker goroutines")
	rootCmd.PersistentFlags().IntVar(&queueSize, "queue-size", 256, "bounded task queue size")
	rootCmd.PersistentFlags().StringVar(&mibFile, "mib", "", "path to a YAML file seeding the MIB (oid: value map)")
	rootCmd.PersistentFlags().StringVar(&metricsAddress, "metrics-address", "", "address to serve Prometheus metrics on (empty disables)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	viper.BindPFlag("address", rootCmd.PersistentFlags().Lookup("address"))
	viper.BindPFlag("community", rootCmd.PersistentFlags().Lookup("community"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("queue-size", rootCmd.PersistentFlags().Lookup("queue-size"))
	viper.BindPFlag("mib", rootCmd.PersistentFlags().Lookup("mib"))
	viper.BindPFlag("metrics-address", rootCmd.PersistentFlags().Lookup("metrics-address"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config"))
		viper.SetConfigName(".snmp-agentd")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SNMPAGENTD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	address = viper.GetString("address")
	community = viper.GetString("community")
	workers = viper.GetInt("workers")
	queueSize = viper.GetInt("queue-size")
	mibFile = viper.GetString("mib")
	metricsAddress = viper.GetString("metrics-address")
	verbose = viper.GetBool("verbose")
}
