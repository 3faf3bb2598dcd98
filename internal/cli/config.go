package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeConfig(); err != nil {
				return err
			}
			fmt.Println("Config written to", viper.ConfigFileUsed())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set(args[0], args[1])
			if err := writeConfig(); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Show a config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !viper.IsSet(args[0]) {
				return fmt.Errorf("key %q is not set", args[0])
			}
			fmt.Println(viper.Get(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show all config values",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := viper.AllSettings()
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				v := fmt.Sprintf("%v", settings[k])
				if k == "auth" {
					v = "<redacted>"
				}
				rows = append(rows, []string{k, truncate(v, 60)})
			}
			Table([]string{"KEY", "VALUE"}, rows)
			return nil
		},
	})

	return cmd
}

func writeConfig() error {
	if cfgFile != "" {
		return viper.WriteConfigAs(cfgFile)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	configDir := home + "/.pagecraft"
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	return viper.WriteConfigAs(configDir + "/config.yaml")
}
