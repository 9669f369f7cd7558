package cmd

import (
	"os"

	apkfs "chainguard.dev/apko/pkg/apk/fs"
	v1 "github.com/mpkg-project/mpkg/pkg/api/v1"
	"github.com/mpkg-project/mpkg/pkg/store"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/yaml"
)

const defaultConfigPath = "/etc/mpkg/config.yaml"

// openStore builds the local store from the configuration file.
func openStore(cmd *cobra.Command) (*store.Local, error) {
	configPath, _ := cmd.Flags().GetString(flagConfig)

	cfg, err := readConfig(configPath)
	if err != nil {
		return nil, err
	}

	root := cfg.Spec.Root
	if root == "" {
		root = "/"
	}
	return store.NewLocal(cfg.Spec, apkfs.DirFS(root))
}

// readConfig reads the configuration file. A missing default config is
// not an error; explicitly named files must exist.
func readConfig(s string) (v1.Config, error) {
	if s == "" {
		s = defaultConfigPath
		if _, err := os.Stat(s); os.IsNotExist(err) {
			return v1.Config{}, nil
		}
	}
	f, err := os.Open(s)
	if err != nil {
		return v1.Config{}, err
	}
	defer f.Close()

	var config v1.Config
	if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&config); err != nil {
		return v1.Config{}, err
	}
	return config, nil
}
