package cmds

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Joxx0r/devtoolhub/pkg/config"
)

type rootOptions struct {
	Root    string
	Config  string
	Timeout time.Duration
}

func AddRootFlags(root *cobra.Command) {
	root.PersistentFlags().String("root", "", "Working directory (defaults to current directory)")
	root.PersistentFlags().String("config", "", "Path to the tools file (defaults to tools.yaml under the working directory)")
	root.PersistentFlags().Duration("timeout", 30*time.Second, "Default timeout for one-shot operations")
}

func getRootOptions(cmd *cobra.Command) (rootOptions, error) {
	root, err := cmd.Root().PersistentFlags().GetString("root")
	if err != nil {
		return rootOptions{}, err
	}
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return rootOptions{}, err
		}
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return rootOptions{}, err
	}

	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return rootOptions{}, err
	}
	if cfgPath != "" && !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(root, cfgPath)
	}

	timeout, err := cmd.Root().PersistentFlags().GetDuration("timeout")
	if err != nil {
		return rootOptions{}, err
	}
	if timeout <= 0 {
		return rootOptions{}, errors.New("timeout must be > 0")
	}

	return rootOptions{
		Root:    root,
		Config:  cfgPath,
		Timeout: timeout,
	}, nil
}

// loadConfig reads the tools file. An explicit --config path must exist;
// otherwise the usual locations are tried and a missing file yields an
// empty tool list.
func loadConfig(opts rootOptions) (*config.File, error) {
	if opts.Config != "" {
		return config.LoadFromFile(opts.Config)
	}
	return config.LoadOptional(config.Discover(opts.Root))
}
