package cmds

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Joxx0r/devtoolhub/pkg/hub"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus <tool>",
		Short: "Raise the tool's window, launching it if the window is gone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			name := args[0]
			if _, ok := cfg.Tool(name); !ok {
				return errors.Errorf("unknown tool %q", name)
			}

			h := hub.New(cfg)
			defer h.Stop()

			res := h.FocusOrLaunch(name)
			switch res.Outcome {
			case hub.OutcomeFocused:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focused %s\n", name)
			case hub.OutcomeLaunched:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "launched %s (pid %d)\n", name, res.PID)
			case hub.OutcomeLaunchFailed:
				return errors.Errorf("failed to launch %s", name)
			default:
				return errors.Errorf("%s has no window and no start command", name)
			}
			return nil
		},
	}
	return cmd
}
