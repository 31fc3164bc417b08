package commands

import (
	"fmt"
	"strings"

	"github.com/ajb0730/pc2xl/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	profilePath string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List output presets defined in a profiles file",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilePath, "profiles", "", "Path to an INI file of output presets")
	_ = cmd.MarkFlagRequired("profiles")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	registry, err := config.NewRegistry(pc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profiles from %s: %w", pc.profilePath, err)
	}

	profiles, err := registry.GetProfiles(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", pc.profilePath)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profiles in %s:\n%s\n",
		pc.profilePath,
		strings.Join(profiles, "\n"))

	return nil
}
