package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var overviewJSON bool

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Dashboard summary across projects, resources, and users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		ov, err := a.dashboard.Overview(cmd.Context())
		if err != nil {
			return err
		}

		if overviewJSON {
			out, err := json.MarshalIndent(ov, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("Projects:  %d total, %d%% healthy\n", ov.Projects.Total, ov.Projects.HealthRate)
		for _, status := range []string{"healthy", "warning", "error", "paused"} {
			fmt.Printf("  %-10s %d\n", status, statusCount(ov.Projects.ByStatus, status))
		}
		fmt.Printf("Resources: %d total, %d expiring soon, %d expired\n",
			ov.Resources.Total, ov.Resources.ExpiringSoon, ov.Resources.Expired)
		fmt.Printf("Users:     %d total, %d active today\n", ov.Users.Total, ov.Users.ActiveToday)
		return nil
	},
}

func statusCount[K ~string](m map[K]int, key string) int {
	return m[K(key)]
}

func init() {
	overviewCmd.Flags().BoolVar(&overviewJSON, "json", false, "print the raw overview as JSON")
}
