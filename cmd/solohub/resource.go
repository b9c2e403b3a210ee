package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solohub/internal/center"
	"solohub/internal/types"
)

var (
	resourceType    string
	resourceStatus  string
	resourceProject string
	resourceDays    int
)

var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Browse the resource catalog",
}

var resourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources, newest activity first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		resources, err := a.resources.List(cmd.Context(), center.ResourceFilter{
			Type:      types.ResourceType(resourceType),
			Status:    types.ResourceStatus(resourceStatus),
			ProjectID: resourceProject,
		})
		if err != nil {
			return err
		}
		printResources(resources)
		return nil
	},
}

var resourceSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search resources by name, description, path, or metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		resources, err := a.resources.Search(cmd.Context(), center.ResourceSearch{
			Query: args[0],
			Filter: center.ResourceFilter{
				Type:      types.ResourceType(resourceType),
				Status:    types.ResourceStatus(resourceStatus),
				ProjectID: resourceProject,
			},
		})
		if err != nil {
			return err
		}
		printResources(resources)
		return nil
	},
}

var resourceExpiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List resources expiring soon, soonest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		resources, err := a.resources.ExpiringSoon(cmd.Context(), resourceDays)
		if err != nil {
			return err
		}
		if len(resources) == 0 {
			fmt.Println("nothing expiring")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tEXPIRES")
		for _, r := range resources {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				r.ID, r.Name, r.Type, r.ExpiresAt.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

func printResources(resources []*types.Resource) {
	if len(resources) == 0 {
		fmt.Println("no resources")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tPROJECT\tEXPIRES")
	for _, r := range resources {
		expires := "-"
		if r.ExpiresAt != nil {
			expires = r.ExpiresAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Type, r.Status, r.ProjectID, expires)
	}
	w.Flush()
}

func init() {
	for _, c := range []*cobra.Command{resourceListCmd, resourceSearchCmd} {
		c.Flags().StringVar(&resourceType, "type", "", "filter by type (domain, apiKey, certificate, ...)")
		c.Flags().StringVar(&resourceStatus, "status", "", "filter by status (active, archived, expired)")
		c.Flags().StringVar(&resourceProject, "project", "", "filter by owning project id")
	}
	resourceExpiringCmd.Flags().IntVar(&resourceDays, "days", 0, "expiry horizon in days (0 uses the configured window)")

	resourceCmd.AddCommand(resourceListCmd)
	resourceCmd.AddCommand(resourceSearchCmd)
	resourceCmd.AddCommand(resourceExpiringCmd)
}
