package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solohub/internal/center"
	"solohub/internal/types"
)

var (
	projectStatus   string
	projectOwner    string
	projectTags     []string
	projectDesc     string
	projectVersion  string
	projectWithDesc bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the project portfolio",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest activity first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		projects, err := a.projects.List(cmd.Context(), center.ProjectFilter{
			Status: types.ProjectStatus(projectStatus),
			Owner:  projectOwner,
			Tags:   projectTags,
		})
		if err != nil {
			return err
		}
		printProjects(projects)
		return nil
	},
}

var projectSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search projects by name, owner, version, or tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		projects, err := a.projects.Search(cmd.Context(), center.ProjectSearch{
			Query: args[0],
			Filter: center.ProjectFilter{
				Status: types.ProjectStatus(projectStatus),
				Owner:  projectOwner,
				Tags:   projectTags,
			},
			IncludeDescription: projectWithDesc,
		})
		if err != nil {
			return err
		}
		printProjects(projects)
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.projects.Create(cmd.Context(), &types.Project{
			Name:        args[0],
			Status:      types.ProjectStatus(projectStatus),
			Owner:       projectOwner,
			Tags:        projectTags,
			Description: projectDesc,
			Version:     projectVersion,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.projects.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func printProjects(projects []*types.Project) {
	if len(projects) == 0 {
		fmt.Println("no projects")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tOWNER\tTAGS\tUPDATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Status, p.Owner,
			strings.Join(p.Tags, ","),
			p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func init() {
	for _, c := range []*cobra.Command{projectListCmd, projectSearchCmd, projectCreateCmd} {
		c.Flags().StringVar(&projectStatus, "status", "", "filter by status (healthy, warning, error, paused)")
		c.Flags().StringVar(&projectOwner, "owner", "", "filter by owner")
		c.Flags().StringSliceVar(&projectTags, "tags", nil, "filter by tags (all must match)")
	}
	projectSearchCmd.Flags().BoolVar(&projectWithDesc, "desc", false, "also match against descriptions")
	projectCreateCmd.Flags().StringVar(&projectDesc, "description", "", "project description")
	projectCreateCmd.Flags().StringVar(&projectVersion, "version", "", "project version")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectSearchCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}
