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
	userRole   string
	userStatus string
	userActor  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users and roles",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		users, err := a.users.List(cmd.Context(), center.UserFilter{
			Role:   types.Role(userRole),
			Status: types.UserStatus(userStatus),
		})
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("no users")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tLAST LOGIN")
		for _, u := range users {
			lastLogin := "-"
			if u.LastLoginAt != nil {
				lastLogin = u.LastLoginAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				u.ID, u.Name, u.Email, u.Role, u.Status, lastLogin)
		}
		return w.Flush()
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create <name> <email>",
	Short: "Create a user (defaults to an active member)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.users.Create(cmd.Context(), &types.User{
			Name:  args[0],
			Email: args[1],
			Role:  types.Role(userRole),
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s <%s> as %s (%s)\n", created.Name, created.Email, created.Role, created.ID)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user, subject to the acting user's permissions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userActor == "" {
			return fmt.Errorf("--as <actor-id> is required")
		}
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := a.users.GetByID(cmd.Context(), userActor)
		if err != nil {
			return fmt.Errorf("acting user: %w", err)
		}
		if err := a.users.DeleteUser(cmd.Context(), actor, args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	userListCmd.Flags().StringVar(&userRole, "role", "", "filter by role (owner, admin, member)")
	userListCmd.Flags().StringVar(&userStatus, "status", "", "filter by status (active, inactive, suspended)")
	userCreateCmd.Flags().StringVar(&userRole, "role", "", "role for the new user (defaults to member)")
	userDeleteCmd.Flags().StringVar(&userActor, "as", "", "id of the acting user")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)
}
