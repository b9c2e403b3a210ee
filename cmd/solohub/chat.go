package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solohub/internal/aihub"
	"solohub/internal/types"
)

var (
	chatAgentID     string
	chatSystem      string
	chatStream      bool
	agentPrompt     string
	agentModel      string
	agentActiveOnly bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "AI chat sessions and agents",
}

var chatNewCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Start a chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		in := aihub.NewSession{Title: args[0], AgentID: chatAgentID}
		if chatSystem != "" {
			in.Context = &types.SessionContext{SystemPrompt: chatSystem}
		}
		session, err := a.hub.CreateSession(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Printf("session %s\n", session.ID)
		return nil
	},
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions, most recently touched first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		sessions, err := a.hub.ListSessions(cmd.Context())
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("no sessions")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tAGENT\tMESSAGES\tUPDATED")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				s.ID, s.Title, s.AgentID, len(s.Messages),
				s.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var chatSendCmd = &cobra.Command{
	Use:   "send <session-id> <message>",
	Short: "Send a message and print the reply",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if chatStream {
			_, err := a.hub.StreamMessage(cmd.Context(), args[0], args[1], nil, func(chunk string) {
				fmt.Print(chunk)
			})
			if err != nil {
				return err
			}
			fmt.Println()
			return nil
		}

		reply, err := a.hub.SendMessage(cmd.Context(), args[0], args[1], nil)
		if err != nil {
			return err
		}
		fmt.Println(reply.Content)
		return nil
	},
}

var chatDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.hub.DeleteSession(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

var chatAgentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage chat agents",
}

var chatAgentCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		agent, err := a.hub.CreateAgent(cmd.Context(), &types.Agent{
			Name:         args[0],
			SystemPrompt: agentPrompt,
			DefaultModel: agentModel,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		fmt.Printf("agent %s\n", agent.ID)
		return nil
	},
}

var chatAgentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		agents, err := a.hub.ListAgents(cmd.Context(), agentActiveOnly)
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			fmt.Println("no agents")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMODEL\tACTIVE")
		for _, agent := range agents {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n",
				agent.ID, agent.Name, agent.DefaultModel, agent.IsActive)
		}
		return w.Flush()
	},
}

func init() {
	chatNewCmd.Flags().StringVar(&chatAgentID, "agent", "", "agent id to bind the session to")
	chatNewCmd.Flags().StringVar(&chatSystem, "system", "", "session system prompt (overrides the agent's)")
	chatSendCmd.Flags().BoolVar(&chatStream, "stream", false, "stream the reply as it is generated")
	chatAgentCreateCmd.Flags().StringVar(&agentPrompt, "prompt", "", "agent system prompt (required)")
	chatAgentCreateCmd.Flags().StringVar(&agentModel, "model", "", "agent default model")
	chatAgentListCmd.Flags().BoolVar(&agentActiveOnly, "active", false, "only active agents")

	chatAgentCmd.AddCommand(chatAgentCreateCmd)
	chatAgentCmd.AddCommand(chatAgentListCmd)

	chatCmd.AddCommand(chatNewCmd)
	chatCmd.AddCommand(chatListCmd)
	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatDeleteCmd)
	chatCmd.AddCommand(chatAgentCmd)
}
