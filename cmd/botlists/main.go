// Command botlists queries the configured Discord bot-listing services from
// the terminal. Tokens come from flags, BOTLISTS_* environment variables or a
// .env file in the working directory.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/botlists/botlists"
	"github.com/botlists/botlists/core"
)

var rootCmd = &cobra.Command{
	Use:   "botlists",
	Short: "Query Discord bot-listing services",
	Long: `botlists talks to koreanbots, top.gg and UniqueBots through one client.

A service is only queried when its token is configured:

  BOTLISTS_KOREANBOTS_TOKEN
  BOTLISTS_TOPGG_TOKEN
  BOTLISTS_UNIQUEBOTS_TOKEN

Tokens may also live in a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			level = logrus.WarnLevel
		}
		logrus.SetLevel(level)
	},
}

func init() {
	_ = godotenv.Load()

	viper.SetEnvPrefix("botlists")
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String("koreanbots-token", "", "koreanbots API token")
	flags.String("topgg-token", "", "top.gg API token")
	flags.String("uniquebots-token", "", "UniqueBots API token")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Duration("timeout", 15*time.Second, "per-command timeout")

	viper.BindPFlag("koreanbots_token", flags.Lookup("koreanbots-token"))
	viper.BindPFlag("topgg_token", flags.Lookup("topgg-token"))
	viper.BindPFlag("uniquebots_token", flags.Lookup("uniquebots-token"))
	viper.BindPFlag("log-level", flags.Lookup("log-level"))
	viper.BindPFlag("timeout", flags.Lookup("timeout"))

	rootCmd.AddCommand(botCmd, statsCmd, voteCmd, votesCmd, userCmd, searchCmd, widgetCmd)
}

func newClient() (*botlists.Client, error) {
	client := botlists.New(
		botlists.WithKoreanBotsToken(viper.GetString("koreanbots_token")),
		botlists.WithTopGGToken(viper.GetString("topgg_token")),
		botlists.WithUniqueBotsToken(viper.GetString("uniquebots_token")),
		botlists.WithLogger(logrus.StandardLogger()),
	)
	if len(client.Websites()) == 0 {
		return nil, fmt.Errorf("no tokens configured, set BOTLISTS_*_TOKEN or pass --*-token flags")
	}
	return client, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, timeout := context.WithTimeout(ctx, viper.GetDuration("timeout"))
	return ctx, func() { timeout(); cancel() }
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a numeric Discord ID", what, arg)
	}
	return id, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

var botCmd = &cobra.Command{
	Use:   "bot <bot-id>",
	Short: "Look a bot up on every configured service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		botID, err := parseID(args[0], "bot ID")
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()
		ctx, cancel := commandContext()
		defer cancel()

		res, err := client.Bot(ctx, botID)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <bot-id> <guild-count>",
	Short: "Publish a guild count to every configured service",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		botID, err := parseID(args[0], "bot ID")
		if err != nil {
			return err
		}
		guilds, err := strconv.Atoi(args[1])
		if err != nil || guilds < 0 {
			return fmt.Errorf("invalid guild count %q", args[1])
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()
		ctx, cancel := commandContext()
		defer cancel()

		res, err := client.Stats(ctx, botID, core.StatsRequest{GuildCount: guilds})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var voteCmd = &cobra.Command{
	Use:   "vote <bot-id> <user-id>",
	Short: "Check whether a user voted for a bot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		botID, err := parseID(args[0], "bot ID")
		if err != nil {
			return err
		}
		userID, err := parseID(args[1], "user ID")
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()
		ctx, cancel := commandContext()
		defer cancel()

		res, err := client.Vote(ctx, botID, userID)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var votesCmd = &cobra.Command{
	Use:   "votes <bot-id>",
	Short: "List a bot's voters on the services that expose them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		botID, err := parseID(args[0], "bot ID")
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()
		ctx, cancel := commandContext()
		defer cancel()

		res, err := client.Votes(ctx, botID)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var userCmd = &cobra.Command{
	Use:   "user <user-id>",
	Short: "Look a user profile up on every configured service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0], "user ID")
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()
		ctx, cancel := commandContext()
		defer cancel()

		res, err := client.Users(ctx, userID)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bot directories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()
		ctx, cancel := commandContext()
		defer cancel()

		res, err := client.Search(ctx, core.SearchRequest{Query: args[0], Page: page})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var widgetCmd = &cobra.Command{
	Use:   "widget <website> <bot-id>",
	Short: "Print a bot's badge URL for one service",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		site := botlists.Website(args[0])
		botID, err := parseID(args[1], "bot ID")
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("kind")
		style, _ := cmd.Flags().GetString("style")
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		w, err := client.Widget(site, botID, core.WidgetRequest{
			Kind:  core.WidgetKind(kind),
			Style: core.WidgetStyle(style),
		})
		if err != nil {
			return err
		}
		fmt.Println(w.URL())
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("page", 1, "result page")
	widgetCmd.Flags().String("kind", "", "badge kind (votes, servers, status)")
	widgetCmd.Flags().String("style", "", "badge style where supported (classic, flat)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
