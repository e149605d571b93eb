package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cuemby/cmfanout/api/proto"
	"github.com/cuemby/cmfanout/pkg/client"
)

var (
	Version = "dev"
	addr    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "cmfanoutctl",
	Short:   "cmfanoutctl - manual client for the cmfanout push fan-out server",
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", ":7443", "cmfanout gRPC server address")

	tokenCmd.AddCommand(tokenRegisterCmd, tokenUpdateCmd, tokenInvalidateCmd, tokenSubscribeCmd)
	messageCmd.AddCommand(messageSendCmd, messageSubscribeCmd)
	rootCmd.AddCommand(tokenCmd, messageCmd)

	tokenSubscribeCmd.Flags().String("filter", "none", "Filter kind: intersection, complement, union, or none")
	tokenSubscribeCmd.Flags().StringSlice("keys", nil, "Comma-separated key set for intersection/complement filters")

	messageSendCmd.Flags().StringSlice("to", nil, "Comma-separated recipient token keys (the message codomain)")
	messageSendCmd.Flags().StringToString("content", nil, "content field, repeatable as key=value")

	messageSubscribeCmd.Flags().String("filter", "none", "Filter kind: intersection, complement, union, or none")
	messageSubscribeCmd.Flags().StringSlice("keys", nil, "Comma-separated key set for intersection/complement filters")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Token registry operations",
}

var tokenRegisterCmd = &cobra.Command{
	Use:   "register <key>",
	Short: "Register a new token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.New(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		t, err := c.RegisterToken(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("registered %s at %d\n", t.Key, t.Timestamp.Seconds)
		return nil
	},
}

var tokenUpdateCmd = &cobra.Command{
	Use:   "update <key>",
	Short: "Replace a token with a freshly minted one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.New(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		resp, err := c.UpdateToken(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("updated %s: %d -> %d\n", resp.Token.Key, resp.Token.Timestamp.Seconds, resp.Timestamp.Seconds)
		return nil
	},
}

var tokenInvalidateCmd = &cobra.Command{
	Use:   "invalidate <key>",
	Short: "Remove a token from the registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.New(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.InvalidateToken(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("invalidated %s\n", args[0])
		return nil
	},
}

var tokenSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Stream TokenBroadcast events matching a filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("filter")
		keys, _ := cmd.Flags().GetStringSlice("keys")

		filter, err := client.ParseFilter(kind, keys)
		if err != nil {
			return err
		}

		c, err := client.New(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		stream, err := c.SubscribeTokens(cmd.Context(), filter)
		if err != nil {
			return err
		}
		return printTokenBroadcasts(cmd.Context(), stream, cmd.OutOrStdout())
	},
}

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Message send/subscribe operations",
}

var messageSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to a set of token keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetStringSlice("to")
		content, _ := cmd.Flags().GetStringToString("content")
		if len(to) == 0 {
			return fmt.Errorf("cmfanoutctl: --to is required")
		}

		c, err := client.New(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		sent, err := c.SendMessage(cmd.Context(), &proto.Message{Content: content, Codomain: to})
		if err != nil {
			return err
		}
		fmt.Printf("sent to [%s]\n", strings.Join(sent.Codomain, ", "))
		return nil
	},
}

var messageSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Stream MessageBroadcast events matching a filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("filter")
		keys, _ := cmd.Flags().GetStringSlice("keys")

		filter, err := client.ParseFilter(kind, keys)
		if err != nil {
			return err
		}

		c, err := client.New(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		stream, err := c.SubscribeMessages(cmd.Context(), filter)
		if err != nil {
			return err
		}
		return printMessageBroadcasts(cmd.Context(), stream, cmd.OutOrStdout())
	},
}

func printTokenBroadcasts(ctx context.Context, stream proto.TokenService_SubscribeClient, out io.Writer) error {
	for {
		b, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch b.Kind {
		case proto.TokenBroadcastAddition:
			fmt.Fprintf(out, "addition: %s\n", b.Addition.Key)
		case proto.TokenBroadcastUpdate:
			fmt.Fprintf(out, "update: %s -> %s\n", b.Update.Original.Key, b.Update.Delta.Key)
		case proto.TokenBroadcastInvalidation:
			fmt.Fprintf(out, "invalidation: %s\n", b.Invalidation.Key)
		}
	}
}

func printMessageBroadcasts(ctx context.Context, stream proto.MessageService_SubscribeClient, out io.Writer) error {
	for {
		b, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if b.Kind == proto.MessageBroadcastSend && b.Send != nil {
			fmt.Fprintf(out, "send: to=[%s]\n", strings.Join(b.Send.Codomain, ", "))
		}
	}
}
