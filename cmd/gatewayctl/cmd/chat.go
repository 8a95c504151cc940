package cmd

import (
	"fmt"
	"strings"

	"github.com/Aleph-Alpha/gateway-client-go/v1/chat"
	"github.com/spf13/cobra"
)

func newChatCmd(root *rootOptions) *cobra.Command {
	var (
		model       string
		system      string
		stream      bool
		temperature float64
	)

	c := &cobra.Command{
		Use:   "chat <prompt>...",
		Short: "Send a chat completion and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := root.newClient(cmd)
			if err != nil {
				return err
			}
			defer cl.Close()

			req := chat.CompletionRequest{Model: model}
			if system != "" {
				req.Messages = append(req.Messages, chat.Message{Role: chat.RoleSystem, Content: system})
			}
			req.Messages = append(req.Messages, chat.Message{Role: chat.RoleUser, Content: strings.Join(args, " ")})
			if cmd.Flags().Changed("temperature") {
				req.Temperature = &temperature
			}

			out := cmd.OutOrStdout()
			if !stream {
				resp, err := cl.Chat.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, resp.Text())
				return err
			}

			s, err := cl.Chat.CreateStream(cmd.Context(), req)
			if err != nil {
				return err
			}
			for chunk, err := range s.All() {
				if err != nil {
					return err
				}
				if _, err := fmt.Fprint(out, chunk.Delta()); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(out)
			return err
		},
	}

	c.Flags().StringVarP(&model, "model", "m", "", "model name")
	c.Flags().StringVar(&system, "system", "", "optional system prompt")
	c.Flags().BoolVar(&stream, "stream", false, "print tokens as they arrive")
	c.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature")
	_ = c.MarkFlagRequired("model")
	return c
}
