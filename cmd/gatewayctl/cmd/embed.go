package cmd

import (
	"github.com/spf13/cobra"
)

func newEmbedCmd(root *rootOptions) *cobra.Command {
	var model string

	c := &cobra.Command{
		Use:   "embed <text>...",
		Short: "Embed each argument and print the vectors as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := root.newClient(cmd)
			if err != nil {
				return err
			}
			defer cl.Close()

			vectors, err := cl.Embeddings.CreateEmbeddings(cmd.Context(), model, args...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), vectors)
		},
	}

	c.Flags().StringVarP(&model, "model", "m", "", "embedding model name")
	_ = c.MarkFlagRequired("model")
	return c
}
