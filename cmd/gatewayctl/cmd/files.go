package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aleph-Alpha/gateway-client-go/v1/files"
	"github.com/Aleph-Alpha/gateway-client-go/v1/minio"
	"github.com/spf13/cobra"
)

func newFilesCmd(root *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "files",
		Short: "Manage objects in gateway file buckets",
	}
	c.AddCommand(
		newFilesUploadCmd(root),
		newFilesDownloadCmd(root),
		newFilesImportCmd(root),
	)
	return c
}

func newFilesUploadCmd(root *rootOptions) *cobra.Command {
	var key, contentType string

	c := &cobra.Command{
		Use:   "upload <bucket> <path>",
		Short: "Upload a local file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			if key == "" {
				key = filepath.Base(args[1])
			}

			cl, err := root.newClient(cmd)
			if err != nil {
				return err
			}
			defer cl.Close()

			obj, err := cl.Files.Upload(cmd.Context(), args[0], files.UploadRequest{
				Key:         key,
				Content:     content,
				ContentType: contentType,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), obj)
		},
	}

	c.Flags().StringVar(&key, "key", "", "object key (defaults to the file name)")
	c.Flags().StringVar(&contentType, "content-type", "", "content type (detected when empty)")
	return c
}

func newFilesDownloadCmd(root *rootOptions) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   "download <bucket> <key>",
		Short: "Download an object to stdout or a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := root.newClient(cmd)
			if err != nil {
				return err
			}
			defer cl.Close()

			content, _, err := cl.Files.DownloadObject(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(content)
				return err
			}
			return os.WriteFile(output, content, 0o644)
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return c
}

func newFilesImportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <bucket> <key>",
		Short: "Copy an object from MinIO/S3 (MINIO_* environment) into a gateway bucket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := root.newClient(cmd)
			if err != nil {
				return err
			}
			defer cl.Close()

			src, err := minio.NewSource(*minio.NewConfig())
			if err != nil {
				return fmt.Errorf("connecting to object store: %w", err)
			}

			obj, err := cl.Files.Import(cmd.Context(), args[0], src, args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), obj)
		},
	}
}
