package cmd

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"soundlink/config"
	"soundlink/storage"

	"github.com/spf13/cobra"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Show media bucket usage",
	Long:  `Connects to the MinIO bucket and prints stored bytes per top-level prefix (audio, covers, artists).`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("MinIO config: %s, bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		media, err := storage.NewMediaStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		usage, err := media.BucketUsage(ctx)
		if err != nil {
			log.Fatalf("Failed to read bucket usage: %v", err)
		}

		prefixes := make([]string, 0, len(usage))
		for prefix := range usage {
			prefixes = append(prefixes, prefix)
		}
		sort.Strings(prefixes)

		var total int64
		for _, prefix := range prefixes {
			fmt.Printf("  %-12s %10d bytes\n", prefix, usage[prefix])
			total += usage[prefix]
		}
		fmt.Printf("  %-12s %10d bytes\n", "total", total)
	},
}

func init() {
	rootCmd.AddCommand(mediaCmd)
}
