package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/content"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/internal/reaper"
	"github.com/goran-ethernal/TicketIndexor/internal/roles"
	"github.com/goran-ethernal/TicketIndexor/internal/rpc"
	pkgconfig "github.com/goran-ethernal/TicketIndexor/pkg/config"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the contract events the decoder recognises",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Recognised events:")
		for _, key := range decoder.ListRegistered() {
			fmt.Fprintf(out, "  - %s\n", key)
		}
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeConfigSchema(cmd.OutOrStdout())
	},
}

func writeConfigSchema(w io.Writer) error {
	r := &jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&pkgconfig.Config{})
	schema.Title = "TicketIndexor configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

var reaperOnce bool

var reaperCmd = &cobra.Command{
	Use:   "reaper",
	Short: "Run the reaper on its own, without ingestion",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		log := logger.NewComponentLoggerFromConfig(common.ComponentReaper, cfg.Logging)

		database, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close()

		interval := pkgconfig.ReaperConfig{}
		if cfg.Reaper != nil {
			interval = *cfg.Reaper
		}
		interval.ApplyDefaults()

		r := reaper.New(database, interval.Interval.Duration, reaper.NewLogSink(log), log)
		if reaperOnce {
			return r.Tick(ctx)
		}

		if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Process every quarantined log once, without connecting to the chain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		log := logger.NewComponentLoggerFromConfig(common.ComponentProcessor, cfg.Logging)

		database, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close()

		resolver, closeCache, err := content.NewResolverFromConfig(cfg.Content,
			logger.NewComponentLoggerFromConfig(common.ComponentContent, cfg.Logging))
		if err != nil {
			return fmt.Errorf("failed to create content resolver: %w", err)
		}
		defer closeCache() //nolint:errcheck

		processor, _, _, err := newProcessor(cfg, database, &db.NoOpMaintenance{}, resolver)
		if err != nil {
			return err
		}

		recovered, failed, err := processor.Replay(ctx)
		if err != nil {
			return fmt.Errorf("replay failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "recovered: %d\nstill failing: %d\n", recovered, failed)
		return nil
	},
}

var grantRoleCmd = &cobra.Command{
	Use:   "grant-role <address>",
	Short: "Grant the verified role to an address",
	Long: `Submit a grantRole transaction for the verified role, signed by the admin key.
The signing account must hold the admin role of the verified role.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ethcommon.IsHexAddress(args[0]) {
			return fmt.Errorf("invalid address %q", args[0])
		}
		account := ethcommon.HexToAddress(args[0])

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		log := logger.NewComponentLoggerFromConfig(common.ComponentRoles, cfg.Logging)

		client, err := rpc.NewClient(ctx, cfg.Chain.HTTPURL, cfg.Chain.WSURL, cfg.Chain.Retry)
		if err != nil {
			return fmt.Errorf("failed to create RPC client: %w", err)
		}
		defer client.Close()

		granter, err := roles.NewGranterFromConfig(ctx, cfg.Admin, client.Backend(), log)
		if err != nil {
			return err
		}

		txHash, err := granter.Grant(ctx, account)
		if err != nil {
			return fmt.Errorf("grant failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", txHash.Hex())
		return nil
	},
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Work with the content-addressed store",
}

var contentAddCmd = &cobra.Command{
	Use:   "add <file.json>",
	Short: "Store a JSON document and print its cid and multihash fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("%s is not a JSON document: %w", args[0], err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		store := content.NewIPFSStore(cfg.Content.URL, cfg.Content.Timeout.Duration)
		resolver := content.NewResolver(store, nil,
			logger.NewComponentLoggerFromConfig(common.ComponentContent, cfg.Logging))

		cid, err := resolver.AddJSON(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to add document: %w", err)
		}

		return describeCID(cmd.OutOrStdout(), cid)
	},
}

func init() {
	reaperCmd.Flags().BoolVar(&reaperOnce, "once", false, "run a single tick and exit")
	contentCmd.AddCommand(contentAddCmd)
}

// describeCID prints the multihash fields a contract call expects for cid.
func describeCID(w io.Writer, cid string) error {
	mh, err := content.ParseCID(cid)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "cid:           %s\ndigest:        0x%s\nhash_function: %d\nsize:          %d\n",
		cid, hex.EncodeToString(mh.Digest[:]), mh.HashFunction, mh.Size)
	return err
}
