package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/scout-cli/internal/config"
	"github.com/sells-group/scout-cli/internal/dataset"
)

var (
	importFacilities string
	importContacts   string
	importResidents  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import dataset files into the configured store",
	Long:  "Reads the facility, contact, and resident files and replaces the snapshot held in the SQLite or Postgres store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		src := sources(cfg.Dataset)
		if importFacilities != "" {
			src.Facilities = importFacilities
		}
		if importContacts != "" {
			src.Contacts = importContacts
		}
		if importResidents != "" {
			src.Residents = importResidents
		}
		cfg.Dataset.Facilities = src.Facilities
		if err := cfg.Validate(config.ModeImport); err != nil {
			return err
		}

		cat, err := dataset.Load(ctx, src)
		if err != nil {
			return err
		}

		st, err := openStore(ctx, cfg.Store.Driver)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}
		if err := st.ReplaceCatalog(ctx, cat); err != nil {
			return eris.Wrap(err, "replace catalog")
		}

		zap.L().Info("import complete",
			zap.String("driver", cfg.Store.Driver),
			zap.String("version", cat.Version.String()),
			zap.Int("facilities", len(cat.Facilities)),
			zap.Int("contacts", len(cat.Contacts)),
			zap.Int("residents", len(cat.Residents)),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFacilities, "facilities", "", "facility file (default from config)")
	importCmd.Flags().StringVar(&importContacts, "contacts", "", "contact file (default from config)")
	importCmd.Flags().StringVar(&importResidents, "residents", "", "resident file (default from config)")
	rootCmd.AddCommand(importCmd)
}
