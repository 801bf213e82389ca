// Package datamanager implements the administrative commands behind
// cmd/admin: reports, listings and deletions that have no page in the web UI.
package datamanager

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"charactervault/web/internal/cache"
	"charactervault/web/internal/character"
	"charactervault/web/internal/config"
	"charactervault/web/internal/database"
	"charactervault/web/internal/models"

	"gorm.io/gorm"
)

// Commands accepted as the first positional argument.
const (
	CmdReport         = "report"
	CmdUsers          = "users"
	CmdCharacters     = "characters"
	CmdDeleteUser     = "delete-user"
	CmdContacts       = "contacts"
	CmdDeleteContact  = "delete-contact"
	CmdTaxonomy       = "taxonomy"
	CmdDeleteTaxonomy = "delete-taxonomy"
	CmdMigrate        = "migrate"
)

var ErrNotFound = errors.New("record not found")

// Config holds admin command configuration.
type Config struct {
	Command        string
	ID             uint
	Kind           string
	JSONOutput     bool
	DatabaseDriver string
	DatabaseURL    string
	Timeout        time.Duration
}

// ParseConfig parses flags into a Config, defaulting the database settings
// to the application's.
func ParseConfig(fs *flag.FlagSet, args []string, app *config.Config) (Config, error) {
	cfg := Config{Timeout: time.Minute}
	if app != nil {
		cfg.DatabaseDriver = app.DatabaseDriver
		cfg.DatabaseURL = app.DatabaseURL
	}

	var id uint64
	fs.StringVar(&cfg.DatabaseDriver, "db-driver", cfg.DatabaseDriver, "database driver (postgres|mysql|sqlite, default: DATABASE_DRIVER)")
	fs.StringVar(&cfg.DatabaseURL, "db-url", cfg.DatabaseURL, "database DSN (default: DATABASE_URL)")
	fs.Uint64Var(&id, "id", 0, "record id for characters, delete-user, delete-contact and delete-taxonomy")
	fs.StringVar(&cfg.Kind, "kind", "", "taxonomy kind for taxonomy and delete-taxonomy (houses|roles|strengths)")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output JSON")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.ID = uint(id)
	cfg.Command = fs.Arg(0)
	if cfg.Command == "" {
		return Config{}, errors.New("missing command (report|users|characters|delete-user|contacts|delete-contact|taxonomy|delete-taxonomy|migrate)")
	}
	return cfg, nil
}

// Run executes one admin command against db.
func Run(ctx context.Context, db *gorm.DB, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	db = db.WithContext(ctx)

	switch cfg.Command {
	case CmdReport:
		r, err := GetReport(db)
		if err != nil {
			return err
		}
		return write(out, cfg.JSONOutput, r, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "users\t%d\n", r.Users)
			fmt.Fprintf(w, "characters\t%d\n", r.Characters)
			fmt.Fprintf(w, "houses\t%d\n", r.Houses)
			fmt.Fprintf(w, "roles\t%d\n", r.Roles)
			fmt.Fprintf(w, "strengths\t%d\n", r.Strengths)
			fmt.Fprintf(w, "contacts\t%d\n", r.Contacts)
		})

	case CmdUsers:
		users, err := ListUsers(db)
		if err != nil {
			return err
		}
		return write(out, cfg.JSONOutput, users, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tCHARACTERS\tJOINED")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", u.ID, u.Username, u.Email, u.Characters, u.CreatedAt.Format("2006-01-02"))
			}
		})

	case CmdCharacters:
		if cfg.ID == 0 {
			return errors.New("characters requires -id")
		}
		var list []models.Character
		if err := db.Preload("House").Where("user_id = ?", cfg.ID).Order("name").Find(&list).Error; err != nil {
			return err
		}
		return write(out, cfg.JSONOutput, list, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tHOUSE")
			for _, c := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.HouseName())
			}
		})

	case CmdDeleteUser:
		if cfg.ID == 0 {
			return errors.New("delete-user requires -id")
		}
		if err := DeleteUser(db, cfg.ID); err != nil {
			return err
		}
		cache.Forget(ctx, cache.UserPrefix(cfg.ID))
		fmt.Fprintf(out, "deleted user %d\n", cfg.ID)
		return nil

	case CmdContacts:
		var contacts []models.Contact
		if err := db.Order("created_at DESC").Find(&contacts).Error; err != nil {
			return err
		}
		return write(out, cfg.JSONOutput, contacts, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tRECEIVED\tMESSAGE")
			for _, c := range contacts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.CreatedAt.Format(time.RFC3339), c.Message)
			}
		})

	case CmdDeleteContact:
		if cfg.ID == 0 {
			return errors.New("delete-contact requires -id")
		}
		res := db.Delete(&models.Contact{}, cfg.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("contact %d: %w", cfg.ID, ErrNotFound)
		}
		fmt.Fprintf(out, "deleted contact %d\n", cfg.ID)
		return nil

	case CmdTaxonomy:
		kind, err := character.ParseKind(cfg.Kind)
		if err != nil {
			return err
		}
		opts, err := character.ListTaxonomy(db, kind)
		if err != nil {
			return err
		}
		return write(out, cfg.JSONOutput, opts, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME")
			for _, o := range opts {
				fmt.Fprintf(w, "%d\t%s\n", o.ID, o.Name)
			}
		})

	case CmdDeleteTaxonomy:
		kind, err := character.ParseKind(cfg.Kind)
		if err != nil {
			return err
		}
		if cfg.ID == 0 {
			return errors.New("delete-taxonomy requires -id")
		}
		if err := DeleteTaxonomy(db, kind, cfg.ID); err != nil {
			return err
		}
		cache.Forget(ctx, cache.TaxonomyPrefix)
		fmt.Fprintf(out, "deleted %s %d\n", kind, cfg.ID)
		return nil

	case CmdMigrate:
		if err := database.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(out, "database migrated")
		return nil
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}

func write(out io.Writer, asJSON bool, v any, table func(*tabwriter.Writer)) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	table(w)
	return w.Flush()
}
