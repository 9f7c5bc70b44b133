package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// seedFile is one YAML file of directory seed data
type seedFile struct {
	Categories []seedCategory `yaml:"categories"`
	Partners   []seedPartner  `yaml:"partners"`
}

type seedCategory struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type seedPartner struct {
	Name        string           `yaml:"name"`
	VAT         string           `yaml:"vat"`
	Email       string           `yaml:"email"`
	Phone       string           `yaml:"phone"`
	Ref         string           `yaml:"ref"`
	Identifiers []seedIdentifier `yaml:"identifiers"`
	Contacts    []seedContact    `yaml:"contacts"`
}

type seedIdentifier struct {
	Scheme string `yaml:"scheme"`
	Value  string `yaml:"value"`
}

type seedContact struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

// seedStats counts what a seed run wrote
type seedStats struct {
	Categories  int `json:"categories" yaml:"categories"`
	Partners    int `json:"partners" yaml:"partners"`
	Contacts    int `json:"contacts" yaml:"contacts"`
	Identifiers int `json:"identifiers" yaml:"identifiers"`
}

func newSeedCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "seed DIR",
		Short: "Load partners, identifier categories and numbers from YAML files",
		Long: `seed reads every *.yaml and *.yml file of DIR in name order and writes its
identifier categories, companies, contacts and identifier numbers to the
partner directory. Categories already in the directory are reused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := loadSeedFiles(args[0])
			if err != nil {
				return err
			}

			db, err := opts.openDirectory()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := seedDirectory(cmd.Context(), persistence.NewGormPartnerDirectory(db.DB), files)
			if err != nil {
				return err
			}
			opts.log.Info("Seeded partner directory",
				zap.Int("categories", stats.Categories),
				zap.Int("partners", stats.Partners),
				zap.Int("contacts", stats.Contacts),
				zap.Int("identifiers", stats.Identifiers),
			)
			return render(cmd.OutOrStdout(), output, stats)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "Output format: json or yaml")
	return cmd
}

func loadSeedFiles(dir string) ([]seedFile, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no seed files in %s", dir)
	}
	sort.Strings(paths)

	files := make([]seedFile, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var f seedFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		files = append(files, f)
	}
	return files, nil
}

// seedWriter is the part of the directory seeding needs
type seedWriter interface {
	partner.IdentifierDirectory
	partner.DirectoryWriter
}

func seedDirectory(ctx context.Context, dir seedWriter, files []seedFile) (seedStats, error) {
	var stats seedStats

	categories, err := seedCategories(ctx, dir, files, &stats)
	if err != nil {
		return stats, err
	}

	for _, f := range files {
		for _, sp := range f.Partners {
			company, err := partner.NewCompany(sp.Name, sp.VAT)
			if err != nil {
				return stats, fmt.Errorf("partner %q: %w", sp.Name, err)
			}
			company.Email = sp.Email
			company.Phone = sp.Phone
			company.Ref = sp.Ref
			if err := dir.SavePartner(ctx, company); err != nil {
				return stats, fmt.Errorf("save partner %q: %w", sp.Name, err)
			}
			stats.Partners++

			for _, sc := range sp.Contacts {
				contact, err := partner.NewContact(company, sc.Name, sc.Email)
				if err != nil {
					return stats, fmt.Errorf("contact %q of %q: %w", sc.Name, sp.Name, err)
				}
				contact.Phone = sc.Phone
				if err := dir.SavePartner(ctx, contact); err != nil {
					return stats, fmt.Errorf("save contact %q: %w", sc.Name, err)
				}
				stats.Contacts++
			}

			for _, si := range sp.Identifiers {
				category, ok := categories[si.Scheme]
				if !ok {
					return stats, fmt.Errorf("partner %q: unknown identifier scheme %q", sp.Name, si.Scheme)
				}
				number, err := partner.NewIdentifierNumber(category, company.ID, si.Value)
				if err != nil {
					return stats, fmt.Errorf("identifier %s/%s: %w", si.Scheme, si.Value, err)
				}
				if err := dir.SaveIdentifier(ctx, number); err != nil {
					return stats, fmt.Errorf("save identifier %s/%s: %w", si.Scheme, si.Value, err)
				}
				stats.Identifiers++
			}
		}
	}
	return stats, nil
}

// seedCategories returns every declared category by code, reusing the ones
// the directory already knows
func seedCategories(ctx context.Context, dir seedWriter, files []seedFile, stats *seedStats) (map[string]*partner.IdentifierCategory, error) {
	declared := make(map[string]seedCategory)
	var codes []string
	for _, f := range files {
		for _, c := range f.Categories {
			if _, dup := declared[c.Code]; dup {
				continue
			}
			declared[c.Code] = c
			codes = append(codes, c.Code)
		}
	}

	byCode := make(map[string]*partner.IdentifierCategory, len(codes))
	if len(codes) == 0 {
		return byCode, nil
	}

	existing, err := dir.FindCategoriesByCode(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("find identifier categories: %w", err)
	}
	for i := range existing {
		byCode[existing[i].Code] = &existing[i]
	}

	for _, code := range codes {
		if _, ok := byCode[code]; ok {
			continue
		}
		sc := declared[code]
		category, err := partner.NewIdentifierCategory(sc.Code, sc.Name)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", sc.Code, err)
		}
		if err := dir.SaveCategory(ctx, category); err != nil {
			return nil, fmt.Errorf("save category %q: %w", sc.Code, err)
		}
		byCode[category.Code] = category
		stats.Categories++
	}
	return byCode, nil
}
