package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/skillscan/skillscan/internal/catalog"
	"github.com/skillscan/skillscan/internal/config"
)

var flagCatalogType string

var catalogCmd = &cobra.Command{
	Use:   "catalog [path...]",
	Short: "List components discovered in repos without comparing",
	Long: `Catalog scans the given repo paths (or your own repo from config when
no path is given) and prints every discovered component.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&flagCatalogType, "type", "", "Filter to \"skills\" or \"agents\" only")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	filterKind, err := resolveFilterKind(flagCatalogType)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.OursPath == "" {
			return errors.New("provide repo path(s) or set ours_path in ~/.skillscan/skillscan.yaml")
		}
		paths = []string{cfg.OursPath}
	}

	roots, warnings := catalog.ResolveRepoRoots(paths)
	for _, w := range warnings {
		printErr("", w)
	}

	var components []catalog.Component
	for _, root := range roots {
		res := catalog.ScanRepo(root, filepath.Base(root))
		for _, w := range res.Warnings {
			printWarn(filepath.Base(root), w)
		}
		components = append(components, res.Components...)
	}

	sort.Slice(components, func(i, j int) bool {
		a, b := components[i], components[j]
		if a.Repo != b.Repo {
			return a.Repo < b.Repo
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Name < b.Name
	})

	printSection("Catalog")
	for _, c := range components {
		if filterKind != "" && c.Kind != filterKind {
			continue
		}
		marker := "A"
		if c.Kind == catalog.KindSkill {
			marker = "S"
		}
		fmt.Printf("[%s] %s/%s (%d lines)\n", marker, c.Repo, c.Name, c.LineCount)
		if c.Description != "" {
			fmt.Printf("    %s\n", clipDescription(c.Description, 100))
		}
	}
	return nil
}

func clipDescription(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
