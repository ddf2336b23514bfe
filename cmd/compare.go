package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/skillscan/skillscan/internal/catalog"
	"github.com/skillscan/skillscan/internal/catalog/store"
	"github.com/skillscan/skillscan/internal/config"
	"github.com/skillscan/skillscan/internal/match"
	"github.com/skillscan/skillscan/internal/report"
)

var (
	flagCompareOurs       string
	flagCompareType       string
	flagCompareThreshold  float64
	flagCompareOutput     string
	flagCompareReportOnly bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [path...]",
	Short: "Compare external skill/agent repos against your own catalog",
	Long: `Compare scans your own repo and the given external repo paths (or
directories of repos), persists both catalogs, and writes a markdown
report of overlapping components and gaps.

With --report-only the cached catalogs from the previous run are used
and no scanning happens.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&flagCompareOurs, "ours", "", "Path to your own repo (overrides ours_path in config)")
	compareCmd.Flags().StringVar(&flagCompareType, "type", "", "Filter to \"skills\" or \"agents\" only")
	compareCmd.Flags().Float64Var(&flagCompareThreshold, "threshold", config.DefaultThreshold, "Similarity threshold for matches")
	compareCmd.Flags().StringVar(&flagCompareOutput, "output", "", "Report output path (default <report_dir>/comparison-YYYY-MM-DD.md)")
	compareCmd.Flags().BoolVar(&flagCompareReportOnly, "report-only", false, "Generate report from cached catalogs (skip scanning)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	filterKind, err := resolveFilterKind(flagCompareType)
	if err != nil {
		return err
	}

	threshold := cfg.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold = flagCompareThreshold
	}
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold must be in [0,1], got %g", threshold)
	}

	oursCache := filepath.Join(cfg.CacheDir, "ours.json")
	externalCache := filepath.Join(cfg.CacheDir, "external.json")

	var own, external []catalog.Component
	var warnCount int

	if flagCompareReportOnly {
		// The caller explicitly opted into a cache-dependent mode;
		// missing data is fatal.
		own, err = store.Load(oursCache)
		if err != nil {
			return fmt.Errorf("no cached own catalog: %w\nRun 'skillscan compare <path...>' first.", err)
		}
		external, err = store.Load(externalCache)
		if err != nil {
			return fmt.Errorf("no cached external catalog: %w\nRun 'skillscan compare <path...>' first.", err)
		}
	} else {
		if len(args) == 0 {
			return errors.New("provide external repo path(s) or use --report-only")
		}

		oursPath := flagCompareOurs
		if oursPath == "" {
			oursPath = cfg.OursPath
		}
		if oursPath == "" {
			return errors.New("no own repo configured: pass --ours or set ours_path in ~/.skillscan/skillscan.yaml")
		}
		oursPath, err = config.ExpandPath(oursPath)
		if err != nil {
			return err
		}

		unlock, err := store.AcquireLock(cfg.CacheDir, 5*time.Second)
		if err != nil {
			return err
		}
		defer unlock()

		printInfo("", fmt.Sprintf("scanning own repo %s", oursPath))
		own, warnCount = scanAndReport(oursPath, filepath.Base(oursPath))
		if err := store.Save(oursCache, own); err != nil {
			return err
		}

		roots, warnings := catalog.ResolveRepoRoots(args)
		for _, w := range warnings {
			printErr("", w)
			warnCount++
		}
		for _, root := range roots {
			printInfo("", fmt.Sprintf("scanning %s", filepath.Base(root)))
			components, n := scanAndReport(root, filepath.Base(root))
			external = append(external, components...)
			warnCount += n
		}
		if err := store.Save(externalCache, external); err != nil {
			return err
		}
	}

	matches := match.FindOverlaps(own, external, threshold)
	gaps := match.FindUnmatched(external, own, threshold)

	text, stats := report.Generate(own, report.GroupByRepo(external), matches, gaps, report.Options{
		FilterKind:  filterKind,
		GeneratedAt: time.Now(),
	})

	outPath := flagCompareOutput
	if outPath == "" {
		outPath = filepath.Join(cfg.ReportDir, fmt.Sprintf("comparison-%s.md", time.Now().Format("2006-01-02")))
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("cannot create report dir %s: %w", filepath.Dir(outPath), err)
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("cannot write report %s: %w", outPath, err)
	}
	printOK("", fmt.Sprintf("report written: %s", outPath))
	if warnCount > 0 {
		printWarn("", fmt.Sprintf("%d scan warnings (see above)", warnCount))
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Ours: %d skills, %d agents\n", stats.OwnSkills, stats.OwnAgents)
	fmt.Printf("  External: %d skills, %d agents\n", stats.ExternalSkills, stats.ExternalAgents)
	fmt.Printf("  Overlaps: %d total, %d high-similarity\n", stats.Matches, stats.HighSimilarity)
	fmt.Printf("  Gaps: %d unmatched external components\n", stats.Gaps)
	return nil
}

// scanAndReport scans one repo root, prints its diagnostics, and
// returns the components plus the number of warnings hit.
func scanAndReport(root, repoName string) ([]catalog.Component, int) {
	res := catalog.ScanRepo(root, repoName)
	for _, w := range res.Warnings {
		printWarn(repoName, w)
	}
	printInfo("", fmt.Sprintf("found %d components", len(res.Components)))
	return res.Components, len(res.Warnings)
}

func resolveFilterKind(t string) (catalog.Kind, error) {
	switch t {
	case "":
		return "", nil
	case "skill", "skills":
		return catalog.KindSkill, nil
	case "agent", "agents":
		return catalog.KindAgent, nil
	default:
		return "", fmt.Errorf("invalid --type %q (want \"skills\" or \"agents\")", t)
	}
}
