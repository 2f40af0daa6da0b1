package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coolbeans/mpnclass/pkg/batch"
	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/manufacturer"
	"github.com/coolbeans/mpnclass/pkg/pattern"
	"github.com/coolbeans/mpnclass/pkg/ruleset"
)

var version = "0.1.0"

// app carries the state shared by subcommands once configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
	logger  *slog.Logger
	dir     *manufacturer.Directory
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "mpnclass",
		Short: "Manufacturer part number classifier",
		Long: `mpnclass identifies the manufacturer of an electronic component from its
part number and reads the category, series and package code from it
using that manufacturer's rules.

It can also:
  - List every plausible manufacturer ranked by confidence
  - Check whether one part is an accepted substitute for another
  - Classify whole bills of materials concurrently
  - Validate rule files while they are being edited`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.config/mpnclass/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("rules-dir", "", "Directory of rule files overriding the bundled ones")
	_ = a.v.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = a.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("rules_dir", rootCmd.PersistentFlags().Lookup("rules-dir"))

	rootCmd.AddCommand(a.classifyCmd())
	rootCmd.AddCommand(a.candidatesCmd())
	rootCmd.AddCommand(a.explainCmd())
	rootCmd.AddCommand(a.identifyCmd())
	rootCmd.AddCommand(a.seriesCmd())
	rootCmd.AddCommand(a.packageCmd())
	rootCmd.AddCommand(a.replaceCmd())
	rootCmd.AddCommand(a.manufacturersCmd())
	rootCmd.AddCommand(a.categoriesCmd())
	rootCmd.AddCommand(a.batchCmd())
	rootCmd.AddCommand(a.rulesCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	dir, err := buildDirectory(cfg.RulesDir, logger)
	if err != nil {
		return fmt.Errorf("building manufacturer directory: %w", err)
	}
	a.cfg, a.logger, a.dir = cfg, logger, dir
	return nil
}

func (a *app) jsonOutput() bool {
	return a.cfg.Output == "json"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// manufacturerFor returns the --manufacturer flag as an id, or the
// classification of part when the flag is empty.
func (a *app) manufacturerFor(cmd *cobra.Command, part string) (manufacturer.ID, error) {
	name, _ := cmd.Flags().GetString("manufacturer")
	if name == "" {
		return a.dir.Classify(part), nil
	}
	return a.dir.ParseID(name)
}

func (a *app) classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify MPN...",
		Short: "Print the most likely manufacturer of each part number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type row struct {
				MPN          string          `json:"mpn"`
				Manufacturer manufacturer.ID `json:"manufacturer"`
			}
			rows := make([]row, 0, len(args))
			for _, part := range args {
				rows = append(rows, row{MPN: part, Manufacturer: a.dir.Classify(part)})
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, rows)
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%s\t%s\n", r.MPN, r.Manufacturer)
			}
			return nil
		},
	}
}

func (a *app) candidatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates MPN",
		Short: "List every plausible manufacturer, strongest tier first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := a.dir.Candidates(args[0])
			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				if candidates == nil {
					candidates = []manufacturer.Candidate{}
				}
				return writeJSON(out, candidates)
			}
			if len(candidates) == 0 {
				fmt.Fprintln(out, manufacturer.Unknown)
				return nil
			}
			for _, c := range candidates {
				fmt.Fprintf(out, "%-8s %-14s %s\n", c.Tier, c.ID, c.Reason)
			}
			return nil
		},
	}
}

func (a *app) explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain MPN",
		Short: "Explain how a part number was resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), a.dir.Explain(args[0]))
			return nil
		},
	}
}

func (a *app) identifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify MPN...",
		Short: "Print manufacturer, category, series and package of each part number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]manufacturer.Identification, 0, len(args))
			for _, part := range args {
				ids = append(ids, a.dir.Identify(part))
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, ids)
			}
			for _, id := range ids {
				printIdentification(out, id)
			}
			return nil
		},
	}
}

func printIdentification(w io.Writer, id manufacturer.Identification) {
	fmt.Fprintf(w, "%s\n", id.MPN)
	fmt.Fprintf(w, "  Manufacturer: %s (%s, %s)\n", id.Name, id.Manufacturer, id.Tier)
	if id.Category != "" {
		fmt.Fprintf(w, "  Category:     %s (%s)\n", id.Category, id.BaseCategory)
	}
	if id.Series != "" {
		fmt.Fprintf(w, "  Series:       %s\n", id.Series)
	}
	if id.Package != "" {
		fmt.Fprintf(w, "  Package:      %s\n", id.Package)
	}
}

func (a *app) seriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series MPN",
		Short: "Print the series of a part number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.manufacturerFor(cmd, args[0])
			if err != nil {
				return err
			}
			return a.printField(cmd, "series", args[0], id, a.dir.ExtractSeries(id, args[0]))
		},
	}
	cmd.Flags().StringP("manufacturer", "m", "", "Manufacturer id or name (default: classify the part)")
	return cmd
}

func (a *app) packageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package MPN",
		Short: "Print the package code of a part number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.manufacturerFor(cmd, args[0])
			if err != nil {
				return err
			}
			return a.printField(cmd, "package", args[0], id, a.dir.ExtractPackageCode(id, args[0]))
		},
	}
	cmd.Flags().StringP("manufacturer", "m", "", "Manufacturer id or name (default: classify the part)")
	return cmd
}

func (a *app) printField(cmd *cobra.Command, field, part string, id manufacturer.ID, value string) error {
	out := cmd.OutOrStdout()
	if a.jsonOutput() {
		return writeJSON(out, map[string]string{
			"mpn":          part,
			"manufacturer": string(id),
			field:          value,
		})
	}
	if value == "" {
		return fmt.Errorf("no %s found in %q for %s", field, part, id)
	}
	fmt.Fprintln(out, value)
	return nil
}

func (a *app) replaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace ORIGINAL CANDIDATE",
		Short: "Check whether CANDIDATE is an accepted substitute for ORIGINAL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.manufacturerFor(cmd, args[0])
			if err != nil {
				return err
			}
			ok := a.dir.IsOfficialReplacement(id, args[0], args[1])

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, map[string]any{
					"original":     args[0],
					"candidate":    args[1],
					"manufacturer": id,
					"replacement":  ok,
				})
			}
			verdict := "not a replacement"
			if ok {
				verdict = "replacement"
			}
			fmt.Fprintf(out, "%s -> %s: %s (%s)\n", args[0], args[1], verdict, id)
			return nil
		},
	}
	cmd.Flags().StringP("manufacturer", "m", "", "Manufacturer id or name (default: classify the original)")
	return cmd
}

func (a *app) manufacturersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manufacturers",
		Short: "List known manufacturers in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := a.dir.Manufacturers()
			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, list)
			}
			for i, m := range list {
				fmt.Fprintf(out, "%2d. %-14s %s\n", i+1, m.ID, m.Name)
			}
			return nil
		},
	}
}

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List component categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := category.All()
			if name, _ := cmd.Flags().GetString("manufacturer"); name != "" {
				id, err := a.dir.ParseID(name)
				if err != nil {
					return err
				}
				cats = a.dir.SupportedCategories(id)
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, cats)
			}
			for _, c := range cats {
				if c.IsBase() {
					fmt.Fprintln(out, c)
				} else {
					fmt.Fprintf(out, "%s -> %s\n", c, c.Base())
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("manufacturer", "m", "", "Only categories this manufacturer supports")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Identify every part number in FILE, one per line (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}
			mpns, err := batch.ReadMPNs(in)
			if err != nil {
				return err
			}

			workers := a.cfg.Batch.Workers
			if cmd.Flags().Changed("workers") {
				workers, _ = cmd.Flags().GetInt("workers")
			}
			results, err := batch.Run(cmd.Context(), a.dir, mpns, batch.Options{
				Workers:  workers,
				CacheTTL: a.cfg.Batch.CacheTTL,
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, results)
			}
			for _, r := range results {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
					r.MPN, r.Manufacturer, orDash(string(r.Category)), orDash(r.Series), orDash(r.Package))
			}
			return nil
		},
	}
	cmd.Flags().IntP("workers", "w", batch.DefaultWorkers, "Concurrent workers (overrides batch.workers)")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (a *app) rulesCmd() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Work with rule files",
	}

	checkCmd := &cobra.Command{
		Use:   "check [DIR]",
		Short: "Validate rule files (default: the bundled ones)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			watch, _ := cmd.Flags().GetBool("watch")
			if len(args) == 0 {
				if watch {
					return fmt.Errorf("--watch needs a directory")
				}
				files, err := pattern.LoadFSDir(ruleset.Rules(), ".")
				if err != nil {
					return err
				}
				return reportRuleFiles(out, files)
			}

			files, loadErr := pattern.LoadDirectory(args[0])
			if err := reportRuleFiles(out, files); err != nil && !watch {
				return err
			}
			if !watch {
				return loadErr
			}
			if loadErr != nil {
				fmt.Fprintln(out, loadErr)
			}
			return a.watchRules(cmd, args[0])
		},
	}
	checkCmd.Flags().Bool("watch", false, "Re-check files in DIR whenever they change")

	rulesCmd.AddCommand(checkCmd)
	return rulesCmd
}

// checkRuleFile builds a rule set over rf and registers its patterns the way
// the directory does.
func checkRuleFile(rf *pattern.RuleFile) error {
	reg := pattern.NewRegistry(rf.ID)
	ruleset.FromRuleFile(rf).InitializePatterns(reg)
	return reg.Err()
}

func reportRuleFiles(w io.Writer, files []*pattern.RuleFile) error {
	var failed []string
	for _, rf := range files {
		if err := checkRuleFile(rf); err != nil {
			failed = append(failed, rf.ID)
			fmt.Fprintf(w, "FAIL %s: %v\n", rf.ID, err)
			continue
		}
		fmt.Fprintf(w, "ok   %s (%d categories)\n", rf.ID, len(rf.SupportedCategories()))
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d rule files failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func (a *app) watchRules(cmd *cobra.Command, dir string) error {
	out := cmd.OutOrStdout()

	w := pattern.NewWatcher(dir, func(res pattern.CheckResult) {
		switch {
		case res.Removed:
			fmt.Fprintf(out, "removed %s\n", res.Path)
		case res.Err != nil:
			fmt.Fprintf(out, "FAIL %s: %v\n", res.Path, res.Err)
		default:
			if err := checkRuleFile(res.Rule); err != nil {
				fmt.Fprintf(out, "FAIL %s: %v\n", res.Path, err)
				return
			}
			fmt.Fprintf(out, "ok   %s (%s)\n", res.Path, res.Rule.ID)
		}
	}, a.logger)
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintf(out, "watching %s, press Ctrl-C to stop\n", dir)
	<-cmd.Context().Done()
	return nil
}
