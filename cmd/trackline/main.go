package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/trackline/internal/compiler"
	"github.com/ivlev/trackline/internal/config"
	"github.com/ivlev/trackline/internal/importer"
	"github.com/ivlev/trackline/internal/project"
	"github.com/ivlev/trackline/internal/system"
	"github.com/ivlev/trackline/internal/timeline"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}
}

var configPath string

func loadConfig() (*config.Config, error) {
	return config.ReadFromFile(configPath)
}

// resolveProject picks the project file to operate on: an explicit argument,
// otherwise the most recently modified project in the projects directory.
func resolveProject(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	latest, err := project.FindLatest(cfg.ProjectsDir)
	if err != nil {
		return "", fmt.Errorf("no project given: %w", err)
	}
	fmt.Printf("[*] Using project: %s\n", latest)
	return latest, nil
}

var rootCmd = &cobra.Command{
	Use:   "trackline",
	Short: "Compose timed clips on tracks and compile them into automation scripts",
}

var newCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create an empty project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tl := timeline.New()
		if cfg.DefaultTrackHeight > 0 {
			tl.Tracks[0].Height = cfg.DefaultTrackHeight
		}

		if err := os.MkdirAll(cfg.ProjectsDir, 0755); err != nil {
			return err
		}

		path := filepath.Join(cfg.ProjectsDir, args[0]+".yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("project already exists: %s", path)
		}

		if err := project.Save(project.FromTimeline(tl), path); err != nil {
			return err
		}

		fmt.Printf("[+] Created %s\n", path)
		return nil
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile [PROJECT]",
	Short: "Compile a project into an automation script",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetString("all")
		output, _ := cmd.Flags().GetString("output")
		stats, _ := cmd.Flags().GetBool("stats")
		showStats := stats || cfg.ShowStats

		startTime := time.Now()

		if all != "" {
			count, err := compileAll(all, cfg.OutputDir)
			if err != nil {
				return err
			}
			fmt.Printf("[+] Compiled %d project(s) into %s\n", count, cfg.OutputDir)
			if showStats {
				printStats(startTime, count)
			}
			return nil
		}

		path, err := resolveProject(args, cfg)
		if err != nil {
			return err
		}

		if output == "" {
			output = scriptPath(path, cfg.OutputDir)
		}

		if err := compileOne(path, output); err != nil {
			return err
		}

		fmt.Printf("[+] Script written: %s\n", output)
		if showStats {
			printStats(startTime, 1)
		}
		return nil
	},
}

// compileOne loads a single project and writes its compiled script.
func compileOne(projectPath, outputPath string) error {
	doc, err := project.Load(projectPath)
	if err != nil {
		return err
	}

	tl, err := doc.Timeline()
	if err != nil {
		return err
	}

	script := compiler.Compile(tl)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(script), 0644)
}

// compileAll compiles every project in a directory with a bounded worker pool.
func compileAll(dir, outputDir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, fmt.Errorf("no project files found in %s", dir)
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, p := range paths {
		p := p
		g.Go(func() error {
			out := scriptPath(p, outputDir)
			if err := compileOne(p, out); err != nil {
				return fmt.Errorf("compiling %s: %w", p, err)
			}
			fmt.Printf("[>] Ready: %s\n", out)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(paths), nil
}

func scriptPath(projectPath, outputDir string) string {
	base := filepath.Base(projectPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, name+".ahk")
}

func printStats(start time.Time, count int) {
	elapsed := time.Since(start)

	fmt.Println("--- [PERFORMANCE REPORT] ---")
	fmt.Printf("Projects: %d\n", count)
	fmt.Printf("Total Time: %.3fs\n", elapsed.Seconds())
	if report, err := system.Memory(int32(os.Getpid())); err == nil {
		fmt.Printf("Memory: %s\n", report)
	} else {
		fmt.Printf("[!] Memory stats unavailable: %v\n", err)
	}
	fmt.Println("----------------------------")
}

var importCmd = &cobra.Command{
	Use:   "import SPECS [PROJECT]",
	Short: "Build tracks from an exported track-spec file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		specs, err := importer.ReadSpecs(args[0])
		if err != nil {
			return err
		}

		// Specs may omit durations; fall back to the configured default.
		for ti := range specs {
			for ci := range specs[ti].Clips {
				if specs[ti].Clips[ci].Duration <= 0 {
					specs[ti].Clips[ci].Duration = cfg.DefaultClipDuration
				}
			}
		}

		var tl *timeline.Timeline
		var path string

		if len(args) > 1 {
			path = args[1]
			doc, err := project.Load(path)
			if err != nil {
				return err
			}
			if tl, err = doc.Timeline(); err != nil {
				return err
			}
		} else {
			tl = timeline.New()
			base := filepath.Base(args[0])
			name := strings.TrimSuffix(base, filepath.Ext(base))
			if err := os.MkdirAll(cfg.ProjectsDir, 0755); err != nil {
				return err
			}
			path = filepath.Join(cfg.ProjectsDir, name+".yaml")
		}

		tracks := importer.BuildTracks(specs, tl)

		// Grow the timeline when imported clips run past its end.
		maxEnd := 0.0
		for _, tr := range tracks {
			for _, c := range tr.Clips {
				if c.EndTime() > maxEnd {
					maxEnd = c.EndTime()
				}
			}
		}
		if maxEnd > tl.TotalLength {
			tl.SetTotalLength(maxEnd)
		}

		if err := project.Save(project.FromTimeline(tl), path); err != nil {
			return err
		}

		fmt.Printf("[+] Imported %d track(s) into %s\n", len(tracks), path)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info [PROJECT]",
	Short: "Show a project summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path, err := resolveProject(args, cfg)
		if err != nil {
			return err
		}

		doc, err := project.Load(path)
		if err != nil {
			return err
		}
		tl, err := doc.Timeline()
		if err != nil {
			return err
		}

		fmt.Printf("Project: %s\n", path)
		fmt.Printf("Length:  %.1fs | Tracks: %d | Clips: %d\n",
			tl.TotalLength, len(tl.Tracks), tl.ClipCount())
		for _, tr := range tl.Tracks {
			fmt.Printf("  %s (%d clips)\n", tr.Name, len(tr.Clips))
			for _, c := range tr.Clips {
				fmt.Printf("    %-20s %7.2fs - %7.2fs  [%s]\n",
					c.Name, c.StartTime, c.EndTime(), c.Action)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "trackline.toml", "Path to the config file")

	compileCmd.Flags().String("all", "", "Compile every project in a directory")
	compileCmd.Flags().StringP("output", "o", "", "Output script path")
	compileCmd.Flags().Bool("stats", false, "Print a performance report")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(infoCmd)
}
