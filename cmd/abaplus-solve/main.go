// Command abaplus-solve parses an ABA+ framework source file, derives
// its attack graph, and runs an external answer-set solver to compute
// extensions under a chosen semantics.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/cognicore/abaplus/pkg/abaplus"
	"github.com/cognicore/abaplus/pkg/abaplus/config"
	"github.com/cognicore/abaplus/pkg/abaplus/parse"
	"github.com/cognicore/abaplus/pkg/abaplus/report"
	"github.com/cognicore/abaplus/pkg/abaplus/solver"
	"github.com/cognicore/abaplus/pkg/abaplus/store"
	"github.com/cognicore/abaplus/pkg/abaplus/store/sqlite"
)

var semanticsByName = map[string]solver.Semantics{
	"admissible": solver.Admissible,
	"stable":     solver.Stable,
	"complete":   solver.Complete,
	"preferred":  solver.Preferred,
	"grounded":   solver.Grounded,
	"ideal":      solver.Ideal,
}

func main() {
	var (
		input     = flag.String("input", "", "Path to an ABA+ framework source file (required)")
		cfgPath   = flag.String("config", "", "Optional path to a YAML config file")
		semantics = flag.String("semantics", "", "Extension semantics: admissible, stable, complete, preferred, grounded, ideal")
		clingo    = flag.String("clingo", "", "Path to the clingo binary")
		dlv       = flag.String("dlv", "", "Path to the dlv binary")
		encoding  = flag.String("encoding-dir", "", "Directory holding the ASP encodings")
		dbPath    = flag.String("db", "", "Optional path to a sqlite database to persist this run")
		timeout   = flag.Duration("timeout", 30*time.Second, "Maximum time to let the external solver run")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	semName := cfg.Solver.Semantics
	if *semantics != "" {
		semName = *semantics
	}
	sem, ok := semanticsByName[semName]
	if !ok {
		log.Fatalf("unknown semantics %q", semName)
	}

	solverCfg := solver.Config{
		ClingoPath:  firstNonEmpty(*clingo, cfg.Solver.ClingoPath),
		DlvPath:     firstNonEmpty(*dlv, cfg.Solver.DlvPath),
		EncodingDir: firstNonEmpty(*encoding, cfg.Solver.EncodingDir),
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read %s: %v", *input, err)
	}

	parsed, err := parse.Parse(string(data))
	if err != nil {
		log.Fatalf("parse %s: %v", *input, err)
	}

	f, err := abaplus.Build(parsed.Framework)
	if err != nil {
		log.Fatalf("build framework: %v", err)
	}

	var st store.Store
	if *dbPath != "" {
		opened, err := sqlite.Open(context.Background(), *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		st = opened
		defer st.Close()
	}

	ab := abaplus.New(abaplus.Options{Store: st, Solver: solver.New(solverCfg)})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	extensions, err := ab.Solve(ctx, f, sem)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	var rendered []string
	for _, ext := range extensions.Slice() {
		rendered = append(rendered, ext.String())
	}

	if cfg.OutputFormat == "json" {
		doc := report.JSONReport{Extensions: rendered}
		if err := doc.Write(os.Stdout); err != nil {
			log.Fatalf("write report: %v", err)
		}
	} else {
		rep := report.New(os.Stdout, cfg.Color)
		rep.Extensions(extensions)
	}

	if st != nil {
		run := store.Run{
			ID:         store.NewIDGenerator().New(time.Now()),
			CreatedAt:  time.Now(),
			Source:     string(data),
			Semantics:  sem.String(),
			Extensions: rendered,
		}
		if err := ab.SaveRun(context.Background(), run); err != nil {
			log.Fatalf("save run: %v", err)
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
