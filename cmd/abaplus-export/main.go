// Command abaplus-export parses an ABA+ framework source file and
// writes its attack graph as ASP facts, ready to feed to clingo or dlv
// directly.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/cognicore/abaplus/pkg/abaplus"
	"github.com/cognicore/abaplus/pkg/abaplus/parse"
)

func main() {
	var (
		input = flag.String("input", "", "Path to an ABA+ framework source file (required)")
		out   = flag.String("out", "", "Output path for the ASP facts (defaults to stdout)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
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

	ab := abaplus.New(abaplus.Options{})
	graph := ab.ExportGraph(f)
	facts := graph.ASPFacts()

	if *out == "" {
		os.Stdout.WriteString(facts)
		return
	}
	if err := os.WriteFile(*out, []byte(facts), 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
}
