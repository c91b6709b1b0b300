// Package solver invokes an external answer-set solver against a
// graphexport.Graph's ASP fact rendering and translates the answer
// sets it prints back into assumption extensions, restoring the
// concrete half of spec.md §4.6/§6 that the distilled spec leaves as
// "the solver is invoked externally" (grounded on
// aspartix_interface.py).
package solver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/cognicore/abaplus/pkg/abaplus/dedengine"
	"github.com/cognicore/abaplus/pkg/abaplus/graphexport"
	"github.com/cognicore/abaplus/pkg/abaplus/model"
)

// Semantics selects which Dung-style extension the external solver
// computes, and therefore which binary and encoding it runs.
type Semantics int

const (
	Admissible Semantics = iota
	Stable
	Complete
	Preferred
	Grounded
	Ideal
)

func (s Semantics) String() string {
	switch s {
	case Admissible:
		return "admissible"
	case Stable:
		return "stable"
	case Complete:
		return "complete"
	case Preferred:
		return "preferred"
	case Grounded:
		return "grounded"
	case Ideal:
		return "ideal"
	default:
		return "unknown"
	}
}

var indexRegex = regexp.MustCompile(`in\((\d+)\)`)

// Ideal extensions come from dlv rather than clingo and are reported
// under a different predicate and answer header.
const idealAnswerHeader = "Best model:"
const clingoAnswerHeader = "Answer:"

var idealIndexRegex = regexp.MustCompile(`ideal\((\d+)\)`)

// Config names the solver binaries and the directory holding their
// semantics encodings (adm.dl, stable.dl, ideal.dl, ...), the
// way aspartix_interface.py shipped one .dl/.lp file per semantics.
type Config struct {
	ClingoPath  string
	DlvPath     string
	EncodingDir string
}

func (c Config) withDefaults() Config {
	if c.ClingoPath == "" {
		c.ClingoPath = "clingo"
	}
	if c.DlvPath == "" {
		c.DlvPath = "dlv"
	}
	if c.EncodingDir == "" {
		c.EncodingDir = "."
	}
	return c
}

var encodingFile = map[Semantics]string{
	Admissible: "adm.dl",
	Stable:     "stable.dl",
	Complete:   "comp.dl",
	Preferred:  "prefex_gringo.lp",
	Grounded:   "ground.dl",
	Ideal:      "ideal.dl",
}

// Solver runs clingo or dlv against a fact file derived from a graph
// and translates answer sets back into assumption premises.
type Solver struct {
	cfg Config
}

// New builds a Solver. A zero Config fills in the "clingo"/"dlv"
// binaries on $PATH and the current directory for encodings.
func New(cfg Config) *Solver {
	return &Solver{cfg: cfg.withDefaults()}
}

// Extensions runs sem against g and returns one SentenceSet per
// answer set, each the union of the node premises selected by in(i)
// (or ideal(i) for Ideal semantics).
func (s *Solver) Extensions(ctx context.Context, g *graphexport.Graph, sem Semantics) (model.SetOfSets, error) {
	output, regex, header, err := s.run(ctx, g, sem)
	if err != nil {
		return model.SetOfSets{}, err
	}

	result := model.NewSetOfSets()
	for _, answer := range splitAnswers(output, header) {
		nodes, err := matchIndices(regex, answer)
		if err != nil {
			return model.SetOfSets{}, err
		}
		var union model.SentenceSet
		for _, idx := range nodes {
			if idx < 0 || idx >= len(g.Nodes) {
				return model.SetOfSets{}, fmt.Errorf("solver: answer set referenced unknown node index %d", idx)
			}
			union = union.Union(g.Nodes[idx])
		}
		result.Add(union)
	}
	return result, nil
}

// ExtensionConclusions runs Extensions and additionally closes each
// extension's premise set under rules, mirroring
// calculate_arguments_extensions's extension -> conclusions mapping.
func (s *Solver) ExtensionConclusions(ctx context.Context, g *graphexport.Graph, rules model.RuleSet, sem Semantics) (map[string]model.SentenceSet, error) {
	extensions, err := s.Extensions(ctx, g, sem)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.SentenceSet, extensions.Len())
	for _, ext := range extensions.Slice() {
		out[ext.Key()] = dedengine.GenerateAll(rules, ext)
	}
	return out, nil
}

func (s *Solver) run(ctx context.Context, g *graphexport.Graph, sem Semantics) (output string, pattern *regexp.Regexp, header string, err error) {
	// correlationID ties a subprocess failure's log line back to the
	// fact file that produced it, since the file is removed before the
	// caller can inspect it.
	correlationID := uuid.NewString()

	factsFile, err := os.CreateTemp("", "abaplus-facts-"+correlationID+"-*.lp")
	if err != nil {
		return "", nil, "", fmt.Errorf("solver: creating fact file: %w", err)
	}
	defer os.Remove(factsFile.Name())
	if _, err := factsFile.WriteString(g.ASPFacts()); err != nil {
		factsFile.Close()
		return "", nil, "", fmt.Errorf("solver: writing fact file: %w", err)
	}
	if err := factsFile.Close(); err != nil {
		return "", nil, "", fmt.Errorf("solver: closing fact file: %w", err)
	}

	encoding := s.cfg.EncodingDir + string(os.PathSeparator) + encodingFile[sem]

	var cmd *exec.Cmd
	var regex *regexp.Regexp
	var answerHeader string
	if sem == Ideal {
		cmd = exec.CommandContext(ctx, s.cfg.DlvPath, factsFile.Name(), encoding, "-filter=ideal", "-n=1")
		regex, answerHeader = idealIndexRegex, idealAnswerHeader
	} else {
		cmd = exec.CommandContext(ctx, s.cfg.ClingoPath, factsFile.Name(), encoding, "0")
		regex, answerHeader = indexRegex, clingoAnswerHeader
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && isClingoResultCode(exitErr.ExitCode()) {
			// clingo reports its search result through the exit code
			// (10 satisfiable, 20 exhausted with no model, 30 satisfiable
			// and exhausted), not an invocation failure.
		} else {
			return "", nil, "", fmt.Errorf("solver: run %s failed for %s extensions (correlation %s): %w (%s)",
				cmd.Path, sem, correlationID, err, stderr.String())
		}
	}

	return stdout.String(), regex, answerHeader, nil
}

func isClingoResultCode(code int) bool {
	return code == 10 || code == 20 || code == 30
}

// splitAnswers returns the text following each occurrence of header,
// one entry per answer set (mirroring output.split(answer_header)[1:]
// in the reference implementation).
func splitAnswers(output, header string) []string {
	if !strings.Contains(output, header) {
		return nil
	}
	parts := strings.Split(output, header)
	return parts[1:]
}

func matchIndices(pattern *regexp.Regexp, answer string) ([]int, error) {
	var out []int
	for _, m := range pattern.FindAllStringSubmatch(answer, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("solver: malformed node index %q: %w", m[1], err)
		}
		out = append(out, n)
	}
	return out, nil
}
