package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/lexaard/internal/fsa"
)

// Definition file extensions.
const (
	ExtCUE = ".cue"
	ExtFSA = ".fsa"
)

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// NamedAutomaton is one loaded automaton and where it came from.
type NamedAutomaton struct {
	Name   string
	Source string
	FSA    fsa.Automaton
}

// LoadResult contains the automata loaded from a directory.
type LoadResult struct {
	Automata  []NamedAutomaton
	FileCount int
}

// Lookup returns the automaton registered under name.
func (r *LoadResult) Lookup(name string) (fsa.Automaton, bool) {
	for _, a := range r.Automata {
		if a.Name == name {
			return a.FSA, true
		}
	}
	return nil, false
}

// LoadDir loads every automaton defined under dir: the `automaton` struct
// of the CUE package in dir, then each .fsa file in lexical path order.
// A .fsa file holds exactly one definition block and is named by its file
// stem. Names must be unique across both sources.
func LoadDir(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("definitions directory: %w", err)}
	}
	if !info.IsDir() {
		return nil, []error{fmt.Errorf("not a directory: %s", dir)}
	}

	cueFiles, fsaFiles, err := FindDefinitionFiles(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("scanning %s: %w", dir, err)}
	}
	if len(cueFiles) == 0 && len(fsaFiles) == 0 {
		return nil, []error{fmt.Errorf("no %s or %s files found in %s", ExtCUE, ExtFSA, dir)}
	}

	result := &LoadResult{FileCount: len(cueFiles) + len(fsaFiles)}
	var errs []error
	seen := make(map[string]string)
	add := func(n NamedAutomaton) error {
		if prev, dup := seen[n.Name]; dup {
			return fmt.Errorf("automaton %q defined in both %s and %s", n.Name, prev, n.Source)
		}
		seen[n.Name] = n.Source
		result.Automata = append(result.Automata, n)
		return nil
	}

	if len(cueFiles) > 0 {
		value, err := loadCUEPackage(dir)
		if err != nil {
			return result, []error{err}
		}
		named, cueErrs := compileAutomata(value, dir, mode)
		errs = append(errs, cueErrs...)
		if mode == LoadModeFailFast && len(errs) > 0 {
			return result, errs
		}
		for _, n := range named {
			if err := add(n); err != nil {
				errs = append(errs, err)
				if mode == LoadModeFailFast {
					return result, errs
				}
			}
		}
	}

	for _, path := range fsaFiles {
		a, err := LoadFSAFile(path)
		if err == nil {
			err = add(NamedAutomaton{Name: fileStem(path), Source: path, FSA: a})
		}
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return result, errs
			}
		}
	}
	return result, errs
}

func loadCUEPackage(dir string) (cue.Value, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return cue.Value{}, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, fmt.Errorf("loading CUE files: %w", inst.Err)
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	return value, nil
}

// compileAutomata compiles every field of the top-level `automaton` struct.
func compileAutomata(value cue.Value, source string, mode LoadMode) ([]NamedAutomaton, []error) {
	av := value.LookupPath(cue.ParsePath("automaton"))
	if !av.Exists() {
		return nil, nil
	}
	iter, err := av.Fields()
	if err != nil {
		return nil, []error{formatCUEError(err)}
	}

	var named []NamedAutomaton
	var errs []error
	for iter.Next() {
		a, err := CompileAutomaton(iter.Value())
		if err != nil {
			errs = append(errs, fmt.Errorf("automaton.%s: %w", iter.Label(), err))
			if mode == LoadModeFailFast {
				return named, errs
			}
			continue
		}
		named = append(named, NamedAutomaton{Name: iter.Label(), Source: source, FSA: a})
	}
	return named, errs
}

// CompileCUE compiles every automaton in a single CUE source text.
// filename is used for error positions only.
func CompileCUE(filename string, src []byte) ([]NamedAutomaton, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	named, errs := compileAutomata(value, filename, LoadModeFailFast)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return named, nil
}

// LoadFSAFile parses a text definition file holding exactly one block.
// Parse errors carry line numbers relative to the file.
func LoadFSAFile(path string) (fsa.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)
	if n := countBlocks(text); n > 1 {
		return nil, fmt.Errorf("%s: holds %d definition blocks, want 1", path, n)
	}
	a, err := fsa.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// countBlocks counts the runs of non-blank lines in text.
func countBlocks(text string) int {
	n := 0
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		blank := strings.TrimSpace(line) == ""
		if !blank && !inBlock {
			n++
		}
		inBlock = !blank
	}
	return n
}

// FindDefinitionFiles returns the .cue and .fsa file paths directly inside
// dir, each sorted. Subdirectories are not searched.
func FindDefinitionFiles(dir string) (cueFiles, fsaFiles []string, err error) {
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ExtCUE:
			cueFiles = append(cueFiles, path)
		case ExtFSA:
			fsaFiles = append(fsaFiles, path)
		}
		return nil
	})
	sort.Strings(cueFiles)
	sort.Strings(fsaFiles)
	return cueFiles, fsaFiles, err
}

func fileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
