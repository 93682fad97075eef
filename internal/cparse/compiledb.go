package cparse

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
)

// forcedFlags are always appended so vendor headers expose plain prototypes:
// __STATIC_INLINE and inline must expand to nothing or the declarations
// would not survive a body-skipping parse.
var forcedFlags = []string{"-D__STATIC_INLINE=", "-Dinline="}

// compileCommand is one entry of a compile_commands.json database. Either
// Arguments or Command is populated depending on the generator that wrote
// the database.
type compileCommand struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command"`
	Arguments []string `json:"arguments"`
}

// CompilationDatabase resolves per-file compiler flags from a
// compile_commands.json file. It is read-only after loading and safe to
// share across workers.
type CompilationDatabase struct {
	byPath map[string]compileCommand
	byBase map[string]compileCommand
}

// LoadCompilationDatabase reads a compile_commands.json database. The path
// may name the JSON file itself or a directory containing one.
func LoadCompilationDatabase(path string) (*CompilationDatabase, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("compilation database: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "compile_commands.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compilation database: %w", err)
	}

	var commands []compileCommand
	if err := json.Unmarshal(data, &commands); err != nil {
		return nil, fmt.Errorf("compilation database %s: %w", path, err)
	}

	db := &CompilationDatabase{
		byPath: make(map[string]compileCommand, len(commands)),
		byBase: make(map[string]compileCommand, len(commands)),
	}
	for _, cc := range commands {
		abs := cc.File
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cc.Directory, cc.File)
		}
		abs = filepath.Clean(abs)
		if _, seen := db.byPath[abs]; !seen {
			db.byPath[abs] = cc
		}
		base := filepath.Base(cc.File)
		if _, seen := db.byBase[base]; !seen {
			db.byBase[base] = cc
		}
	}
	return db, nil
}

// FlagsFor returns the -D and -I flags recorded for file, plus the forced
// overrides. A file with no database entry still gets the forced overrides:
// partial flag information degrades the heuristics, it does not stop them.
func (db *CompilationDatabase) FlagsFor(file string) []string {
	var flags []string
	if cc, ok := db.lookup(file); ok {
		flags = filterFlags(commandArguments(cc))
	}
	return append(flags, forcedFlags...)
}

func (db *CompilationDatabase) lookup(file string) (compileCommand, bool) {
	abs := file
	if !filepath.IsAbs(abs) {
		if wd, err := os.Getwd(); err == nil {
			abs = filepath.Join(wd, abs)
		}
	}
	if cc, ok := db.byPath[filepath.Clean(abs)]; ok {
		return cc, true
	}
	cc, ok := db.byBase[filepath.Base(file)]
	return cc, ok
}

// commandArguments normalizes an entry to an argument vector, splitting the
// shell-quoted Command form when the Arguments form is absent.
func commandArguments(cc compileCommand) []string {
	if len(cc.Arguments) > 0 {
		return cc.Arguments
	}
	args, err := shlex.Split(cc.Command)
	if err != nil {
		return nil
	}
	return args
}

// filterFlags keeps only define and include-path flags, joining the
// two-token "-D X" / "-I path" spellings into one.
func filterFlags(args []string) []string {
	var flags []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-D" || arg == "-I":
			if i+1 < len(args) {
				flags = append(flags, arg+args[i+1])
				i++
			}
		case strings.HasPrefix(arg, "-D") || strings.HasPrefix(arg, "-I"):
			flags = append(flags, arg)
		}
	}
	return flags
}

// IncludePaths extracts the directories named by -I flags.
func IncludePaths(flags []string) []string {
	var dirs []string
	for _, f := range flags {
		if strings.HasPrefix(f, "-I") && len(f) > 2 {
			dirs = append(dirs, f[2:])
		}
	}
	return dirs
}

// Defines extracts NAME=VALUE pairs from -D flags. A bare -DNAME maps to
// "1", matching compiler behavior.
func Defines(flags []string) map[string]string {
	defs := make(map[string]string)
	for _, f := range flags {
		if !strings.HasPrefix(f, "-D") || len(f) == 2 {
			continue
		}
		body := f[2:]
		if name, value, ok := strings.Cut(body, "="); ok {
			defs[name] = value
		} else {
			defs[body] = "1"
		}
	}
	return defs
}
