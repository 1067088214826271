// Command blocktrie finds byte-identical duplicate files under one or
// more scan roots using an incremental block-hash trie.
package main

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/griha/blocktrie/pkg/blocktrie"
)

func main() {
	opts, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "blocktrie: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try 'blocktrie --help' for more information.")
		os.Exit(2)
	}

	if opts.help {
		showHelp()
		return
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "blocktrie: %v\n", err)
		os.Exit(1)
	}
}

// cliOptions holds flags exactly as given; nil pointer fields mean "not
// set on the command line", so run can tell a real override from an
// absent one when layering over config-file defaults.
type cliOptions struct {
	help         bool
	configPath   string
	blockSize    *int
	minSize      *int64
	hash         *string
	recursive    bool
	excludePaths []string
	patterns     []string
	json         bool
	verbose      int
	debugFlags   string
	scanPaths    []string
}

func parseArguments(args []string) (*cliOptions, error) {
	opts := &cliOptions{}

	next := func(i int, flag string) (string, int, error) {
		if i+1 >= len(args) {
			return "", i, fmt.Errorf("%s requires an argument", flag)
		}
		return args[i+1], i + 1, nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h", "help":
			opts.help = true
			return opts, nil
		case "--exclude-path", "-E":
			v, j, err := next(i, arg)
			if err != nil {
				return nil, err
			}
			opts.excludePaths = append(opts.excludePaths, blocktrie.SplitList(v)...)
			i = j
		case "--patterns", "-P":
			v, j, err := next(i, arg)
			if err != nil {
				return nil, err
			}
			opts.patterns = append(opts.patterns, blocktrie.SplitList(v)...)
			i = j
		case "--block-size", "-B":
			v, j, err := next(i, arg)
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("--block-size: %v", err)
			}
			opts.blockSize = &n
			i = j
		case "--min-size", "-S":
			v, j, err := next(i, arg)
			if err != nil {
				return nil, err
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("--min-size: %v", err)
			}
			opts.minSize = &n
			i = j
		case "--hash", "-H":
			v, j, err := next(i, arg)
			if err != nil {
				return nil, err
			}
			opts.hash = &v
			i = j
		case "--config":
			v, j, err := next(i, arg)
			if err != nil {
				return nil, err
			}
			opts.configPath = v
			i = j
		case "--debug":
			v, j, err := next(i, arg)
			if err != nil {
				return nil, err
			}
			opts.debugFlags = v
			i = j
		case "--recursive", "-r":
			opts.recursive = true
		case "--json", "-j":
			opts.json = true
		case "--verbose", "-v":
			opts.verbose++
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return nil, fmt.Errorf("unrecognized option %q", arg)
			}
			opts.scanPaths = append(opts.scanPaths, arg)
		}
	}
	return opts, nil
}

func showHelp() {
	fmt.Printf("blocktrie - find byte-identical duplicate files\n\n")
	fmt.Printf("Usage: blocktrie [options] [path...]\n\n")
	fmt.Printf("If no path is given, the current directory is scanned.\n\n")
	fmt.Printf("OPTIONS:\n")
	fmt.Printf("  -r, --recursive            Descend into subdirectories\n")
	fmt.Printf("  -E, --exclude-path PATH    Exclude PATH (relative to its scan root); repeatable\n")
	fmt.Printf("  -P, --patterns LIST        Only consider filenames matching one of LIST\n")
	fmt.Printf("                             (comma/semicolon/colon separated); repeatable\n")
	fmt.Printf("  -B, --block-size N         Block size in bytes (default %d)\n", blocktrie.DefaultBlockSize)
	fmt.Printf("  -S, --min-size N           Minimum file size in bytes (default %d)\n", blocktrie.DefaultFileMinSize)
	fmt.Printf("  -H, --hash ALGO            md5 or sha256 (default %s)\n", blocktrie.DefaultAlgo)
	fmt.Printf("  -j, --json                 Emit machine-readable JSON instead of text\n")
	fmt.Printf("  -v, --verbose              Increase diagnostic detail (repeatable)\n")
	fmt.Printf("      --debug FLAGS          Enable named debug flags (name[:value],...)\n")
	fmt.Printf("      --config PATH          Load defaults from an ini config file\n")
	fmt.Printf("  -h, --help                 Show this help\n\n")
	fmt.Printf("EXAMPLES:\n")
	fmt.Printf("  blocktrie -r /data                         # recursive scan of /data\n")
	fmt.Printf("  blocktrie -E .git -P '\\.go$' -j /src         # exclude .git, json output\n")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blocktrie.ini")
}

// run resolves the three-tier precedence (CLI flag > config file >
// built-in default), constructs and runs an Engine, and presents the
// resulting equivalence classes on w.
func run(opts *cliOptions, w io.Writer) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := blocktrie.LoadConfig(configPath)
	if err != nil {
		return err
	}

	scanCfg := cfg.ScanConfig()
	hashCfg := cfg.HashConfig()
	outCfg := cfg.OutputConfig()

	blockSize := scanCfg.BlockSize
	if opts.blockSize != nil {
		blockSize = *opts.blockSize
	}
	minSize := scanCfg.MinSize
	if opts.minSize != nil {
		minSize = *opts.minSize
	}
	hashName := hashCfg.Default
	if opts.hash != nil {
		hashName = *opts.hash
	}
	patterns := scanCfg.Patterns
	if len(opts.patterns) > 0 {
		patterns = opts.patterns
	}
	excludes := scanCfg.Exclude
	if len(opts.excludePaths) > 0 {
		excludes = opts.excludePaths
	}
	asJSON := outCfg.Format == "json" || opts.json

	scanPaths := opts.scanPaths
	if len(scanPaths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		scanPaths = []string{cwd}
	}

	algo, err := blocktrie.ParseAlgo(hashName)
	if err != nil {
		return err
	}
	compiled, err := blocktrie.CompilePatterns(patterns)
	if err != nil {
		return err
	}

	eng, err := blocktrie.NewEngine(blocktrie.InitParams{
		Algo:         algo,
		BlockSize:    blockSize,
		FileMinSize:  minSize,
		PathsScan:    scanPaths,
		PathsExclude: excludes,
		RXPatterns:   compiled,
	})
	if err != nil {
		return err
	}
	eng.SetVerbose(opts.verbose)
	if opts.debugFlags != "" {
		eng.SetDebugFlags(opts.debugFlags)
	}

	if err := eng.Run(opts.recursive); err != nil {
		return err
	}

	groups := collectGroups(eng, algo, blockSize)
	if asJSON {
		return printJSON(w, groups)
	}
	printText(w, groups)
	return nil
}

// duplicateGroup is the presentation shape for one equivalence class
// with two or more members. Hash is the digest of block 0 of a
// representative member, a human-debuggable identifier only — the core
// never materializes a whole-file hash, and this doesn't either.
type duplicateGroup struct {
	Size  int64    `json:"size"`
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
}

func collectGroups(eng *blocktrie.Engine, algo blocktrie.Algo, blockSize int) []duplicateGroup {
	var groups []duplicateGroup
	for it := eng.Begin(); !it.Equal(eng.End()); it.Next() {
		var files []string
		it.Accessor().Visit(func(path string) {
			files = append(files, path)
		})
		if len(files) < 2 {
			continue
		}
		var size int64
		if info, err := os.Stat(files[0]); err == nil {
			size = info.Size()
		}
		digest, err := blockZeroDigest(files[0], algo, blockSize)
		if err != nil {
			digest = ""
		}
		groups = append(groups, duplicateGroup{Size: size, Hash: digest, Files: files})
	}
	return groups
}

// blockZeroDigest hashes only the first blockSize bytes of path, the
// same unit the core itself compares files by, for display purposes.
func blockZeroDigest(path string, algo blocktrie.Algo, blockSize int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, blockSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	var h hash.Hash
	if algo == blocktrie.SHA256 {
		h = sha256.New()
	} else {
		h = md5.New()
	}
	h.Write(buf[:n])
	return hex.EncodeToString(h.Sum(nil)), nil
}

func printText(w io.Writer, groups []duplicateGroup) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, p := range g.Files {
			fmt.Fprintln(w, p)
		}
	}
}

func printJSON(w io.Writer, groups []duplicateGroup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(groups)
}

