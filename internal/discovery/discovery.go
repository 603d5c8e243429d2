// SPDX-License-Identifier: MPL-2.0

// Package discovery handles finding and loading workscript files from the
// current directory, the user scripts directory, and configured search paths.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/workscript/workscript/internal/config"
	"github.com/workscript/workscript/pkg/scriptfile"
)

// Source represents where a workscript file was found.
type Source int

const (
	// SourceCurrentDir indicates the file was found in the current directory
	SourceCurrentDir Source = iota
	// SourceUserDir indicates the file was found in ~/.workscript/scripts
	SourceUserDir
	// SourceConfigPath indicates the file was found in a configured search path
	SourceConfigPath
)

// String returns a human-readable source name
func (s Source) String() string {
	switch s {
	case SourceCurrentDir:
		return "current directory"
	case SourceUserDir:
		return "user scripts (~/.workscript/scripts)"
	case SourceConfigPath:
		return "configured search path"
	default:
		return "unknown"
	}
}

// DiscoveredFile represents a found workscript file with its source
type DiscoveredFile struct {
	// Path is the absolute path to the file
	Path string
	// Source indicates where the file was found
	Source Source
	// File is the parsed content (may be nil if not yet parsed)
	File *scriptfile.ScriptFile
	// Error contains any error that occurred during parsing
	Error error
}

// Discovery finds workscript files
type Discovery struct {
	cfg *config.Config
}

// New creates a new Discovery instance
func New(cfg *config.Config) *Discovery {
	return &Discovery{cfg: cfg}
}

// DiscoverAll finds all workscript files from all sources in order of
// precedence: current directory, then the user scripts directory, then
// configured search paths.
func (d *Discovery) DiscoverAll() ([]*DiscoveredFile, error) {
	var files []*DiscoveredFile

	files = append(files, d.discoverInDir(".", SourceCurrentDir)...)

	userDir, err := config.ScriptsDir()
	if err == nil {
		files = append(files, d.discoverInDirRecursive(userDir, SourceUserDir)...)
	}

	for _, searchPath := range d.cfg.SearchPaths {
		files = append(files, d.discoverInDirRecursive(searchPath, SourceConfigPath)...)
	}

	return files, nil
}

// discoverInDir looks for workscript files directly in a directory.
// A workscript.cue comes first, followed by any *.ws.hcl files.
func (d *Discovery) discoverInDir(dir string, source Source) []*DiscoveredFile {
	var files []*DiscoveredFile

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return files
	}

	path := filepath.Join(absDir, scriptfile.CUEFileName)
	if _, err := os.Stat(path); err == nil {
		files = append(files, &DiscoveredFile{Path: path, Source: source})
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return files
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), scriptfile.HCLFileSuffix) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		files = append(files, &DiscoveredFile{
			Path:   filepath.Join(absDir, name),
			Source: source,
		})
	}

	return files
}

// discoverInDirRecursive finds all workscript files in a directory tree
func (d *Discovery) discoverInDirRecursive(dir string, source Source) []*DiscoveredFile {
	var files []*DiscoveredFile

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return files
	}

	if _, err := os.Stat(absDir); os.IsNotExist(err) {
		return files
	}

	err = filepath.WalkDir(absDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if name == scriptfile.CUEFileName || strings.HasSuffix(name, scriptfile.HCLFileSuffix) {
			files = append(files, &DiscoveredFile{Path: path, Source: source})
		}

		return nil
	})

	if err != nil {
		return files
	}

	return files
}

// LoadAll parses all discovered files. Parse failures are recorded on the
// DiscoveredFile rather than aborting discovery.
func (d *Discovery) LoadAll() ([]*DiscoveredFile, error) {
	files, err := d.DiscoverAll()
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		var sf *scriptfile.ScriptFile
		var parseErr error

		if strings.HasSuffix(file.Path, scriptfile.HCLFileSuffix) {
			sf, parseErr = scriptfile.ParseHCL(file.Path)
		} else {
			sf, parseErr = scriptfile.Parse(file.Path)
		}

		if parseErr != nil {
			file.Error = parseErr
		} else {
			file.File = sf
		}
	}

	return files, nil
}

// ScriptInfo contains information about a discovered script
type ScriptInfo struct {
	// Name is the script name
	Name string
	// Description is the script description
	Description string
	// Source is where the script was found
	Source Source
	// FilePath is the path to the workscript file declaring this script
	FilePath string
	// Script is a reference to the declaration
	Script *scriptfile.Script
}

// DiscoverScripts finds all available scripts from all workscript files.
// When two files declare the same script name, the higher-precedence
// source wins.
func (d *Discovery) DiscoverScripts() ([]*ScriptInfo, error) {
	files, err := d.LoadAll()
	if err != nil {
		return nil, err
	}

	var scripts []*ScriptInfo
	seen := make(map[string]bool)

	for _, file := range files {
		if file.Error != nil || file.File == nil {
			continue
		}

		for _, name := range file.File.Names() {
			if seen[name] {
				continue
			}
			seen[name] = true

			s := file.File.Scripts[name]
			scripts = append(scripts, &ScriptInfo{
				Name:        name,
				Description: s.Description,
				Source:      file.Source,
				FilePath:    file.Path,
				Script:      s,
			})
		}
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name < scripts[j].Name
	})

	return scripts, nil
}

// GetScript finds a specific script by name
func (d *Discovery) GetScript(name string) (*ScriptInfo, error) {
	scripts, err := d.DiscoverScripts()
	if err != nil {
		return nil, err
	}

	for _, s := range scripts {
		if s.Name == name {
			return s, nil
		}
	}

	return nil, fmt.Errorf("script '%s' not found", name)
}

// GetScriptsWithPrefix returns scripts whose name starts with the given prefix
func (d *Discovery) GetScriptsWithPrefix(prefix string) ([]*ScriptInfo, error) {
	scripts, err := d.DiscoverScripts()
	if err != nil {
		return nil, err
	}

	var matching []*ScriptInfo
	for _, s := range scripts {
		if len(prefix) == 0 || strings.HasPrefix(s.Name, prefix) {
			matching = append(matching, s)
		}
	}

	return matching, nil
}
