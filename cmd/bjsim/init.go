package main

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/lox/bjsim/internal/config"
	"github.com/lox/bjsim/internal/fileutil"
	"github.com/lox/bjsim/internal/strategy"
)

const (
	scenarioFile = "bjsim.hcl"
	tablesFile   = "tables.toml"
)

type InitCmd struct {
	Dir   string `arg:"" optional:"" default:"." type:"existingdir" help:"Directory to write into"`
	Force bool   `help:"Overwrite existing files"`
}

func (c *InitCmd) Run() error {
	written, err := writeStarterFiles(c.Dir, c.Force)
	for _, path := range written {
		fmt.Println("wrote", path)
	}
	return err
}

// writeStarterFiles writes a scenario pointing at an editable copy of the
// built-in tables. It returns the files written before any failure.
func writeStarterFiles(dir string, force bool) ([]string, error) {
	scenario := bytes.Replace(config.Template(),
		[]byte(`# tables = "`+tablesFile+`"`), []byte(`tables = "`+tablesFile+`"`), 1)

	files := []struct {
		name string
		data []byte
	}{
		{tablesFile, strategy.DefaultDocument()},
		{scenarioFile, scenario},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := fileutil.WriteFileAtomic(path, f.data, fileutil.Options{Overwrite: force}); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
