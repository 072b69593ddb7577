package cmd

import (
	"fmt"
	"runtime"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConfigFileError is returned when config.yaml cannot be read.
func ConfigFileError(path string, err error) error {
	msg := `Cannot read configuration file <em>%s</em>

<em>How to fix:</em>
  Fix YAML syntax or remove the file, a default one is created on
  the next run`

	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read config %s: %w", fn.Name(), path, err),
	}
}
