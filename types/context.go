package types

import (
	"github.com/pablor21/enumclass/config"
	"github.com/pablor21/enumclass/logger"
	"github.com/pablor21/enumclass/sink"
)

type ProcessContext struct {
	Config *config.Config
	Logger logger.Logger
	// Sink receives the units. Nil writes to the filesystem under the output root.
	Sink       sink.OutputSink
	ModulePath string // The module path of the project being scanned
	ModuleDir  string
}
