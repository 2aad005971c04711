package ports

import "github.com/sensorlab/shuntscope/pkg/log"

// Logger is the structured logging abstraction the core logs through.
// Aliased from pkg/log so internal packages need a single import.
type Logger = log.Logger

// Field is a structured logging key-value pair.
type Field = log.Field

// Field constructors re-exported for internal use.
var (
	String   = log.String
	Int      = log.Int
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
