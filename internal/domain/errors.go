// Package domain contains the core mutation testing engine: mutant
// generation, sandboxed execution, verdict classification and scoring.
package domain

import "errors"

// ErrInput marks bad run inputs (missing target, unparseable source, unknown
// operator or function names). The run never starts.
var ErrInput = errors.New("input error")

// ErrInfra marks a failure of the harness itself (sandbox could not be
// materialized, test command could not be spawned, target file changed under
// us). Fatal to the whole batch.
var ErrInfra = errors.New("infrastructure error")
