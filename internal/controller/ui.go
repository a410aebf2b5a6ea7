// Package controller provides output adapters for displaying mutation
// testing progress and results.
package controller

import (
	"os"

	"github.com/spf13/cobra"

	"gnaw.dev/pkg/gnaw/internal/domain"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// UI is the presentation surface of a run. It observes engine progress and
// renders the final artifacts. Implementations can use plain text or an
// interactive terminal display.
type UI interface {
	domain.Observer

	DisplayReport(report *m.MutationReport)
	DisplayEstimation(estimation *domain.Estimation)
	Close()
}

// NewUI picks the interactive display when the output is a terminal and the
// caller allows it, plain text otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive && IsTTY(cmd.OutOrStdout()) {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is attached to a character device.
func IsTTY(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
