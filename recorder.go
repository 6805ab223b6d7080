// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import (
	"fmt"
	"io"
	"os"
)

// Recorder records the progress of an iterative solve.
type Recorder interface {
	// Init is called once before the first iteration.
	Init() error
	// Record is called at the end of every iteration with the current
	// statistics.
	Record(Stats) error
}

const printerHeading = "Iter\tMatVec\tResidualNormSq\tRuntime"

// Printer writes the progress of a solve as tab-separated lines.
type Printer struct {
	// Writer receives the output. If nil, os.Stdout is used.
	Writer io.Writer
	// Every sets the printing interval in iterations. Zero means every
	// iteration.
	Every int
}

// NewPrinter returns a Printer writing every iteration to os.Stdout.
func NewPrinter() *Printer {
	return &Printer{Writer: os.Stdout, Every: 1}
}

// Init implements the Recorder interface. It writes the heading.
func (p *Printer) Init() error {
	_, err := fmt.Fprintln(p.writer(), printerHeading)
	return err
}

// Record implements the Recorder interface.
func (p *Printer) Record(s Stats) error {
	if p.Every > 1 && s.Iterations%p.Every != 0 {
		return nil
	}
	_, err := fmt.Fprintf(p.writer(), "%d\t%d\t%.6e\t%v\n", s.Iterations, s.MatVec, s.ResidualNormSq, s.Runtime)
	return err
}

func (p *Printer) writer() io.Writer {
	if p.Writer == nil {
		return os.Stdout
	}
	return p.Writer
}
