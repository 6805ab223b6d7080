// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

// Error represents matrix and vector handling errors. Values of type Error
// are used as panic values for programming errors and are returned, possibly
// wrapped, for conditions that depend on the data.
type Error struct{ string }

func (err Error) Error() string { return err.string }

var (
	ErrIndexOutOfRange  = Error{"bandcg: index out of range"}
	ErrShape            = Error{"bandcg: dimension mismatch"}
	ErrZeroLength       = Error{"bandcg: zero length in matrix dimension"}
	ErrBandwidth        = Error{"bandcg: bandwidth out of range"}
	ErrAliased          = Error{"bandcg: destination aliases source"}
	ErrNotRepresentable = Error{"bandcg: value not representable in packed form"}
)
