package cli

import "errors"

// Sentinel error kinds for this package.
var (
	ErrReadRecord    = errors.New("read record file")
	ErrWriteArtifact = errors.New("write artifact")
	ErrRemote        = errors.New("remote request failed")
)
