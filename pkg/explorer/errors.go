package explorer

import "errors"

// ErrCorruptedState reports that normalization left the branch with no
// valid columns; the explorer closes itself instead of rendering an
// inconsistent state.
var ErrCorruptedState = errors.New("explorer: branch has no valid columns")

// ErrClosed reports an operation on a closed explorer.
var ErrClosed = errors.New("explorer: not open")
