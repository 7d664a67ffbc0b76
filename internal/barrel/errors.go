package barrel

import "github.com/barrelsplit/barrelsplit/internal/logger"

// Failure is the result of one of this package's fallible outcomes: a
// stable MsgID plus message text, without a source location. Every caller
// that surfaces a Failure to the host attaches the location of the
// *importing* statement, never the barrel's own internals — a diagnostic
// always points at the host import it couldn't rewrite, not at the barrel
// file it came from.
type Failure interface {
	error
	MsgID() logger.MsgID
}

type failure struct {
	msgID logger.MsgID
	text  string
}

func (f *failure) Error() string { return f.text }

func (f *failure) MsgID() logger.MsgID { return f.msgID }
