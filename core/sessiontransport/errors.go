package sessiontransport

import "errors"

// ErrExpiredSession is returned when writing a cookie for an expired session.
var ErrExpiredSession = errors.New("sessiontransport: session is expired")
