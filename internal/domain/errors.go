package domain

import "errors"

// ErrUsageSample reports a failed host resource query. There is no fallback
// value: a greeting is either complete or the call fails outright.
var ErrUsageSample = errors.New("failed to sample host resource usage")
