package core

import "errors"

// ErrRetrievalUnavailable is returned when the embedding provider or the
// corpus store fails or times out. Underlying provider errors are never
// propagated raw; callers check with errors.Is and substitute a degraded
// response. An empty result set is not an error.
var ErrRetrievalUnavailable = errors.New("retrieval unavailable")
