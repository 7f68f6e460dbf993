package adapter

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError normalises a non-2xx upstream response to one of the package
// sentinels. The response body is intentionally not embedded in the returned
// error: upstream bodies may carry stack traces or internal detail and must
// only ever reach logs.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: http %d", ErrNoRouteFound, code)
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d", ErrUpstreamRejected, code)
	default:
		return fmt.Errorf("%w: http %d", ErrUpstreamUnavailable, code)
	}
}
