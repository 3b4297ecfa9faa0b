package inbuilt

import (
	"github.com/indigo-web/webpool/http"
	"github.com/indigo-web/webpool/http/mime"
	"github.com/indigo-web/webpool/http/status"
	"github.com/indigo-web/webpool/pages"
)

// OnError renders the error page for the code the error carries.
func (r *Router) OnError(_ *http.Request, err error) *http.Response {
	code := status.CodeOf(err)
	response := http.NewResponse().Code(code)

	body, renderErr := pages.Error(code)
	if renderErr != nil {
		r.logger.Printf("inbuilt: cannot render error page for %d: %s", code, renderErr)

		return response.
			ContentType(mime.WithCharset(mime.Plain)).
			String(status.Text(code))
	}

	return response.Bytes(body)
}
