package http

import (
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"

	"github.com/indigo-web/webpool/http/mime"
	"github.com/indigo-web/webpool/http/status"
)

// DefaultContentType is used unless a handler sets another one explicitly. Generated pages
// declare their encoding in a meta tag, so no charset parameter is sent.
var DefaultContentType = mime.HTML

// Fields are the response values the serializer renders. The Server, Content-Length and
// Connection headers are implicit and therefore aren't represented here.
type Fields struct {
	Code        status.Code
	ContentType string
	Body        []byte
}

type Response struct {
	fields Fields
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and text/html content-type.
func NewResponse() *Response {
	return &Response{
		fields: Fields{
			Code:        status.OK,
			ContentType: DefaultContentType,
		},
	}
}

// Code sets the response code. The reason phrase is derived from it.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// ContentType sets a custom Content-Type header value.
func (r *Response) ContentType(value string) *Response {
	r.fields.ContentType = value
	return r
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// Write implements io.Writer interface. It always returns n=len(b) and err=nil
func (r *Response) Write(b []byte) (n int, err error) {
	r.fields.Body = append(r.fields.Body, b...)
	return len(b), nil
}

// JSON serializes the model into the body and sets the Content-Type to application/json.
// The response is left untouched if serialization fails.
func (r *Response) JSON(model any) (*Response, error) {
	body, err := json.ConfigCompatibleWithStandardLibrary.Marshal(model)
	if err != nil {
		return r, err
	}

	return r.ContentType(mime.JSON).Bytes(body), nil
}

// Reveal returns the response fields.
func (r *Response) Reveal() Fields {
	return r.fields
}
