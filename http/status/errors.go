package status

// HTTPError carries a status code along the message, letting the error to be
// mapped directly onto a response.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest       = NewError(BadRequest, "bad request")
	ErrBadEncoding      = NewError(BadRequest, "bad request encoding")
	ErrBadRequestFormat = NewError(BadRequest, "bad request format")
	ErrBadChunk         = NewError(BadRequest, "malformed chunk-encoded data")

	ErrUnauthorized         = NewError(Unauthorized, "unauthorized")
	ErrForbidden            = NewError(Forbidden, "forbidden")
	ErrNotFound             = NewError(NotFound, "not found")
	ErrMethodNotAllowed     = NewError(MethodNotAllowed, "method not allowed")
	ErrNotAcceptable        = NewError(NotAcceptable, "not acceptable")
	ErrRequestTimeout       = NewError(RequestTimeout, "request timeout")
	ErrConflict             = NewError(Conflict, "conflict")
	ErrGone                 = NewError(Gone, "gone")
	ErrLengthRequired       = NewError(LengthRequired, "length required")
	ErrPreconditionFailed   = NewError(PreconditionFailed, "precondition failed")
	ErrBodyTooLarge         = NewError(RequestEntityTooLarge, "request body is too large")
	ErrURITooLong           = NewError(RequestURITooLong, "request URI too long")
	ErrUnsupportedMediaType = NewError(UnsupportedMediaType, "unsupported media type")
	ErrUnsupportedEncoding  = NewError(UnsupportedMediaType, "encoding is not supported")
	ErrUnsupportedCharset   = NewError(UnsupportedMediaType, "charset is not supported")
	ErrUnprocessableEntity  = NewError(UnprocessableEntity, "unprocessable entity")
	ErrTooManyRequests      = NewError(TooManyRequests, "too many requests")

	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
	ErrNotImplemented          = NewError(NotImplemented, "not implemented")
	ErrBadGateway              = NewError(BadGateway, "bad gateway")
	ErrServiceUnavailable      = NewError(ServiceUnavailable, "service unavailable")
	ErrGatewayTimeout          = NewError(GatewayTimeout, "gateway timeout")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)
