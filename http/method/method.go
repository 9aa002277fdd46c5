package method

type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case HEAD:
		return "HEAD"
	case POST:
		return "POST"
	case PUT:
		return "PUT"
	case DELETE:
		return "DELETE"
	case CONNECT:
		return "CONNECT"
	case OPTIONS:
		return "OPTIONS"
	case TRACE:
		return "TRACE"
	case PATCH:
		return "PATCH"
	default:
		return "unknown method"
	}
}

// Bodyless reports whether messages of the method carry no body by convention.
func (m Method) Bodyless() bool {
	switch m {
	case GET, HEAD, TRACE:
		return true
	default:
		return false
	}
}

// Parse converts a textual representation of a method to a Method. Parsing is
// case-sensitive, as the methods are defined to be uppercase-only.
func Parse(str string) Method {
	switch str {
	case "GET":
		return GET
	case "HEAD":
		return HEAD
	case "POST":
		return POST
	case "PUT":
		return PUT
	case "DELETE":
		return DELETE
	case "CONNECT":
		return CONNECT
	case "OPTIONS":
		return OPTIONS
	case "TRACE":
		return TRACE
	case "PATCH":
		return PATCH
	default:
		return Unknown
	}
}
