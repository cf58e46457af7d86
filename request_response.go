package nftbridge

// NormalizedRequest describes a single outbound HTTP call. It is immutable
// once handed to the executor: retries re-send the same descriptor.
type NormalizedRequest struct {
	Method   string
	Endpoint string // absolute URL, built by the tool layer via adapter helpers
	Headers  map[string]string
	Body     []byte
}

// NormalizedResponse is the raw outcome of one provider exchange. Data is an
// opaque JSON payload; the executor only verifies that it parses, field
// interpretation belongs to the tool layer.
type NormalizedResponse struct {
	StatusCode int
	Headers    map[string]string
	Data       []byte
}
