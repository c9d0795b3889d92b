package req

// A ParserOptFn configures a *Parser.
type ParserOptFn func(*Parser)

// WithMaxBodyBytes sets the largest request body DecodeBody buffers.
// Non-positive values are ignored.
func WithMaxBodyBytes(n int64) ParserOptFn {
	return func(p *Parser) {
		if n > 0 {
			p.maxBodyBytes = n
		}
	}
}

// WithStrictBody rejects JSON documents carrying keys that match no field of the target struct.
func WithStrictBody() ParserOptFn {
	return func(p *Parser) {
		p.strictBody = true
	}
}

// WithStrictQuery rejects query params whose keys match no field of the target struct.
func WithStrictQuery() ParserOptFn {
	return func(p *Parser) {
		p.queryParamDecoder.IgnoreUnknownKeys(false)
	}
}
