package extract

import (
	"github.com/xy-planning-network/vouch/http/req"
	"github.com/xy-planning-network/vouch/http/resp"
	"github.com/xy-planning-network/vouch/valid"
)

// An ExtractorOptFn configures an *Extractor when constructing a new one.
type ExtractorOptFn func(*Extractor)

// WithParser sets the *req.Parser decoding payloads.
func WithParser(p *req.Parser) ExtractorOptFn {
	return func(ex *Extractor) {
		ex.parser = p
	}
}

// WithResponder sets the *resp.Responder writing rejections and errors.
func WithResponder(d *resp.Responder) ExtractorOptFn {
	return func(ex *Extractor) {
		ex.responder = d
	}
}

// WithValidator sets the *valid.Validator checking decoded payloads.
func WithValidator(v *valid.Validator) ExtractorOptFn {
	return func(ex *Extractor) {
		ex.validator = v
	}
}
