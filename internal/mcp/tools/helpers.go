package tools

import (
	"fmt"

	"github.com/usestring/json2struct/pkg/contenttype"
	"github.com/usestring/json2struct/pkg/sample"
)

// sampleSource identifies a sample document and the part of it to use.
// Tool inputs carry these as top-level fields.
type sampleSource struct {
	Sample      string
	Format      string
	ContentType string
	Select      string
}

// format resolves the sample format from the explicit format or the content type.
func (in sampleSource) format() (sample.Format, error) {
	if in.Format != "" {
		return sample.ParseFormat(in.Format)
	}
	return contenttype.FormatOf(in.ContentType), nil
}

// loadSample decodes and selects the sample described by in.
func (d *Deps) loadSample(in sampleSource) (sample.Value, error) {
	if in.Sample == "" {
		return sample.Value{}, ErrInvalidInput("sample is required")
	}
	if d.Config != nil && d.Config.MaxInputBytes > 0 && len(in.Sample) > d.Config.MaxInputBytes {
		return sample.Value{}, ErrInvalidInput(fmt.Sprintf("sample is %d bytes, limit is %d", len(in.Sample), d.Config.MaxInputBytes))
	}

	format, err := in.format()
	if err != nil {
		return sample.Value{}, ErrInvalidInput(err.Error())
	}

	data := []byte(in.Sample)
	if contenttype.IsBinary(in.ContentType, data) {
		return sample.Value{}, ErrInvalidInput("sample is not text")
	}

	v, err := sample.Decode(data, format)
	if err != nil {
		return sample.Value{}, &CodedError{Code: ErrCodeInvalidInput, Message: "decoding sample", Cause: err}
	}

	if in.Select != "" {
		v, err = sample.Select(v, in.Select)
		if err != nil {
			return sample.Value{}, &CodedError{Code: ErrCodeInvalidInput, Message: "selecting from sample", Cause: err}
		}
	}
	return v, nil
}
