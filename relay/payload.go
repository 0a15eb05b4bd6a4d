package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// MaxPayloadBytes bounds the inbound request body.
const MaxPayloadBytes = 4 << 20

// ErrInvalidPayload is returned when the request body is not a JSON object.
var ErrInvalidPayload = errors.New("invalid payload")

// Payload is the opaque diagnostic request. Its shape is owned by the
// inference service; the relay never looks inside.
type Payload map[string]any

// DecodePayload collects every field sent with r: the decoded body plus the
// query string parameters the body did not set.
//
// JSON numbers are kept as json.Number so they are forwarded with the exact
// text the client sent. Form fields become strings, or string slices when a
// field is repeated.
func DecodePayload(r *http.Request) (Payload, error) {
	payload := Payload{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(nil, r.Body, MaxPayloadBytes)
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(MaxPayloadBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		mergeValues(payload, r.PostForm)
	default:
		if r.Body != nil {
			doc, err := decodeObject(r.Body)
			if err != nil {
				return nil, err
			}
			for key, value := range doc {
				payload[key] = value
			}
		}
	}

	mergeValues(payload, r.URL.Query())
	return payload, nil
}

func decodeObject(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(data) > MaxPayloadBytes {
		return nil, fmt.Errorf("%w: body larger than %d bytes", ErrInvalidPayload, MaxPayloadBytes)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrInvalidPayload)
	}
	return doc, nil
}

// mergeValues adds values for keys not already present in payload.
func mergeValues(payload Payload, values url.Values) {
	for key, vs := range values {
		if _, ok := payload[key]; ok {
			continue
		}
		if len(vs) == 1 {
			payload[key] = vs[0]
		} else {
			payload[key] = append([]string(nil), vs...)
		}
	}
}
