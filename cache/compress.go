package cache

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// Compression policy: content shorter than compressMinSize is never
// compressed, and compression is kept only when it saves at least 10%.
const (
	compressMinSize = 100
	compressRatio   = 0.9
)

// maybeCompress applies the compression policy. It returns the payload
// to store and whether it is compressed. Compressed payloads are
// base64-encoded gzip; the flag travels alongside the payload so no
// magic-byte sniffing is ever needed on the way out.
func maybeCompress(value string) (payload string, compressed bool) {
	if len(value) < compressMinSize {
		return value, false
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(value)); err != nil {
		return value, false
	}
	if err := zw.Close(); err != nil {
		return value, false
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	if float64(len(encoded)) >= float64(len(value))*compressRatio {
		return value, false
	}
	return encoded, true
}

// envelope is the explicit tagged wrapper used when a value travels over
// a string-only channel (the Redis tier). The flag is part of the data,
// so raw content that happens to look like gzip is never misread.
type envelope struct {
	Compressed bool   `json:"c"`
	Payload    string `json:"p"`
}

// encodeEnvelope wraps a value for storage in a string-only tier,
// compressing it when the policy pays off.
func encodeEnvelope(value string) string {
	payload, compressed := maybeCompress(value)
	data, err := json.Marshal(envelope{Compressed: compressed, Payload: payload})
	if err != nil {
		return value
	}
	return string(data)
}

// decodeEnvelope reverses encodeEnvelope.
func decodeEnvelope(s string) (string, error) {
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return "", fmt.Errorf("decoding cache envelope: %w", err)
	}
	if !env.Compressed {
		return env.Payload, nil
	}
	return decompress(env.Payload)
}

// decompress reverses maybeCompress for payloads flagged as compressed.
func decompress(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decoding compressed payload: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("opening gzip payload: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("reading gzip payload: %w", err)
	}
	return string(out), nil
}
