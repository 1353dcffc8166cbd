package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// ErrUnknownCodec is returned by CodecByName for names it does not recognise.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec turns the whole item list into a single blob and back.
//
// There is no version field and no framing beyond what the encoding itself provides:
// a blob written by one codec does not decode with another, and callers treat that
// like missing data.
type Codec interface {
	Name() string
	Marshal(items []string) ([]byte, error)
	Unmarshal(b []byte) ([]string, error)
}

// cborEnc uses Core Deterministic Encoding, so the same list always produces identical bytes.
var cborEnc cbor.EncMode

var cborDec cbor.DecMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("store: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		// A list blob never needs more nesting than an array of strings.
		MaxNestedLevels: 4,
		// Whatever Marshal wrote must decode: the list length is unbounded and
		// items may carry bytes that are not valid UTF-8.
		MaxArrayElements: math.MaxInt32,
		UTF8:             cbor.UTF8DecodeInvalid,
	}.DecMode()
	if err != nil {
		panic("store: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBORCodec stores the list as a CBOR array of text strings. It is the default.
type CBORCodec struct{}

func (CBORCodec) Name() string { return "cbor" }

func (CBORCodec) Marshal(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return cborEnc.Marshal(items)
}

func (CBORCodec) Unmarshal(b []byte) ([]string, error) {
	var out []string
	if err := cborDec.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// JSONCodec stores the list as a JSON array of strings.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

func (JSONCodec) Unmarshal(b []byte) ([]string, error) {
	var out []string
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("json: trailing data after item list")
	}
	if out == nil {
		// "null" is valid JSON but never something we write.
		return nil, errors.New("json: item list is null")
	}
	return out, nil
}

// Compressed wraps another codec with zstd framing.
type Compressed struct {
	Inner Codec
}

func (c Compressed) Name() string { return c.Inner.Name() + "+zstd" }

func (c Compressed) Marshal(items []string) ([]byte, error) {
	raw, err := c.Inner.Marshal(items)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Compressed) Unmarshal(b []byte) ([]string, error) {
	zr, err := zstd.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return c.Inner.Unmarshal(raw)
}

// CodecByName resolves a configured codec name. An empty name selects cbor.
func CodecByName(name string, compress bool) (Codec, error) {
	var c Codec
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cbor":
		c = CBORCodec{}
	case "json":
		c = JSONCodec{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, name)
	}
	if compress {
		c = Compressed{Inner: c}
	}
	return c, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
