package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"modelfetch/internal/core"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// ErrBodyTooLarge 上游 body（壓縮前或解壓後）超過 MaxUpstreamBodyBytes
var ErrBodyTooLarge = fmt.Errorf("response body exceeds %d bytes", core.MaxUpstreamBodyBytes)

// readBody 讀取上游 body 並依 Content-Encoding 解壓，壓縮前後都受 MaxUpstreamBodyBytes 限制。
// Transport 自行處理過的 gzip 會移除 header，這裡只處理剩下的情況。
func readBody(resp *http.Response) (body []byte, encoding string, err error) {
	encoding = strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	raw, err := readLimited(resp.Body)
	if err != nil {
		return raw, encoding, err
	}
	decoded, err := decompress(raw, encoding)
	if errors.Is(err, ErrBodyTooLarge) {
		return decoded, encoding, err
	}
	if err != nil {
		return raw, encoding, fmt.Errorf("decode %s body: %w", encoding, err)
	}
	return decoded, encoding, nil
}

func decompress(raw []byte, encoding string) ([]byte, error) {
	if len(raw) == 0 {
		return raw, nil
	}
	switch encoding {
	case "", "identity":
		return raw, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return readLimited(zr)
	case "deflate":
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return readLimited(zr)
	case "zstd":
		body, err := decodeZstd(raw)
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
			return body, ErrBodyTooLarge
		}
		return body, err
	case "br":
		return readLimited(brotli.NewReader(bytes.NewReader(raw)))
	default:
		return raw, nil
	}
}

func decodeZstd(raw []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(raw),
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(core.MaxUpstreamBodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return readLimited(dec)
}

// readLimited 多讀一個 byte 判斷是否超過上限，超過時回傳截斷內容與 ErrBodyTooLarge
func readLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, core.MaxUpstreamBodyBytes+1))
	if err != nil {
		return b, err
	}
	if int64(len(b)) > core.MaxUpstreamBodyBytes {
		return b[:core.MaxUpstreamBodyBytes], ErrBodyTooLarge
	}
	return b, nil
}
