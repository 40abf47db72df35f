package security

import (
	"bytes"
	"io"

	"github.com/go-think/openssl"
	"github.com/klauspost/compress/gzip"
)

// AesCBCEncrypt socket 帧加密，key 同时作为 iv（与客户端约定）。
func AesCBCEncrypt(src, key, iv []byte, padding string) ([]byte, error) {
	return openssl.AesCBCEncrypt(src, key, iv, padding)
}

func AesCBCDecrypt(src, key, iv []byte, padding string) ([]byte, error) {
	data, err := openssl.AesCBCDecrypt(src, key, iv, padding)
	if err != nil {
		return nil, err
	}
	if padding == openssl.ZEROS_PADDING {
		data = bytes.TrimRight(data, "\x00")
	}
	return data, nil
}

// Zip gzip 压缩 socket 帧。
func Zip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnZip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
