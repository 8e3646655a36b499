package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

// verifySignature reads the request body and, when a secret is
// configured, checks the WAHA HMAC headers against it. It returns the
// body so the handler does not read it twice.
func verifySignature(r *http.Request, secretKey string) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	if secretKey == "" {
		return body, nil
	}

	signatureHeader := r.Header.Get("X-Webhook-Hmac")
	if signatureHeader == "" {
		return nil, fmt.Errorf("missing signature header: X-Webhook-Hmac")
	}
	if r.Header.Get("X-Webhook-Timestamp") == "" {
		return nil, fmt.Errorf("missing X-Webhook-Timestamp header")
	}

	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computed), []byte(signatureHeader)) {
		return nil, fmt.Errorf("signature mismatch")
	}

	return body, nil
}
