package transcoder

import (
	"net/url"
	"path"
	"strings"

	"wahabridge/internal/constants"
)

// RewriteMediaURL replaces the scheme and host of mediaURL with those
// of gatewayURL, preserving path, query and fragment. Inbound media
// URLs carry the gateway's internal hostname and must never be
// dereferenced as received.
func RewriteMediaURL(mediaURL, gatewayURL string) (string, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return "", err
	}
	g, err := url.Parse(gatewayURL)
	if err != nil {
		return "", err
	}

	u.Scheme = g.Scheme
	u.Host = g.Host
	return u.String(), nil
}

// mediaExtension extracts the lowercased file extension from a media
// URL, ignoring query and fragment.
func mediaExtension(mediaURL string) string {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return strings.ToLower(path.Ext(mediaURL))
	}
	return strings.ToLower(path.Ext(u.Path))
}

// audioMimeType infers the MIME type of an audio resource from its URL
// extension. WhatsApp voice notes typically resolve to the default.
func audioMimeType(mediaURL string) string {
	if mime, ok := constants.AudioMimeTypes[mediaExtension(mediaURL)]; ok {
		return mime
	}
	return constants.DefaultAudioMimeType
}

// documentMimeType infers the MIME type of an image or document
// resource from its URL extension.
func documentMimeType(mediaURL string) string {
	if mime, ok := constants.DocumentMimeTypes[mediaExtension(mediaURL)]; ok {
		return mime
	}
	return constants.DefaultDocumentMimeType
}

// isAllowedDocumentType reports whether a resolved MIME type may enter
// the document extraction path.
func isAllowedDocumentType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") || mimeType == constants.PDFMimeType
}
