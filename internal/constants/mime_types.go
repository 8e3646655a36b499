package constants

// AudioMimeTypes maps audio file extensions to their MIME types.
var AudioMimeTypes = map[string]string{
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".m4a": "audio/mp4",
	".ogg": "audio/ogg",
}

// DefaultAudioMimeType is the fallback for unrecognized audio
// extensions. WhatsApp voice notes download without a usable extension.
const DefaultAudioMimeType = "audio/oga"

// DocumentMimeTypes maps image and document file extensions to their
// MIME types.
var DocumentMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
}

// DefaultDocumentMimeType is the fallback for unrecognized image and
// document extensions.
const DefaultDocumentMimeType = "image/jpeg"

// PDFMimeType is the only non-image MIME type accepted on the
// document extraction path.
const PDFMimeType = "application/pdf"
