package fetch

import (
	"fmt"
	"regexp"

	"github.com/aqua777/campus-rag-core/model"
)

var (
	driveFileRe = regexp.MustCompile(`drive\.google\.com/file/d/([a-zA-Z0-9_-]+)`)
	openIDRe    = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
	formsRe     = regexp.MustCompile(`docs\.google\.com/forms/d/([a-zA-Z0-9_-]+)`)
)

// resolveShareLink recognizes the share-host patterns named in §4.1 and
// rewrites them to a direct-download URL. It returns
// model.ErrUnknownShareLink for any URL shape it doesn't recognize.
func resolveShareLink(rawURL string) (string, error) {
	if m := driveFileRe.FindStringSubmatch(rawURL); m != nil {
		return directDownloadURL(m[1]), nil
	}
	if m := formsRe.FindStringSubmatch(rawURL); m != nil {
		return directDownloadURL(m[1]), nil
	}
	if m := openIDRe.FindStringSubmatch(rawURL); m != nil {
		return directDownloadURL(m[1]), nil
	}
	return "", fmt.Errorf("share link %q: %w", rawURL, model.ErrUnknownShareLink)
}

func directDownloadURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?export=download&id=%s", fileID)
}

// isShareLink reports whether rawURL matches any recognized share-host
// pattern, without resolving it.
func isShareLink(rawURL string) bool {
	return driveFileRe.MatchString(rawURL) || formsRe.MatchString(rawURL) || openIDRe.MatchString(rawURL)
}

var knownExtensionRe = regexp.MustCompile(`(?i)\.(pdf|docx|doc)(\?|#|$)`)

// hasKnownExtension reports whether rawURL's path ends in a recognized
// document extension (§4.1).
func hasKnownExtension(rawURL string) bool {
	return knownExtensionRe.MatchString(rawURL)
}
