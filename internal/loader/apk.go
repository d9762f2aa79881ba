package loader

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/avast/apkparser"
)

// ExtractManifest decodes the binary AndroidManifest.xml inside an APK
// archive into plain XML text. The decoded text feeds the same parser as
// a file-based manifest.
func ExtractManifest(apkPath string) ([]byte, error) {
	var manifestContent bytes.Buffer

	enc := xml.NewEncoder(&manifestContent)
	enc.Indent("", "    ")

	zipErr, resErr, manErr := apkparser.ParseApk(apkPath, enc)
	if zipErr != nil {
		return nil, fmt.Errorf("opening APK %q: %w", apkPath, zipErr)
	}

	if resErr != nil {
		return nil, fmt.Errorf("parsing resource table of %q: %w", apkPath, resErr)
	}

	if manErr != nil {
		return nil, fmt.Errorf("decoding AndroidManifest.xml in %q: %w", apkPath, manErr)
	}

	return manifestContent.Bytes(), nil
}
