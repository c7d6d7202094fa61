package livefeed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// extractResult pulls the entity escaped JSON out of the <method>Result element.
// The XML decoder takes care of unescaping the entities.
func extractResult(envelope []byte, method string) ([]byte, error) {
	resultElement := method + "Result"

	d := xml.NewDecoder(bytes.NewReader(envelope))
	d.CharsetReader = charset.NewReaderLabel

	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no %s element", ErrMalformedEnvelope, resultElement)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedEnvelope, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != resultElement {
			continue
		}

		var result string
		if err := d.DecodeElement(&result, &start); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedEnvelope, err)
		}

		result = strings.TrimSpace(result)
		if result == "" {
			return nil, fmt.Errorf("%w: empty %s", ErrMalformedPayload, resultElement)
		}

		return []byte(result), nil
	}
}
