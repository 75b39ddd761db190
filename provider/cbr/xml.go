package cbr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// recordDateLayout is the day-first form the feed quotes dates in
const recordDateLayout = "02.01.2006"

const xmlValCursElement = "ValCurs"

// decodeXML parses the dynamic quotation markup. The feed is served in the
// provider's native windows-1251 encoding and uses a comma as the fractional
// separator. A record with an unparseable date or value is skipped, a
// missing or unparseable nominal defaults to 1
func decodeXML(b []byte) ([]dynRecord, error) {
	var records []dynRecord

	decoder := xml.NewDecoder(bytes.NewReader(b))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch charset {
		case "windows-1251":
			return charmap.Windows1251.NewDecoder().Reader(input), nil
		}

		return nil, fmt.Errorf("charset is not defined")
	}

TokenLoop:
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break TokenLoop
			}

			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return records, fmt.Errorf("%w: %v", errDecodeToken, syntaxErr.Error())
			}

			return records, fmt.Errorf("decode token: %w", err)
		}

		switch tp := token.(type) {
		case xml.StartElement:
			if tp.Name.Local != xmlValCursElement {
				continue TokenLoop
			}

			var currNode XMLNode
			if err := decoder.DecodeElement(&currNode, &tp); err != nil {
				var syntaxErr *xml.SyntaxError
				if errors.As(err, &syntaxErr) {
					return records, fmt.Errorf("%w: %v", errDecodeToken, syntaxErr.Error())
				}

				return records, fmt.Errorf("decode element: %w", err)
			}

			records = make([]dynRecord, 0, len(currNode.Records))
			for _, raw := range currNode.Records {
				rec, ok := parseRecord(raw)
				if !ok {
					continue
				}

				records = append(records, rec)
			}
		}
	}

	return records, nil
}

func parseRecord(raw XMLRecord) (dynRecord, bool) {
	date, err := time.Parse(recordDateLayout, raw.Date)
	if err != nil {
		return dynRecord{}, false
	}

	value, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(raw.Value), ",", ".", -1), 64)
	if err != nil {
		return dynRecord{}, false
	}

	nominal, err := strconv.Atoi(strings.TrimSpace(raw.Nominal))
	if err != nil {
		nominal = 1
	}

	return dynRecord{date: date, value: value, nominal: nominal}, true
}

type XMLRecord struct {
	Date    string `xml:"Date,attr"`
	Nominal string `xml:"Nominal"`
	Value   string `xml:"Value"`
}

type XMLNode struct {
	ID      string      `xml:"ID,attr"`
	Records []XMLRecord `xml:"Record"`
}
