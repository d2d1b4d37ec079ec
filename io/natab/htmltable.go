package natab

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bebop-bio/isocor/isotope"
)

// LoadURL fetches a published natural-abundance table (e.g. a CIAAW
// isotopic-composition page) and scrapes it with ParseHTML. Grounded on the
// teacher's genbank_clone.go fetch-then-goquery-parse pattern.
func LoadURL(url string) (*isotope.Table, error) {
	res, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("io/natab: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("io/natab: status code error: %d %s", res.StatusCode, res.Status)
	}
	return ParseHTML(res.Body)
}

// ParseHTML scrapes an isotope.Table out of the first HTML <table> element
// in r. Each data row is expected to carry three cells: an element symbol
// (blank when it repeats the row above, for a rowspan-style layout), an
// isotope name, and a relative intensity. Rows are read top to bottom, so
// the first isotope listed for an element is treated as its lightest.
func ParseHTML(r io.Reader) (*isotope.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("io/natab: %w", err)
	}

	byElement := make(map[string][]isotope.Isotope)
	var order []string
	var currentElement string
	var rowErr error

	doc.Find("table").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if rowErr != nil {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return // header row or malformed row, skip
		}
		element := strings.TrimSpace(cells.Eq(0).Text())
		isotopeName := strings.TrimSpace(cells.Eq(1).Text())
		intensityText := strings.TrimSpace(cells.Eq(2).Text())
		if isotopeName == "" {
			return
		}
		if element != "" {
			currentElement = element
		}
		if currentElement == "" {
			rowErr = fmt.Errorf("io/natab: row %d: isotope %q has no element", i, isotopeName)
			return
		}
		intensity, err := strconv.ParseFloat(intensityText, 64)
		if err != nil {
			rowErr = fmt.Errorf("io/natab: row %d: malformed intensity %q: %w", i, intensityText, err)
			return
		}
		_, mass, err := splitIsotopeName(isotopeName)
		if err != nil {
			rowErr = fmt.Errorf("io/natab: row %d: %w", i, err)
			return
		}
		if _, seen := byElement[currentElement]; !seen {
			order = append(order, currentElement)
		}
		byElement[currentElement] = append(byElement[currentElement], isotope.Isotope{
			Name:              isotopeName,
			Element:           currentElement,
			MassNumber:        mass,
			RelativeIntensity: intensity,
		})
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("io/natab: no isotope rows found in table")
	}
	return isotope.New(byElement)
}
