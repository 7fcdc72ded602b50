// Package fetch locates and retrieves the open-data portal artifacts:
// the year directories of quarterly statements, the quarter archives
// and the operator registry. Retrieval is deliberately plain, with no
// retries and no caching; transient artifacts live in temp dirs
// released on every exit path.
package fetch

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"anscli/internal/errors"
)

var (
	yearPattern   = regexp.MustCompile(`^(20\d{2})/?$`)
	periodPattern = regexp.MustCompile(`(\d)T(\d{4})`)
)

// ExtractYears parses a directory-listing page and returns the years
// advertised as subdirectories, ascending.
func ExtractYears(r io.Reader) ([]int, error) {
	hrefs, err := anchorHrefs(r)
	if err != nil {
		return nil, err
	}

	var years []int
	for _, href := range hrefs {
		m := yearPattern.FindStringSubmatch(strings.TrimSuffix(href, "/") + "/")
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// ExtractArchives parses a year directory listing and returns the zip
// archive names found there.
func ExtractArchives(r io.Reader) ([]string, error) {
	hrefs, err := anchorHrefs(r)
	if err != nil {
		return nil, err
	}

	var archives []string
	for _, href := range hrefs {
		if strings.HasSuffix(strings.ToLower(href), ".zip") {
			archives = append(archives, href)
		}
	}
	return archives, nil
}

// LatestArchives returns the n most recent archives by name, newest
// first. Quarter archives are named NTYYYY.zip, so a descending
// lexicographic sort within one year directory orders them by quarter.
func LatestArchives(names []string, n int) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// ParsePeriod extracts quarter and year from an archive name like
// "1T2025.zip".
func ParsePeriod(name string) (quarter, year int, err error) {
	m := periodPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, errors.NewParsingError(
			fmt.Sprintf("cannot determine quarter/year from archive name %q", name), nil)
	}
	quarter, _ = strconv.Atoi(m[1])
	year, _ = strconv.Atoi(m[2])
	return quarter, year, nil
}

// anchorHrefs walks the parsed HTML and collects every <a href>.
func anchorHrefs(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.NewParsingError("failed to parse directory listing", err)
	}

	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hrefs, nil
}
