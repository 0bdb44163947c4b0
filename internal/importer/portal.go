package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/classkit/scheduler-api/internal/models"
	appErrors "github.com/classkit/scheduler-api/pkg/errors"
)

// Portal offered-courses pages render one outer table row per section,
// with the weekly meetings nested in an inner table inside the sixth
// cell. ParsePortal walks that structure into course candidate sets.
func ParsePortal(r io.Reader) (*RosterResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedImport.Code, appErrors.ErrMalformedImport.Status, "portal html could not be parsed")
	}

	result := &RosterResult{Courses: make(models.CourseCandidateSet)}
	for _, row := range tableRows(doc) {
		cells := directCells(row)
		if len(cells) < 6 {
			continue
		}

		sectionID := nodeText(cells[0])
		title := nodeText(cells[1])
		if sectionID == "" || title == "" {
			result.Skipped++
			continue
		}

		section := models.Section{
			SectionID:     sectionID,
			CourseTitle:   title,
			Status:        nodeText(cells[2]),
			Capacity:      parseCount(nodeText(cells[3])),
			EnrolledCount: parseCount(nodeText(cells[4])),
		}
		for _, slotRow := range tableRows(cells[5]) {
			slotCells := directCells(slotRow)
			if len(slotCells) < 5 {
				continue
			}
			slot := models.TimeSlot{
				Type:      nodeText(slotCells[0]),
				Day:       nodeText(slotCells[1]),
				TimeStart: nodeText(slotCells[2]),
				TimeEnd:   nodeText(slotCells[3]),
				Room:      nodeText(slotCells[4]),
			}
			if !models.IsWeekday(slot.Day) || slot.TimeStart == "" || slot.TimeEnd == "" {
				result.Skipped++
				continue
			}
			section.Slots = append(section.Slots, slot)
		}

		result.Courses[title] = append(result.Courses[title], section)
		result.Sections++
	}

	if len(result.Courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrMalformedImport, "portal html produced no sections")
	}
	return result, nil
}

// tableRows returns every <tr> under the first <tbody> (or <table>)
// found beneath n, excluding rows of tables nested deeper inside the
// cells.
func tableRows(n *html.Node) []*html.Node {
	body := findFirst(n, "tbody")
	if body == nil {
		body = findFirst(n, "table")
	}
	if body == nil {
		return nil
	}

	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && child.Data == "tr" {
				rows = append(rows, child)
				continue
			}
			if child.Type == html.ElementNode && child.Data == "table" {
				continue
			}
			walk(child)
		}
	}
	walk(body)
	return rows
}

// directCells returns the <td> and <th> children of a row, without
// descending into nested tables.
func directCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for child := row.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && (child.Data == "td" || child.Data == "th") {
			cells = append(cells, child)
		}
	}
	return cells
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// nodeText flattens the text content beneath a node, skipping nested
// tables so a cell that embeds one reads as its own text only.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			return
		}
		if node.Type == html.ElementNode && node.Data == "table" {
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
