package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portalPage = `<html><body>
<table id="offered">
<thead><tr><th>Section</th><th>Course</th><th>Status</th><th>Capacity</th><th>Enrolled</th><th>Times</th></tr></thead>
<tbody>
<tr>
  <td>ALG-1</td>
  <td> Algorithms </td>
  <td>Open</td>
  <td>40</td>
  <td>25</td>
  <td>
    <table><tbody>
      <tr><td>Theory</td><td>Monday</td><td>9:00 AM</td><td>10:30 AM</td><td>R-101</td></tr>
      <tr><td>Lab</td><td>Wednesday</td><td>2:00 PM</td><td>4:00 PM</td><td>L-204</td></tr>
    </tbody></table>
  </td>
</tr>
<tr>
  <td>PHY-1</td>
  <td>Physics</td>
  <td>Closed</td>
  <td>35</td>
  <td>35</td>
  <td>
    <table><tbody>
      <tr><td>Theory</td><td>Tuesday</td><td>11:00 AM</td><td>12:30 PM</td><td>R-202</td></tr>
    </tbody></table>
  </td>
</tr>
</tbody>
</table>
</body></html>`

func TestParsePortal(t *testing.T) {
	result, err := ParsePortal(strings.NewReader(portalPage))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Sections)
	assert.Len(t, result.Courses, 2)

	require.Len(t, result.Courses["Algorithms"], 1)
	alg := result.Courses["Algorithms"][0]
	assert.Equal(t, "ALG-1", alg.SectionID)
	assert.Equal(t, "Open", alg.Status)
	require.NotNil(t, alg.Capacity)
	assert.Equal(t, 40, *alg.Capacity)
	require.Len(t, alg.Slots, 2)
	assert.Equal(t, "Monday", alg.Slots[0].Day)
	assert.Equal(t, "9:00 AM", alg.Slots[0].TimeStart)
	assert.Equal(t, "L-204", alg.Slots[1].Room)

	phy := result.Courses["Physics"][0]
	require.NotNil(t, phy.EnrolledCount)
	assert.Equal(t, 35, *phy.EnrolledCount)
}

func TestParsePortalSkipsRowsWithoutIdentity(t *testing.T) {
	page := `<table><tbody>
<tr><td></td><td>Ghost</td><td>Open</td><td>10</td><td>1</td><td><table><tbody><tr><td>Theory</td><td>Monday</td><td>9:00 AM</td><td>10:00 AM</td><td>R-1</td></tr></tbody></table></td></tr>
<tr><td>ETH-1</td><td>Ethics</td><td>Open</td><td>30</td><td>12</td><td><table><tbody><tr><td>Theory</td><td>Thursday</td><td>9:00 AM</td><td>10:30 AM</td><td>R-303</td></tr></tbody></table></td></tr>
</tbody></table>`

	result, err := ParsePortal(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sections)
	assert.Equal(t, 1, result.Skipped)
	assert.Contains(t, result.Courses, "Ethics")
}

func TestParsePortalNoTable(t *testing.T) {
	_, err := ParsePortal(strings.NewReader("<html><body><p>maintenance</p></body></html>"))
	require.Error(t, err)
}
