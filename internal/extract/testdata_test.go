// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.October, 1, 9, 30, 15, 0, time.UTC)

func testOptions() Options {
	return Options{Now: func() time.Time { return testNow }}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseHTML(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// table wraps rows in an infobox and returns the table selection.
func table(t *testing.T, rows string) *goquery.Selection {
	t.Helper()
	doc := mustDoc(t, `<table class="infobox vcard"><tbody>`+rows+`</tbody></table>`)
	return doc.Find("table").First()
}

const tsimikasPage = `<!DOCTYPE html>
<html><body>
<h1 id="firstHeading"><span>Kostas Tsimikas</span></h1>
<table class="infobox vcard"><tbody>
<tr><th colspan="4" class="infobox-above">Kostas Tsimikas</th></tr>
<tr><th colspan="4" class="infobox-header">Personal information</th></tr>
<tr><th class="infobox-label">Full name</th><td class="infobox-data">Konstantinos Tsimikas<sup class="reference">[1]</sup></td></tr>
<tr><th class="infobox-label">Date of birth</th><td class="infobox-data"><span style="display:none">(<span class="bday">1996-05-12</span>)</span> 12 May 1996 <span class="noprint">(age&nbsp;28)</span><sup>[2]</sup></td></tr>
<tr><th class="infobox-label">Place of birth</th><td class="infobox-data"><a href="/wiki/Thessaloniki">Thessaloniki</a>, Greece</td></tr>
<tr><th class="infobox-label">Height</th><td class="infobox-data">1.79 m</td></tr>
<tr><th class="infobox-label">Position</th><td class="infobox-data role"><a href="/wiki/Defender_(association_football)">Defender</a></td></tr>
<tr><th colspan="4" class="infobox-header">Team information</th></tr>
<tr><th class="infobox-label">Current team</th><td class="infobox-data"><a href="/wiki/Liverpool_F.C.">Liverpool</a></td></tr>
<tr><th colspan="4" class="infobox-header">Senior career*</th></tr>
<tr><th class="infobox-label">Years</th><th class="infobox-data">Team</th><th>Apps</th><th>(Gls)</th></tr>
<tr><th class="infobox-label">2015–2020</th><td class="infobox-data"><a href="/wiki/Olympiacos_F.C.">Olympiacos</a></td><td class="infobox-data">21</td><td class="infobox-data">(0)</td></tr>
<tr><th class="infobox-label">2016–2017</th><td class="infobox-data">→ <a href="/wiki/Esbjerg_fB">Esbjerg</a> (loan)</td><td class="infobox-data">16</td><td class="infobox-data">(1)</td></tr>
<tr><th class="infobox-label">2020–</th><td class="infobox-data"><a href="/wiki/Liverpool_F.C.">Liverpool</a></td><td class="infobox-data">120</td><td class="infobox-data">(8)</td></tr>
<tr><th colspan="4" class="infobox-header">International career<sup>‡</sup></th></tr>
<tr><th class="infobox-label">2014–2015</th><td class="infobox-data"><a href="/wiki/Greece_U19">Greece U19</a></td><td class="infobox-data">6</td><td class="infobox-data">(0)</td></tr>
<tr><th class="infobox-label">2018–</th><td class="infobox-data"><a href="/wiki/Greece_national_football_team">Greece</a></td><td class="infobox-data">40</td><td class="infobox-data">(1)</td></tr>
<tr class="infobox-below"><td colspan="4" class="infobox-data">*Club domestic league appearances and goals, correct as of <a href="/wiki/19_May">19 May 2024</a></td></tr>
</tbody></table>
<p>Konstantinos Tsimikas is a Greek professional footballer.</p>
</body></html>`

const prosePage = `<html><body>
<h1>Jan Kowalski (footballer)</h1>
<p>Jan Kowalski (born on 3 April 1999) is a Polish professional footballer who
plays as a central midfielder for local club Znicz Pruszkow. He was born in
Krakow, Poland. He has represented the Poland national team at youth level.</p>
<div class="mw-normal-catlinks">Categories: 1999 births | Polish footballers</div>
</body></html>`
