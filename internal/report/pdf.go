// Package report renders the fixed-layout facility PDF. The document is a
// deterministic function of the input field map: the same map yields
// byte-identical output, and a missing field renders as an empty cell in
// its usual position, never as an omitted row. The block order, the
// 12-entry commodity list and the 6-month x 3-subcolumn stock grid are
// load-bearing; downstream consumers expect exactly this shape.
package report

import (
	"bytes"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Commodities is the fixed list printed in the current-month table and the
// stock-movement grid, in order.
var Commodities = []string{
	"Fortified Rice", "Fine Quality Rice", "Sugar", "P. Oil ½ Ltr.",
	"P. Oil 1 Ltr.", "RG Dall 1Kg Pkts.", "RG Dall", "Jowar",
	"Ragi", "Jaggery Powder", "Ragi Powder", "3 Kg THR Rice Pkts.",
}

// stockMonths is how many trailing months the movement grid covers; each
// month contributes an OB/Receipt/Issues column triple.
const stockMonths = 6

const (
	pageWidth  = 180.0 // usable width on A4 with 15mm margins
	rowHeight  = 8.0
	gridHeight = 7.0
)

type layout struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	get func(string) string
}

// Generate renders the four-page facility report. generated_date, when
// parseable, becomes the document's creation date so rendering is
// reproducible; generated_by travels in the map but is not printed,
// matching the paper form this layout reproduces.
func Generate(fields map[string]string) ([]byte, error) {
	get := func(k string) string {
		if fields == nil {
			return ""
		}
		return fields[k]
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetTitle("MLS AT A GLANCE", false)
	pdf.SetCreationDate(creationDate(get("generated_date")))
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	l := &layout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), get: get}

	l.pageOne()
	l.pageTwo()
	l.pageThree()
	l.pageFour()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// creationDate pins the PDF metadata clock. An unparseable or missing
// timestamp falls back to a fixed instant rather than time.Now so output
// stays reproducible.
func creationDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC()
	}
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (l *layout) pageOne() {
	l.pdf.AddPage()
	l.title("MLS AT A GLANCE")

	l.section("MLS Point Details")
	l.kvTable(55, 125, [][2]string{
		{"MLS Point Code", l.get("mls_point_code")},
		{"MLS Point Name", l.get("mls_point_name")},
		{"District Name", l.get("district_name")},
		{"Mandal Name", l.get("mandal_name")},
		{"MLS Point Address", l.get("mls_point_address")},
		{"Latitude", l.get("mls_point_latitude")},
		{"Longitude", l.get("mls_point_longitude")},
		{"Fetch Live Location", ""},
		{"Mandals Tagged to MLS Point", ""},
	})

	l.section("Incharge Details")
	l.kvTableWithPhoto(55, 100, 25, [][2]string{
		{"CFMS / Corporation EMP ID", l.get("mls_point_incharge_cfms_id")},
		{"Name", l.get("mls_point_incharge_name")},
		{"Designation", l.get("designation")},
		{"Aadhaar Number", l.get("aadhaar_number")},
		{"Phone Number", l.get("phone_number")},
	}, []string{"MLS", "Incharge", "Photo"})

	l.section("DEO Details")
	l.kvTableWithPhoto(55, 100, 25, [][2]string{
		{"Corporation Emp ID", l.get("deo_cfms_id")},
		{"Name", l.get("deo_name")},
		{"Aadhaar Number", l.get("deo_aadhaar_number")},
		{"Phone Number", l.get("deo_phone_number")},
	}, []string{"DEO", "Photo"})

	l.section("MLS Point Details")
	l.grid(
		[]string{"MLS / Block Name", "Dimensions", "Area in Sq. Ft.", "Storage Capacity in MTs",
			"Owned / Hired", "If rented, Private / AMC / Other", "Weighbridge Availability"},
		[][]string{{
			l.get("mls_point_name"),
			"",
			l.get("godown_area_sqft"),
			l.get("storage_capacity_mts"),
			l.get("mls_point_ownership"),
			l.get("rented_type"),
			l.get("weighbridge_available"),
		}},
		[]float64{25, 23, 23, 25, 23, 29, 32}, 7)

	l.section("Hire / Rent Details")
	l.grid(
		[]string{"Hired / Rented from", "Rental Period", "Rental Charges"},
		[][]string{{"", "", ""}},
		[]float64{65, 65, 50}, 9)

	l.section("Location wise Image")
	l.grid(
		[]string{"Entrance", "Exit", "Loading Area", "Unloading Area", "Storage", "Storage"},
		[][]string{{"[IMG]", "[IMG]", "[IMG]", "[IMG]", "[IMG]", "[IMG]"}},
		[]float64{30, 30, 30, 30, 30, 30}, 9)
}

func (l *layout) pageTwo() {
	l.pdf.AddPage()

	l.section("Hamalies Details")
	l.grid(
		[]string{"Hamalies Engaged", "Rate per Quintal", "Rate per Carton Box", "Rate per Bale"},
		[][]string{{l.get("hamalies_working"), "", "", ""}},
		[]float64{45, 45, 45, 45}, 9)

	l.section("Stage II Contractor Details")
	l.kvTableWithPhoto(62, 93, 25, [][2]string{
		{"Engaged Firm Name", ""},
		{"PAN / GST Details", ""},
		{"Owner / Authorised Person Name", ""},
		{"Owner / Authorised Aadhaar Number", ""},
		{"Contact Phone Number", ""},
		{"Approved Rate Per Quintal", ""},
	}, []string{"Owner /", "Authorised", "Person", "Photo"})

	l.section("Stage II Vehicle Details")
	l.grid(
		[]string{"Vehicles Engaged", "Own Vehicles Engaged", "Hired vehicles Engaged", "GPS Fitted Vehicles"},
		[][]string{{l.get("stage2_vehicles_registered"), "", "", l.get("gps_installed_on_all_vehicles")}},
		[]float64{45, 45, 45, 45}, 9)

	l.section("Current Month Commodity Details")
	rows := make([][]string, 0, len(Commodities))
	for i, commodity := range Commodities {
		rows = append(rows, []string{strconv.Itoa(i + 1), commodity, "", "", "", ""})
	}
	l.grid(
		[]string{"SL. No.", "Commodity", "Opening Balance", "Received Quantity", "Issued Quantity", "Closing Balance"},
		rows,
		[]float64{15, 45, 30, 30, 30, 30}, 8)
}

func (l *layout) pageThree() {
	l.pdf.AddPage()

	l.section("Past Six months Stock Movement Details")

	commodityW := 48.0
	subW := (pageWidth - commodityW) / float64(stockMonths*3)
	monthW := subW * 3

	// Two-row header: spanned month labels, then the OB/Receipt/Issues triples.
	l.pdf.SetFont("Helvetica", "", 7)
	l.pdf.SetFillColor(211, 211, 211)
	l.pdf.CellFormat(commodityW, gridHeight, "Commodity", "1", 0, "C", true, 0, "")
	for m := 1; m <= stockMonths; m++ {
		l.pdf.CellFormat(monthW, gridHeight, "Month -"+strconv.Itoa(m), "1", 0, "C", true, 0, "")
	}
	l.pdf.Ln(-1)
	l.pdf.CellFormat(commodityW, gridHeight, "", "1", 0, "C", true, 0, "")
	for m := 0; m < stockMonths; m++ {
		for _, h := range []string{"OB", "Receipt", "Issues"} {
			l.pdf.CellFormat(subW, gridHeight, h, "1", 0, "C", true, 0, "")
		}
	}
	l.pdf.Ln(-1)

	for _, commodity := range Commodities {
		l.pdf.CellFormat(commodityW, gridHeight, l.tr(commodity), "1", 0, "C", false, 0, "")
		for i := 0; i < stockMonths*3; i++ {
			l.pdf.CellFormat(subW, gridHeight, "", "1", 0, "C", false, 0, "")
		}
		l.pdf.Ln(-1)
	}
	l.pdf.Ln(4)
}

func (l *layout) pageFour() {
	l.pdf.AddPage()

	l.section("CC Cameras Details")
	l.grid(
		[]string{"Cameras Maintenance Vendor", "CC Camers installed", "Cameras with Live Feed"},
		[][]string{{l.get("camera_vendor"), l.get("cc_cameras_installed"), ""}},
		[]float64{60, 60, 60}, 9)

	// Two identical blocks so a second block/godown on the same point can
	// be filled in by hand, as on the paper form.
	for block := 0; block < 2; block++ {
		l.section("Block / MLS Point Name")
		for i := 1; i <= 5; i++ {
			l.kvTable(60, 120, [][2]string{
				{"Camera " + strconv.Itoa(i) + " Location", ""},
				{"Camera " + strconv.Itoa(i) + " IP Address", ""},
			})
		}
		l.pdf.SetFont("Helvetica", "", 9)
		l.pdf.CellFormat(pageWidth, 6, "Add for more", "", 1, "L", false, 0, "")
		l.pdf.Ln(2)
	}
}

// title renders the centered page-one banner.
func (l *layout) title(text string) {
	l.pdf.SetFont("Helvetica", "B", 16)
	l.pdf.SetFillColor(0, 0, 255)
	l.pdf.SetTextColor(255, 255, 255)
	l.pdf.CellFormat(pageWidth, 12, l.tr(text), "", 1, "C", true, 0, "")
	l.pdf.SetTextColor(0, 0, 0)
	l.pdf.Ln(2)
}

// section renders a left-aligned blue section bar.
func (l *layout) section(text string) {
	l.pdf.SetFont("Helvetica", "B", 12)
	l.pdf.SetFillColor(0, 0, 255)
	l.pdf.SetTextColor(255, 255, 255)
	l.pdf.CellFormat(pageWidth, 9, " "+l.tr(text), "", 1, "L", true, 0, "")
	l.pdf.SetTextColor(0, 0, 0)
	l.pdf.Ln(1)
}

// kvTable renders label/value rows; labels get the grey key background.
func (l *layout) kvTable(labelW, valueW float64, rows [][2]string) {
	l.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		l.pdf.SetFillColor(211, 211, 211)
		l.pdf.CellFormat(labelW, rowHeight, l.tr(row[0]), "1", 0, "L", true, 0, "")
		l.pdf.CellFormat(valueW, rowHeight, l.tr(row[1]), "1", 1, "L", false, 0, "")
	}
	l.pdf.Ln(3)
}

// kvTableWithPhoto renders label/value rows plus a photo slot column that
// spans the full block height, with its caption centered vertically.
func (l *layout) kvTableWithPhoto(labelW, valueW, photoW float64, rows [][2]string, caption []string) {
	l.pdf.SetFont("Helvetica", "", 9)
	x0 := l.pdf.GetX()
	y0 := l.pdf.GetY()
	for _, row := range rows {
		l.pdf.SetFillColor(211, 211, 211)
		l.pdf.CellFormat(labelW, rowHeight, l.tr(row[0]), "1", 0, "L", true, 0, "")
		l.pdf.CellFormat(valueW, rowHeight, l.tr(row[1]), "1", 1, "L", false, 0, "")
	}
	blockH := float64(len(rows)) * rowHeight
	l.pdf.Rect(x0+labelW+valueW, y0, photoW, blockH, "D")

	captionH := float64(len(caption)) * 4
	y := y0 + (blockH-captionH)/2
	for _, line := range caption {
		l.pdf.SetXY(x0+labelW+valueW, y)
		l.pdf.CellFormat(photoW, 4, l.tr(line), "", 0, "C", false, 0, "")
		y += 4
	}
	l.pdf.SetXY(x0, y0+blockH)
	l.pdf.Ln(3)
}

// grid renders a header row plus data rows with fixed column widths.
func (l *layout) grid(header []string, rows [][]string, widths []float64, fontSize float64) {
	l.pdf.SetFont("Helvetica", "", fontSize)
	l.pdf.SetFillColor(211, 211, 211)
	for i, h := range header {
		l.pdf.CellFormat(widths[i], rowHeight, l.tr(h), "1", 0, "C", true, 0, "")
	}
	l.pdf.Ln(-1)
	for _, row := range rows {
		for i, cell := range row {
			l.pdf.CellFormat(widths[i], rowHeight, l.tr(cell), "1", 0, "C", false, 0, "")
		}
		l.pdf.Ln(-1)
	}
	l.pdf.Ln(3)
}
