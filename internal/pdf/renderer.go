package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"sukamaju.desa.id/portal/internal/entity"
)

// Village identifies the issuing office on the letterhead and signature
// block. Populated once at startup from VILLAGE_* environment variables.
type Village struct {
	Name     string
	District string
	Regency  string
	Province string
	Address  string
	Phone    string
	HeadName string
}

func VillageFromEnv() Village {
	return Village{
		Name:     valueOrDefault("VILLAGE_NAME", "Sukamaju"),
		District: valueOrDefault("VILLAGE_DISTRICT", "Kecamatan Cilodong"),
		Regency:  valueOrDefault("VILLAGE_REGENCY", "Kabupaten Bogor"),
		Province: valueOrDefault("VILLAGE_PROVINCE", "Provinsi Jawa Barat"),
		Address:  valueOrDefault("VILLAGE_ADDRESS", "Jl. Raya Sukamaju No. 1"),
		Phone:    valueOrDefault("VILLAGE_PHONE", "(021) 000-0000"),
		HeadName: valueOrDefault("VILLAGE_HEAD_NAME", "Kepala Desa"),
	}
}

func valueOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// Renderer draws official village letters. It performs no I/O; given the
// same request, letter type and clock it produces byte-identical output.
type Renderer struct {
	village Village
	now     func() time.Time
}

func NewRenderer(village Village) *Renderer {
	return &Renderer{
		village: village,
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used by tests to pin the date stamp
// and the embedded PDF creation date.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// LetterNumber builds the issued reference number, e.g. 470/SKD/VIII/2026.
func (r *Renderer) LetterNumber(code string) string {
	now := r.now()
	return fmt.Sprintf("470/%s/%s/%d", code, romanMonth(now.Month()), now.Year())
}

// Render draws the full letter and returns the PDF bytes. Malformed input
// is not validated here; blank fields simply render blank (the submission
// validator is the gate).
func (r *Renderer) Render(req *entity.LetterRequest, letterType *entity.LetterType) ([]byte, error) {
	now := r.now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetMargins(25, 20, 25)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.drawLetterhead(pdf, tr)
	r.drawTitle(pdf, tr, letterType, req)
	r.drawApplicantBlock(pdf, tr, req)
	r.drawBody(pdf, tr, req, letterType)
	r.drawClosing(pdf, tr, now)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render letter: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawLetterhead(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Times", "B", 14)
	pdf.CellFormat(0, 6, tr("PEMERINTAH "+upper(r.village.Regency)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(upper(r.village.District)), "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "B", 16)
	pdf.CellFormat(0, 7, tr("DESA "+upper(r.village.Name)), "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "", 10)
	pdf.CellFormat(0, 5, tr(r.village.Address+" Telp. "+r.village.Phone), "", 1, "C", false, 0, "")

	pdf.SetLineWidth(0.8)
	pdf.Line(25, pdf.GetY()+2, 185, pdf.GetY()+2)
	pdf.SetLineWidth(0.2)
	pdf.Line(25, pdf.GetY()+3, 185, pdf.GetY()+3)
	pdf.Ln(8)
}

func (r *Renderer) drawTitle(pdf *gofpdf.Fpdf, tr func(string) string, letterType *entity.LetterType, req *entity.LetterRequest) {
	title := letterType.Name
	if title == "" {
		title = "SURAT KETERANGAN"
	}

	pdf.SetFont("Times", "BU", 13)
	pdf.CellFormat(0, 7, tr(upper(title)), "", 1, "C", false, 0, "")

	number := r.LetterNumber(letterType.Code)
	if req.LetterNumber != nil && *req.LetterNumber != "" {
		number = *req.LetterNumber
	}

	pdf.SetFont("Times", "", 11)
	pdf.CellFormat(0, 6, tr("Nomor: "+number), "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) drawApplicantBlock(pdf *gofpdf.Fpdf, tr func(string) string, req *entity.LetterRequest) {
	pdf.SetFont("Times", "", 11)
	opening := fmt.Sprintf(
		"Yang bertanda tangan di bawah ini Kepala Desa %s, %s, %s, dengan ini menerangkan bahwa:",
		r.village.Name, r.village.District, r.village.Regency,
	)
	pdf.MultiCell(0, 6, tr(opening), "", "J", false)
	pdf.Ln(2)

	rows := [][2]string{
		{"Nama", req.FullName},
		{"NIK", req.NIK},
		{"Tempat/Tgl. Lahir", joinNonEmpty(req.BirthPlace, req.BirthDate)},
		{"Alamat", req.Address},
		{"No. Telepon", req.Phone},
	}

	for _, row := range rows {
		pdf.CellFormat(10, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(5, 6, ":", "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 6, tr(row[1]), "", "L", false)
	}
	pdf.Ln(2)
}

func (r *Renderer) drawBody(pdf *gofpdf.Fpdf, tr func(string) string, req *entity.LetterRequest, letterType *entity.LetterType) {
	pdf.SetFont("Times", "", 11)

	details, _ := req.DecodeDetails()
	body := bodyParagraph(req, letterType, details, r.village)
	pdf.MultiCell(0, 6, tr(body), "", "J", false)
	pdf.Ln(2)

	for _, line := range extraLines(req, letterType, details) {
		pdf.CellFormat(10, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(line[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(5, 6, ":", "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 6, tr(line[1]), "", "L", false)
	}

	if req.Purpose != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 6, tr("Surat keterangan ini dibuat untuk keperluan: "+req.Purpose+"."), "", "J", false)
	}
}

func (r *Renderer) drawClosing(pdf *gofpdf.Fpdf, tr func(string) string, now time.Time) {
	pdf.Ln(2)
	pdf.SetFont("Times", "", 11)
	pdf.MultiCell(0, 6, tr("Demikian surat keterangan ini dibuat dengan sebenarnya untuk dapat dipergunakan sebagaimana mestinya."), "", "J", false)
	pdf.SetFont("Times", "I", 10)
	pdf.MultiCell(0, 6, tr("Surat keterangan ini berlaku selama 3 (tiga) bulan sejak tanggal diterbitkan."), "", "L", false)
	pdf.Ln(6)

	dateLine := fmt.Sprintf("%s, %s", r.village.Name, formatDate(now))
	pdf.SetFont("Times", "", 11)
	pdf.CellFormat(110, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(dateLine), "", 1, "C", false, 0, "")
	pdf.CellFormat(110, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Kepala Desa "+r.village.Name), "", 1, "C", false, 0, "")
	pdf.Ln(20)
	pdf.SetFont("Times", "BU", 11)
	pdf.CellFormat(110, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(r.village.HeadName), "", 1, "C", false, 0, "")
}

func joinNonEmpty(place, date string) string {
	switch {
	case place != "" && date != "":
		return place + ", " + date
	case place != "":
		return place
	default:
		return date
	}
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

var indonesianMonths = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var romanMonths = [12]string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII",
}

func romanMonth(m time.Month) string {
	return romanMonths[m-1]
}

func upper(s string) string {
	result := []rune(s)
	for i, r := range result {
		if r >= 'a' && r <= 'z' {
			result[i] = r - 'a' + 'A'
		}
	}
	return string(result)
}
