package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sukamaju.desa.id/portal/internal/entity"
)

func testVillage() Village {
	return Village{
		Name:     "Sukamaju",
		District: "Kecamatan Cilodong",
		Regency:  "Kabupaten Bogor",
		Province: "Provinsi Jawa Barat",
		Address:  "Jl. Raya Sukamaju No. 1",
		Phone:    "(021) 000-0000",
		HeadName: "H. Ahmad Subarjo",
	}
}

func fixedClock() func() time.Time {
	stamp := time.Date(2026, time.August, 17, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return stamp }
}

func sampleRequest() *entity.LetterRequest {
	return &entity.LetterRequest{
		FullName:   "Budi Santoso",
		NIK:        "3201234567890001",
		BirthPlace: "Bogor",
		BirthDate:  "1990-01-17",
		Address:    "Kampung Tengah RT 01 RW 02",
		Phone:      "081234567890",
		Purpose:    "melamar pekerjaan",
		TypeCode:   "SKD",
	}
}

func TestLetterNumber(t *testing.T) {
	r := NewRenderer(testVillage()).WithClock(fixedClock())

	assert.Equal(t, "470/SKD/VIII/2026", r.LetterNumber("SKD"))
	assert.Equal(t, "470/SKU/VIII/2026", r.LetterNumber("SKU"))
}

func TestLetterNumberFollowsClock(t *testing.T) {
	r := NewRenderer(testVillage()).WithClock(func() time.Time {
		return time.Date(2027, time.January, 2, 0, 0, 0, 0, time.UTC)
	})

	assert.Equal(t, "470/SKTM/I/2027", r.LetterNumber("SKTM"))
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer(testVillage()).WithClock(fixedClock())
	letterType := &entity.LetterType{Code: "SKD", Name: "Surat Keterangan Domisili"}
	req := sampleRequest()

	first, err := r.Render(req, letterType)
	require.NoError(t, err)
	second, err := r.Render(req, letterType)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "same input and clock must produce identical bytes")
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF")))
}

func TestRenderUnknownCodeFallsBack(t *testing.T) {
	r := NewRenderer(testVillage()).WithClock(fixedClock())
	letterType := &entity.LetterType{Code: "SKX", Name: "Surat Keterangan Lainnya"}

	content, err := r.Render(sampleRequest(), letterType)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestBodyParagraphSelectsTemplate(t *testing.T) {
	village := testVillage()
	req := sampleRequest()

	cases := []struct {
		code     string
		contains string
	}{
		{CodeDomicile, "berdomisili"},
		{CodePoor, "kurang mampu"},
		{CodePoliceRecord, "SKCK"},
		{CodeUnmarried, "belum pernah menikah"},
		{CodeMove, "pindah tempat tinggal"},
		{"UNKNOWN", "atas permohonan yang bersangkutan"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			body := bodyParagraph(req, &entity.LetterType{Code: tc.code}, entity.RequestDetails{}, village)
			assert.True(t, strings.Contains(body, tc.contains), "body %q should mention %q", body, tc.contains)
		})
	}
}

func TestBodyParagraphUsesBusinessName(t *testing.T) {
	details := entity.RequestDetails{
		Business: &entity.BusinessDetails{BusinessName: "Warung Makmur"},
	}

	body := bodyParagraph(sampleRequest(), &entity.LetterType{Code: CodeBusiness}, details, testVillage())
	assert.Contains(t, body, "Warung Makmur")
}

func TestExtraLinesForMoveTemplate(t *testing.T) {
	dest := "Jl. Merdeka No. 5, Kota Depok"
	reason := "ikut keluarga"
	req := sampleRequest()
	req.DestinationAddress = &dest
	req.MoveReason = &reason

	lines := extraLines(req, &entity.LetterType{Code: CodeMove, FormTemplate: entity.FormTemplateMove}, entity.RequestDetails{})

	require.Len(t, lines, 2)
	assert.Equal(t, [2]string{"Alamat Tujuan", dest}, lines[0])
	assert.Equal(t, [2]string{"Alasan Pindah", reason}, lines[1])
}

func TestExtraLinesForBirthDetails(t *testing.T) {
	details := entity.RequestDetails{
		Birth: &entity.BirthDetails{
			ChildName:  "Siti Aminah",
			BirthDate:  "2026-08-01",
			BirthPlace: "Bogor",
			MotherName: "Aminah",
		},
	}

	lines := extraLines(sampleRequest(), &entity.LetterType{Code: CodeBirth}, details)

	require.NotEmpty(t, lines)
	assert.Equal(t, [2]string{"Nama Anak", "Siti Aminah"}, lines[0])

	var labels []string
	for _, line := range lines {
		labels = append(labels, line[0])
	}
	assert.Contains(t, labels, "Nama Ibu")
	assert.NotContains(t, labels, "Nama Ayah")
}

func TestExtraLinesEmptyForGeneral(t *testing.T) {
	lines := extraLines(sampleRequest(), &entity.LetterType{Code: CodePoor, FormTemplate: entity.FormTemplateGeneral}, entity.RequestDetails{})
	assert.Empty(t, lines)
}
