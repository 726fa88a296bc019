package pdf

import (
	"fmt"

	"sukamaju.desa.id/portal/internal/entity"
)

// Standard letter-type codes seeded at boot. The renderer falls back to a
// generic paragraph for codes it does not recognize, so admins can add new
// kinds without touching this file.
const (
	CodeDomicile     = "SKD"
	CodeBusiness     = "SKU"
	CodePoor         = "SKTM"
	CodePoliceRecord = "SKCK"
	CodeBirth        = "SKKL"
	CodeDeath        = "SKKM"
	CodeMove         = "SKPD"
	CodeUnmarried    = "SKBM"
	CodeIncome       = "SKP"
	CodeNameDiff     = "SKBN"
)

// bodyParagraph selects the letter-type-specific statement. This switch is
// the single polymorphic seam for letter content.
func bodyParagraph(req *entity.LetterRequest, letterType *entity.LetterType, details entity.RequestDetails, village Village) string {
	switch letterType.Code {
	case CodeDomicile:
		return fmt.Sprintf(
			"Nama tersebut di atas adalah benar penduduk yang berdomisili di wilayah Desa %s, %s, dan bertempat tinggal pada alamat tersebut di atas.",
			village.Name, village.District,
		)

	case CodeBusiness:
		businessName := "usaha tersebut"
		if details.Business != nil && details.Business.BusinessName != "" {
			businessName = fmt.Sprintf("usaha %q", details.Business.BusinessName)
		}
		return fmt.Sprintf(
			"Nama tersebut di atas adalah benar penduduk Desa %s dan benar memiliki serta menjalankan %s yang berkedudukan di wilayah desa kami.",
			village.Name, businessName,
		)

	case CodePoor:
		return fmt.Sprintf(
			"Nama tersebut di atas adalah benar penduduk Desa %s dan berdasarkan pengamatan kami yang bersangkutan tergolong keluarga kurang mampu (tidak mampu).",
			village.Name,
		)

	case CodePoliceRecord:
		return "Nama tersebut di atas adalah benar penduduk desa kami, berkelakuan baik, dan tidak pernah tersangkut perkara pidana. Surat pengantar ini diberikan untuk pengurusan Surat Keterangan Catatan Kepolisian (SKCK)."

	case CodeBirth:
		return fmt.Sprintf(
			"Berdasarkan laporan yang bersangkutan, telah lahir seorang anak di wilayah Desa %s dengan keterangan sebagai berikut:",
			village.Name,
		)

	case CodeDeath:
		return fmt.Sprintf(
			"Berdasarkan laporan yang bersangkutan, telah meninggal dunia seorang warga Desa %s dengan keterangan sebagai berikut:",
			village.Name,
		)

	case CodeMove:
		return fmt.Sprintf(
			"Nama tersebut di atas adalah benar penduduk Desa %s yang bermaksud pindah tempat tinggal dengan keterangan sebagai berikut:",
			village.Name,
		)

	case CodeUnmarried:
		return "Nama tersebut di atas adalah benar penduduk desa kami dan berdasarkan data yang ada pada kami hingga surat ini diterbitkan yang bersangkutan berstatus belum pernah menikah."

	case CodeIncome:
		return "Nama tersebut di atas adalah benar penduduk desa kami. Berdasarkan keterangan yang bersangkutan dan pengamatan kami, yang bersangkutan mempunyai penghasilan sebagaimana tercantum dalam keterangan terlampir."

	case CodeNameDiff:
		return "Nama tersebut di atas adalah benar orang yang sama dengan nama yang tercantum berbeda pada dokumen yang bersangkutan. Perbedaan penulisan nama tersebut terjadi karena kekeliruan administrasi."

	default:
		return "Nama tersebut di atas adalah benar penduduk desa kami dan surat keterangan ini diberikan atas permohonan yang bersangkutan."
	}
}

// extraLines returns label/value pairs appended under the body for form
// templates that carry event or destination fields.
func extraLines(req *entity.LetterRequest, letterType *entity.LetterType, details entity.RequestDetails) [][2]string {
	var lines [][2]string

	if letterType.FormTemplate == entity.FormTemplateMove {
		if req.DestinationAddress != nil {
			lines = append(lines, [2]string{"Alamat Tujuan", *req.DestinationAddress})
		}
		if req.MoveReason != nil {
			lines = append(lines, [2]string{"Alasan Pindah", *req.MoveReason})
		}
	}

	if details.Birth != nil {
		lines = append(lines,
			[2]string{"Nama Anak", details.Birth.ChildName},
			[2]string{"Tanggal Lahir", details.Birth.BirthDate},
		)
		if details.Birth.BirthPlace != "" {
			lines = append(lines, [2]string{"Tempat Lahir", details.Birth.BirthPlace})
		}
		if details.Birth.FatherName != "" {
			lines = append(lines, [2]string{"Nama Ayah", details.Birth.FatherName})
		}
		if details.Birth.MotherName != "" {
			lines = append(lines, [2]string{"Nama Ibu", details.Birth.MotherName})
		}
	}

	if details.Death != nil {
		lines = append(lines,
			[2]string{"Nama Almarhum/ah", details.Death.DeceasedName},
			[2]string{"Tanggal Meninggal", details.Death.DeathDate},
		)
		if details.Death.DeathPlace != "" {
			lines = append(lines, [2]string{"Tempat Meninggal", details.Death.DeathPlace})
		}
		if details.Death.Relationship != "" {
			lines = append(lines, [2]string{"Hubungan Pelapor", details.Death.Relationship})
		}
	}

	if details.Business != nil {
		if details.Business.BusinessType != "" {
			lines = append(lines, [2]string{"Jenis Usaha", details.Business.BusinessType})
		}
		if details.Business.BusinessAddress != "" {
			lines = append(lines, [2]string{"Alamat Usaha", details.Business.BusinessAddress})
		}
	}

	return lines
}
