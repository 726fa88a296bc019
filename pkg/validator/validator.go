package validator

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires the NIK and phone validators into gin's
// binding engine. Call once at startup.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("nik", validateNIK)
		v.RegisterValidation("telepon", validatePhone)
	}
}

// validateNIK enforces the 16-digit national identity number format.
func validateNIK(fl validator.FieldLevel) bool {
	return isDigits(fl.Field().String(), 16, 16)
}

// validatePhone accepts Indonesian mobile numbers (10-13 digits, leading 0).
func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !strings.HasPrefix(value, "0") {
		return false
	}
	return isDigits(value, 10, 13)
}

func isDigits(s string, min, max int) bool {
	if len(s) < min || len(s) > max {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", field)
	case "nik":
		return fmt.Sprintf("%s harus 16 digit angka", field)
	case "telepon":
		return fmt.Sprintf("%s harus berupa nomor telepon yang valid", field)
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", field, fe.Param())
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s minimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s maksimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s tidak valid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Username":           "Username",
		"Password":           "Password",
		"FullName":           "Nama lengkap",
		"NIK":                "NIK",
		"Phone":              "Nomor telepon",
		"BirthPlace":         "Tempat lahir",
		"BirthDate":          "Tanggal lahir",
		"Address":            "Alamat",
		"DestinationAddress": "Alamat tujuan",
		"MoveReason":         "Alasan pindah",
		"Purpose":            "Keperluan",
		"LetterTypeID":       "Jenis surat",
		"Code":               "Kode surat",
		"Name":               "Nama",
		"Title":              "Judul",
		"Status":             "Status",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
