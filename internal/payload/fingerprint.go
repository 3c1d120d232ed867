package payload

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"medvextract/internal/domain/model"
)

// Fingerprint derives the content-addressed cache key for a submission.
// The input is canonicalized to a key-sorted JSON document before
// hashing, so the result is independent of how the caller assembled the
// fields. MD5 is used as a 128-bit content hash, not for security.
func Fingerprint(in model.VetInput) string {
	canonical := map[string]any{
		"transcript": in.Transcript,
		"notes":      nullable(in.Notes),
		"metadata": map[string]any{
			"patient_id":      nullable(in.PatientID),
			"consult_date":    nullable(in.ConsultDate),
			"veterinarian_id": nullable(in.VeterinarianID),
			"clinic_id":       nullable(in.ClinicID),
			"template_id":     nullable(in.TemplateID),
			"language":        nullable(in.Language),
		},
	}
	// json.Marshal emits map keys in sorted order, which is exactly the
	// canonical form we need.
	b, _ := json.Marshal(canonical)
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
