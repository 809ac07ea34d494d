package eligibility

import "strings"

// DocumentType is the closed set of documents an RTW check can rely on.
type DocumentType string

const (
	DocPassportUK               DocumentType = "passport_uk"
	DocPassportIrish            DocumentType = "passport_irish"
	DocBirthCertificateNINumber DocumentType = "birth_certificate_ni_number"
	DocShareCode                DocumentType = "share_code"
	DocPassportNonUK            DocumentType = "passport_non_uk"
	DocFrontierWorkerPermit     DocumentType = "frontier_worker_permit"
	DocCertificateOfApplication DocumentType = "certificate_of_application"
	DocBiometricResidencePermit DocumentType = "biometric_residence_permit"
	DocOther                    DocumentType = "other"
)

// Group buckets document types by how the rules treat them.
type Group string

const (
	GroupCitizenship  Group = "citizenship"
	GroupShareCode    Group = "share_code"
	GroupTransitional Group = "transitional"
	GroupRetired      Group = "retired"
	GroupOther        Group = "other"
)

// DocumentTypes lists every known type in display order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocPassportUK,
		DocPassportIrish,
		DocBirthCertificateNINumber,
		DocShareCode,
		DocPassportNonUK,
		DocFrontierWorkerPermit,
		DocCertificateOfApplication,
		DocBiometricResidencePermit,
		DocOther,
	}
}

// ParseDocumentType maps a wire value to a DocumentType. Unknown or empty
// values return false: the caller has no document selected yet.
func ParseDocumentType(raw string) (DocumentType, bool) {
	dt := DocumentType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := rules[dt]; !ok {
		return "", false
	}
	return dt, true
}

func (d DocumentType) IsValid() bool {
	_, ok := rules[d]
	return ok
}

// Group returns the rule group, or "" for an unknown type.
func (d DocumentType) Group() Group {
	return rules[d].group
}

func (d DocumentType) IsCitizenship() bool {
	return d.Group() == GroupCitizenship
}

// ExpiryRequired reports whether a check on this document must record a
// visa or permission expiry date.
func (d DocumentType) ExpiryRequired() bool {
	return rules[d].expiryRequired
}

func (d DocumentType) String() string { return string(d) }
