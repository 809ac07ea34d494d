package eligibility

// User-facing guidance. Kept as constants so handlers and tests can match on them.
const (
	MsgShareCodeVerificationRequired = "Online verification is required before this check is complete. Verify the share code at gov.uk/view-right-to-work."
	MsgVignetteFollowup              = "90-day vignette holders: conduct a follow-up online check once the worker activates their UKVI account (typically within 10 working days of arrival)."
	MsgFrontierPermitFollowup        = "Frontier worker permits are time-limited. Schedule a follow-up check before the permit expires."
	MsgCertificateOfApplication      = "Certificates of Application provide limited protection. Verify with the Employer Checking Service if a share code is unavailable, and schedule a follow-up check."
	MsgOtherDocument                 = "Confirm the document is on the Home Office list of acceptable documents and record its details in the notes."
	MsgBRPUseShareCode               = "Use the Home Office online checking service with the worker's share code instead."
	MsgBRPRejected                   = "All BRP-based checks are now rejected. This statutory defence is no longer available."
	ActionBRPUseShareCode            = "Ask the worker to create a UKVI account and provide their share code for online verification."

	ReasonVignette                 = "90-day vignette holder: follow-up online check required once UKVI account is active"
	ReasonFrontierPermit           = "Time-limited frontier worker permit: repeat check before expiry"
	ReasonCertificateOfApplication = "Pending application: check for outcome regularly"
)

// rule is the per-type policy. Adding a document category is a new entry here.
type rule struct {
	group          Group
	expiryRequired bool
	followupReason string
	warnings       []string
	// nextCheckDays / nextCheckMonths pick the default re-check interval
	// when no expiry is known; both zero means no re-check.
	nextCheckDays   int
	nextCheckMonths int
}

var rules = map[DocumentType]rule{
	DocPassportUK:               {group: GroupCitizenship},
	DocPassportIrish:            {group: GroupCitizenship},
	DocBirthCertificateNINumber: {group: GroupCitizenship},
	DocShareCode: {
		group:           GroupShareCode,
		nextCheckMonths: 12,
	},
	DocPassportNonUK: {
		group:          GroupTransitional,
		expiryRequired: true,
		followupReason: ReasonVignette,
		warnings:       []string{MsgVignetteFollowup},
		nextCheckDays:  28,
	},
	DocFrontierWorkerPermit: {
		group:           GroupTransitional,
		expiryRequired:  true,
		followupReason:  ReasonFrontierPermit,
		warnings:        []string{MsgFrontierPermitFollowup},
		nextCheckMonths: 6,
	},
	DocCertificateOfApplication: {
		group:           GroupTransitional,
		followupReason:  ReasonCertificateOfApplication,
		warnings:        []string{MsgCertificateOfApplication},
		nextCheckMonths: 6,
	},
	DocBiometricResidencePermit: {
		group:           GroupRetired,
		expiryRequired:  true,
		nextCheckMonths: 6,
	},
	DocOther: {
		group:           GroupOther,
		expiryRequired:  true,
		warnings:        []string{MsgOtherDocument},
		nextCheckMonths: 6,
	},
}
