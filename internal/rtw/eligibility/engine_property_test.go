package eligibility

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// dayOffsets spans roughly ten years either side of the BRP cutoff.
func dayOffsets() gopter.Gen {
	return gen.IntRange(-3650, 3650)
}

func TestEngineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	cutoffs := DefaultCutoffs()
	engine := New(cutoffs)

	properties.Property("BRP can proceed iff evaluated strictly before the cutoff", prop.ForAll(
		func(offset int) bool {
			on := cutoffs.BRPInvalid.AddDays(offset)
			v := engine.Evaluate(Request{DocumentType: DocBiometricResidencePermit, On: on})
			return v.CanProceed == (offset < 0)
		},
		dayOffsets(),
	))

	properties.Property("citizenship documents never carry errors", prop.ForAll(
		func(offset int, idx int) bool {
			docs := []DocumentType{DocPassportUK, DocPassportIrish, DocBirthCertificateNINumber}
			v := engine.Evaluate(Request{DocumentType: docs[idx], On: cutoffs.BRPInvalid.AddDays(offset)})
			return v.CanProceed && len(v.Errors) == 0
		},
		dayOffsets(),
		gen.IntRange(0, 2),
	))

	properties.Property("CanProceed is false iff errors are present on a retired document", prop.ForAll(
		func(offset int, idx int, verified bool) bool {
			dt := DocumentTypes()[idx]
			v := engine.Evaluate(Request{DocumentType: dt, On: cutoffs.BRPInvalid.AddDays(offset), OnlineVerified: verified})
			blocked := len(v.Errors) > 0 && dt.Group() == GroupRetired
			return v.CanProceed == !blocked
		},
		dayOffsets(),
		gen.IntRange(0, len(DocumentTypes())-1),
		gen.Bool(),
	))

	properties.Property("recommended action appears only alongside errors", prop.ForAll(
		func(offset int, idx int) bool {
			v := engine.Evaluate(Request{DocumentType: DocumentTypes()[idx], On: cutoffs.BRPInvalid.AddDays(offset)})
			return (v.RecommendedAction != "") == (len(v.Errors) > 0)
		},
		dayOffsets(),
		gen.IntRange(0, len(DocumentTypes())-1),
	))

	properties.Property("evaluation is deterministic", prop.ForAll(
		func(offset int, idx int) bool {
			req := Request{DocumentType: DocumentTypes()[idx], On: cutoffs.BRPInvalid.AddDays(offset)}
			a, b := engine.Evaluate(req), engine.Evaluate(req)
			return a.CanProceed == b.CanProceed &&
				len(a.Errors) == len(b.Errors) &&
				len(a.Warnings) == len(b.Warnings) &&
				a.RecommendedAction == b.RecommendedAction
		},
		dayOffsets(),
		gen.IntRange(0, len(DocumentTypes())-1),
	))

	properties.TestingRun(t)
}
