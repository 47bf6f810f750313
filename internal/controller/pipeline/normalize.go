package pipeline

import "github.com/arsalankhan8/Cigul-Recruitment/internal/model"

// legacyStatusMap folds stored statuses onto the four canonical pipeline
// stages. Adding a new legacy alias is a one-line edit here.
var legacyStatusMap = map[string]string{
	model.ApplicationStatusApplied:   model.ApplicationStatusApplied,
	model.ApplicationStatusInterview: model.ApplicationStatusInterview,
	model.ApplicationStatusRejected:  model.ApplicationStatusRejected,
	model.ApplicationStatusHired:     model.ApplicationStatusHired,
	"shortlisted":                    model.ApplicationStatusInterview,
	"received":                       model.ApplicationStatusApplied,
	"reviewed":                       model.ApplicationStatusApplied,
}

// NormalizeStatus maps any stored application status onto a canonical stage.
// Unknown and empty values land in the default applied bucket. This is a
// display-time reclassification only; the stored value is never rewritten.
func NormalizeStatus(status string) string {
	if canonical, ok := legacyStatusMap[status]; ok {
		return canonical
	}
	return model.ApplicationStatusApplied
}
