// Package policy holds the authorization rules for every operation entry
// point. Each rule is a pure predicate over the acting user and the entity
// being touched; state checks (pending vs assigned etc.) are deliberately
// not part of the policy, they belong to the operations themselves.
package policy

import "github.com/saraya/voluntariado-mayor/pkg/core/model"

// Operation identifies an action an actor wants to perform.
type Operation string

const (
	OpCreateRequest       Operation = "create_request"
	OpUpdateRequest       Operation = "update_request"
	OpDeleteRequest       Operation = "delete_request"
	OpFinalizeRequest     Operation = "finalize_request"
	OpSubmitApplication   Operation = "submit_application"
	OpDecideApplication   Operation = "decide_application"
	OpSendMessage         Operation = "send_message"
	OpViewApplications    Operation = "view_applications"
	OpRegisterBeneficiary Operation = "register_beneficiary"
)

// Allowed reports whether actor may perform op on the given request. For
// operations that are not scoped to a single request (create, register)
// req may be nil.
func Allowed(actor *model.User, op Operation, req *model.Request) bool {
	if actor == nil {
		return false
	}
	switch op {
	case OpCreateRequest, OpRegisterBeneficiary:
		return actor.IsRequester()
	case OpSubmitApplication:
		return actor.IsVolunteer()
	case OpUpdateRequest, OpDeleteRequest, OpDecideApplication, OpViewApplications:
		return req != nil && actor.ID == req.CreatorID
	case OpFinalizeRequest, OpSendMessage:
		return req != nil && req.IsParticipant(actor.ID)
	}
	return false
}

// Authorize is the error-returning form of Allowed.
func Authorize(actor *model.User, op Operation, req *model.Request) error {
	if !Allowed(actor, op, req) {
		return model.ErrPermissionDenied
	}
	return nil
}
