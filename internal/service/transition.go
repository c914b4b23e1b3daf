package service

import "printhub/internal/model"

// Effect is a side effect produced by a status transition.
type Effect int

const (
	// EffectNotifyOwner sends the owner a best-effort print confirmation.
	EffectNotifyOwner Effect = iota + 1
	// EffectDeleteDocument removes the document from every store.
	EffectDeleteDocument
)

// Transition computes the next status and the side effects of moving a
// document from current to requested. Transitions are deliberately
// permissive: any status is writable from any status, including moving
// backwards from Printing to Sent. Reaching Printed yields owner
// notification followed by full deletion, in that order.
func Transition(current, requested model.Status) (model.Status, []Effect) {
	if requested == model.StatusPrinted {
		return requested, []Effect{EffectNotifyOwner, EffectDeleteDocument}
	}
	return requested, nil
}
