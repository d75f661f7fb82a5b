package workflow

// Canonical status vocabularies. Anything not listed here is rejected
// at the edge; no alternate casings are accepted on writes.

const (
	ApplicationPending  = "Pending"
	ApplicationReviewed = "Reviewed"
	ApplicationAccepted = "Accepted"
	ApplicationRejected = "Rejected"
)

const (
	TicketRaised     = "raised"
	TicketInProgress = "in_progress"
	TicketCompleted  = "completed"
)

const (
	ProblemTypeProduct = "product"
	ProblemTypeService = "service"
)

// applicationTransitions: Reviewed is optional, Pending may jump
// straight to a terminal status. Accepted/Rejected are terminal.
var applicationTransitions = map[string][]string{
	ApplicationPending:  {ApplicationReviewed, ApplicationAccepted, ApplicationRejected},
	ApplicationReviewed: {ApplicationAccepted, ApplicationRejected},
	ApplicationAccepted: {},
	ApplicationRejected: {},
}

// ticketTransitions are forward-only; completed is terminal.
var ticketTransitions = map[string][]string{
	TicketRaised:     {TicketInProgress, TicketCompleted},
	TicketInProgress: {TicketCompleted},
	TicketCompleted:  {},
}

func ValidApplicationStatus(s string) bool {
	_, ok := applicationTransitions[s]
	return ok
}

func ValidTicketStatus(s string) bool {
	_, ok := ticketTransitions[s]
	return ok
}

func ValidProblemType(s string) bool {
	return s == ProblemTypeProduct || s == ProblemTypeService
}

// CanTransitionApplication reports whether current -> next is a legal
// application move. Equal statuses are never legal.
func CanTransitionApplication(current, next string) bool {
	for _, t := range applicationTransitions[current] {
		if t == next {
			return true
		}
	}
	return false
}

// CanTransitionTicket reports whether current -> next is a legal
// ticket move.
func CanTransitionTicket(current, next string) bool {
	for _, t := range ticketTransitions[current] {
		if t == next {
			return true
		}
	}
	return false
}
