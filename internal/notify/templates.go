package notify

import "fmt"

func renderTicketCreatedAdmin(p TicketPayload) (subject, body string) {
	subject = fmt.Sprintf("New support ticket: %s", p.Title)
	body = fmt.Sprintf(
		"A new %s ticket was raised for %q by %s (%s).\n\nTicket ID: %s\nTitle: %s\n",
		p.ProblemType, p.ProductServiceName, p.ContactName, p.ContactEmail, p.TicketID, p.Title)
	return subject, body
}

func renderTicketCreatedUser(p TicketPayload) (subject, body string) {
	subject = fmt.Sprintf("We received your ticket: %s", p.Title)
	body = fmt.Sprintf(
		"Hi %s,\n\nYour ticket %q has been received and is currently %s. Our team will get back to you.\n\nTicket ID: %s\n",
		p.ContactName, p.Title, "raised", p.TicketID)
	return subject, body
}

func renderTicketStatusChanged(p TicketPayload) (subject, body string) {
	subject = fmt.Sprintf("Ticket update: %s is now %s", p.Title, p.NewStatus)
	body = fmt.Sprintf(
		"Hi %s,\n\nYour ticket %q moved from %s to %s.",
		p.ContactName, p.Title, p.PreviousStatus, p.NewStatus)
	if p.Comment != "" {
		body += fmt.Sprintf("\n\nNote from support: %s", p.Comment)
	}
	body += fmt.Sprintf("\n\nTicket ID: %s\n", p.TicketID)
	return subject, body
}

func renderApplicationReceived(p ApplicationPayload) (subject, body string) {
	subject = fmt.Sprintf("New application for %s", p.JobTitle)
	body = fmt.Sprintf(
		"%s (%s) applied to %q.\n\nApplication ID: %s\n",
		p.ApplicantName, p.ApplicantEmail, p.JobTitle, p.ApplicationID)
	return subject, body
}

func renderApplicationStatusChanged(p ApplicationPayload) (subject, body string) {
	subject = fmt.Sprintf("Your application for %s: %s", p.JobTitle, p.NewStatus)
	body = fmt.Sprintf(
		"Hi %s,\n\nYour application for %q is now %s.\n\nApplication ID: %s\n",
		p.ApplicantName, p.JobTitle, p.NewStatus, p.ApplicationID)
	return subject, body
}
