package workflow

import "testing"

func TestValidateCreateTicketInput(t *testing.T) {
	valid := CreateTicketInput{
		Title:              "Printer issue",
		Description:        "it is broken",
		ProblemType:        "product",
		ProductServiceName: "Billing",
	}
	if err := ValidateCreateTicketInput(&valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateTicketInput)
	}{
		{"blank title", func(in *CreateTicketInput) { in.Title = "  " }},
		{"blank description", func(in *CreateTicketInput) { in.Description = "" }},
		{"blank product name", func(in *CreateTicketInput) { in.ProductServiceName = "\t" }},
		{"bad problem type", func(in *CreateTicketInput) { in.ProblemType = "billing" }},
	}
	for _, c := range cases {
		in := valid
		c.mutate(&in)
		if err := ValidateCreateTicketInput(&in); err == nil {
			t.Errorf("%s accepted", c.name)
		}
	}
}

func TestValidateCreateTicketInputTrims(t *testing.T) {
	in := CreateTicketInput{
		Title:              "  Printer issue  ",
		Description:        " broken ",
		ProblemType:        " product ",
		ProductServiceName: " Billing ",
	}
	if err := ValidateCreateTicketInput(&in); err != nil {
		t.Fatalf("trimmed input rejected: %v", err)
	}
	if in.Title != "Printer issue" || in.ProblemType != "product" {
		t.Errorf("fields not trimmed in place: %+v", in)
	}
}
