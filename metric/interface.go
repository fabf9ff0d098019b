package metric

type APICall struct {
	Operation string
	Status    string
}

func NewAPICall(operation string, status string) *APICall {
	return &APICall{operation, status}
}

type SendOutcome struct {
	Kind   string
	Status string
}

func NewSendOutcome(kind string, status string) *SendOutcome {
	return &SendOutcome{kind, status}
}

type UseCase interface {
	SaveAPICall(ac *APICall)
	SaveSendOutcome(so *SendOutcome)
}
