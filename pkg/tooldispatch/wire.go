package tooldispatch

// FunctionCall is a single invocation request from the model caller.
type FunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
	ID   string                 `json:"id"`
}

// ResponsePayload carries the invocation outcome. Exactly one of Output and
// Error is populated.
type ResponsePayload struct {
	Output interface{} `json:"output,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// FunctionResponse pairs an outcome with the correlation id of its request.
type FunctionResponse struct {
	Response ResponsePayload `json:"response"`
	ID       string          `json:"id"`
}

// FunctionResponseEnvelope is the uniform wrapper returned to the caller for
// every invocation, success or failure.
type FunctionResponseEnvelope struct {
	FunctionResponses []FunctionResponse `json:"functionResponses"`
}

func successEnvelope(id string, output interface{}) FunctionResponseEnvelope {
	return FunctionResponseEnvelope{
		FunctionResponses: []FunctionResponse{
			{Response: ResponsePayload{Output: output}, ID: id},
		},
	}
}

func failureEnvelope(id string, message string) FunctionResponseEnvelope {
	return FunctionResponseEnvelope{
		FunctionResponses: []FunctionResponse{
			{Response: ResponsePayload{Error: message}, ID: id},
		},
	}
}
