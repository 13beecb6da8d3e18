package entities

// ChatStatus is the terminal state of one chatbot question
type ChatStatus string

const (
	ChatStatusReplied    ChatStatus = "replied"
	ChatStatusNoAnswer   ChatStatus = "no_answer"
	ChatStatusMissingKey ChatStatus = "missing_key"
	ChatStatusOffTopic   ChatStatus = "off_topic"
	ChatStatusFailed     ChatStatus = "failed"
)

// ChatResult carries either the reply text or the reason there is none.
// Message is the text a client should display.
type ChatResult struct {
	Status  ChatStatus `json:"status"`
	Reply   string     `json:"reply,omitempty"`
	Message string     `json:"message"`
}
